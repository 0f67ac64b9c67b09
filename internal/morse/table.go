// internal/morse/table.go
// Package morse provides the fixed Morse code table shared by the receiver
// and the transmitter.
package morse

const (
	// Dot is the short-pulse symbol.
	Dot = '.'
	// Dash is the long-pulse symbol.
	Dash = '-'
	// Unknown is the sentinel character for patterns with no table entry.
	Unknown = '?'
)

// patterns maps each supported character to its dot/dash pattern (ITU codes).
// 36 entries: A-Z and 0-9.
var patterns = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..",
	'E': ".", 'F': "..-.", 'G': "--.", 'H': "....",
	'I': "..", 'J': ".---", 'K': "-.-", 'L': ".-..",
	'M': "--", 'N': "-.", 'O': "---", 'P': ".--.",
	'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
	'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-",
	'Y': "-.--", 'Z': "--..",
	'0': "-----", '1': ".----", '2': "..---", '3': "...--",
	'4': "....-", '5': ".....", '6': "-....", '7': "--...",
	'8': "---..", '9': "----.",
}

// byPattern is the reverse index for decoding, built once at init.
var byPattern = make(map[string]rune, len(patterns))

func init() {
	for ch, code := range patterns {
		byPattern[code] = ch
	}
}

// Decode resolves a dot/dash pattern to its character.
// An empty pattern decodes to 0 (nothing to emit); a pattern with no table
// entry decodes to Unknown.
func Decode(pattern string) rune {
	if pattern == "" {
		return 0
	}
	if ch, ok := byPattern[pattern]; ok {
		return ch
	}
	return Unknown
}

// Encode returns the pattern for a character. Lowercase letters are folded to
// uppercase. ok is false for characters outside A-Z, a-z and 0-9.
func Encode(ch rune) (string, bool) {
	if ch >= 'a' && ch <= 'z' {
		ch -= 'a' - 'A'
	}
	code, ok := patterns[ch]
	return code, ok
}

// Size returns the number of table entries.
func Size() int {
	return len(patterns)
}
