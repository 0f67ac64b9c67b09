// internal/rx/assembler.go
package rx

// MessageAssembler collects decoded characters and word-separating spaces
// into the output message. Append is the only mutation; the buffer is cleared
// atomically when the message is emitted.
//
// Consecutive word gaps without an intervening letter append consecutive
// spaces; the assembler does not deduplicate them.
type MessageAssembler struct {
	chars    []rune
	capacity int
}

// NewMessageAssembler creates an assembler holding at most capacity characters.
func NewMessageAssembler(capacity int) *MessageAssembler {
	return &MessageAssembler{
		chars:    make([]rune, 0, capacity),
		capacity: capacity,
	}
}

// Append stores one character, or drops it when the message is full.
func (m *MessageAssembler) Append(ch rune) AppendResult {
	if len(m.chars) >= m.capacity {
		return Overflowed
	}
	m.chars = append(m.chars, ch)
	return Appended
}

// Len returns the number of assembled characters.
func (m *MessageAssembler) Len() int {
	return len(m.chars)
}

// String renders the assembled message.
func (m *MessageAssembler) String() string {
	return string(m.chars)
}

// Clear empties the message. Capacity is retained.
func (m *MessageAssembler) Clear() {
	m.chars = m.chars[:0]
}
