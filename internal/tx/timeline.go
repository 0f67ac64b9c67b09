// internal/tx/timeline.go
// Package tx renders text into a Morse on/off timeline and plays it over a
// binary output line with fixed-duration pulses and gaps.
package tx

import (
	"errors"
	"strings"
	"time"

	"github.com/lightlab/morserx/internal/morse"
)

var (
	// ErrInvalidDot indicates the dot duration must be positive
	ErrInvalidDot = errors.New("dot duration must be positive")
	// ErrInvalidDash indicates the dash duration must exceed the dot
	ErrInvalidDash = errors.New("dash duration must exceed the dot duration")
	// ErrInvalidGaps indicates the gaps must satisfy symbol < letter < word
	ErrInvalidGaps = errors.New("gaps must satisfy symbol gap < letter gap < word gap")
)

// Segment is one keyed interval of the timeline.
type Segment struct {
	// On is the light state held for Duration.
	On bool
	// Duration is how long the state is held.
	Duration time.Duration
}

// Timing holds the transmitter durations. The classical Morse convention is
// 1:3:1:3:7 relative to the dot; see TimingFromDot.
type Timing struct {
	Dot       time.Duration
	Dash      time.Duration
	SymbolGap time.Duration
	LetterGap time.Duration
	WordGap   time.Duration
}

// TimingFromDot derives the classical 1:3:1:3:7 timing from a dot duration.
func TimingFromDot(dot time.Duration) Timing {
	return Timing{
		Dot:       dot,
		Dash:      3 * dot,
		SymbolGap: dot,
		LetterGap: 3 * dot,
		WordGap:   7 * dot,
	}
}

// Validate checks the timing ordering invariants.
func (t Timing) Validate() error {
	if t.Dot <= 0 {
		return ErrInvalidDot
	}
	if t.Dash <= t.Dot {
		return ErrInvalidDash
	}
	if t.SymbolGap <= 0 || t.LetterGap <= t.SymbolGap || t.WordGap <= t.LetterGap {
		return ErrInvalidGaps
	}
	return nil
}

// Build renders a message into an on/off timeline. Characters without a table
// entry are skipped. Each letter ends with a letter gap; a space stretches
// that gap to a word gap by adding the difference. The timeline starts with
// the first pulse and ends with the final letter gap.
func Build(message string, t Timing) ([]Segment, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	var segments []Segment
	for _, ch := range message {
		if ch == ' ' {
			// The preceding letter already contributed a letter gap.
			segments = append(segments, Segment{On: false, Duration: t.WordGap - t.LetterGap})
			continue
		}

		code, ok := morse.Encode(ch)
		if !ok {
			continue
		}

		for i, sym := range code {
			if sym == morse.Dash {
				segments = append(segments, Segment{On: true, Duration: t.Dash})
			} else {
				segments = append(segments, Segment{On: true, Duration: t.Dot})
			}
			if i < len(code)-1 {
				segments = append(segments, Segment{On: false, Duration: t.SymbolGap})
			}
		}
		segments = append(segments, Segment{On: false, Duration: t.LetterGap})
	}

	return segments, nil
}

// Preview renders the message's patterns for display, word gaps as "/".
func Preview(message string) string {
	var b strings.Builder
	for _, ch := range message {
		if ch == ' ' {
			b.WriteString("/ ")
			continue
		}
		code, ok := morse.Encode(ch)
		if !ok {
			continue
		}
		b.WriteString(code)
		b.WriteByte(' ')
	}
	return strings.TrimRight(b.String(), " ")
}
