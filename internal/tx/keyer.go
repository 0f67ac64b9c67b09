// internal/tx/keyer.go
package tx

import (
	"context"
	"fmt"
	"time"
)

// Keyer drives the binary light-emission line.
type Keyer interface {
	// Set switches the line on or off.
	Set(on bool) error

	// Close releases the line, leaving it off.
	Close() error
}

// Transmitter plays timelines over a keyer with fixed-delay sequencing.
type Transmitter struct {
	keyer Keyer

	// sleep is replaceable in tests
	sleep func(time.Duration)
}

// NewTransmitter creates a transmitter keying the given line.
func NewTransmitter(k Keyer) *Transmitter {
	return &Transmitter{keyer: k, sleep: time.Sleep}
}

// Send keys the timeline segment by segment. The line is forced off when the
// send finishes or is cancelled.
func (tr *Transmitter) Send(ctx context.Context, segments []Segment) error {
	defer func() { _ = tr.keyer.Set(false) }()

	for _, seg := range segments {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := tr.keyer.Set(seg.On); err != nil {
			return fmt.Errorf("key line: %w", err)
		}
		tr.sleep(seg.Duration)
	}
	return nil
}
