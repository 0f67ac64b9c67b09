// internal/report/report.go
// Package report delivers decoded messages to their consumers, with an
// abstraction for testing.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Message is one fully assembled transmission.
type Message struct {
	// Text is the decoded message, including word-separating spaces.
	Text string
	// Timestamp is when the idle-emission heuristic fired.
	Timestamp time.Time
}

// Reporter receives emitted messages.
type Reporter interface {
	// Report delivers one message. A failure must not crash the decode loop.
	Report(msg Message) error

	// Close releases reporter resources.
	Close() error
}

// Payload is the JSON wire format for published messages.
type Payload struct {
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

// FormatPayload creates the JSON payload for a message.
func FormatPayload(msg Message) ([]byte, error) {
	return json.Marshal(Payload{
		Timestamp: msg.Timestamp.UTC().Format(time.RFC3339),
		Message:   msg.Text,
	})
}

// Console writes messages to a writer, one per line.
type Console struct {
	w io.Writer
}

// NewConsole creates a console reporter writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Report writes the message text.
func (c *Console) Report(msg Message) error {
	_, err := fmt.Fprintf(c.w, "%s  %s\n", msg.Timestamp.Format("15:04:05.000"), msg.Text)
	return err
}

// Close is a no-op for the console reporter.
func (c *Console) Close() error {
	return nil
}

// Multi fans each message out to every reporter. The first error is
// returned after all reporters have been tried.
type Multi []Reporter

// Report delivers the message to all reporters.
func (m Multi) Report(msg Message) error {
	var first error
	for _, r := range m {
		if err := r.Report(msg); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Close closes all reporters.
func (m Multi) Close() error {
	var first error
	for _, r := range m {
		if err := r.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
