// internal/report/fake.go
package report

// Fake records reported messages for test assertions.
type Fake struct {
	// Messages contains all messages that were reported.
	Messages []Message

	// ReportError, if set, is returned by Report.
	ReportError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFake creates a Fake reporter.
func NewFake() *Fake {
	return &Fake{}
}

// Report records the message.
func (f *Fake) Report(msg Message) error {
	if f.ReportError != nil {
		return f.ReportError
	}
	f.Messages = append(f.Messages, msg)
	return nil
}

// Close marks the reporter as closed.
func (f *Fake) Close() error {
	f.Closed = true
	return nil
}
