// internal/adc/fake.go
package adc

import "errors"

// Fake is a test double that returns scripted intensity readings.
type Fake struct {
	// Readings contains scripted raw values. Each call to Read consumes the
	// next one; when exhausted, the last reading repeats.
	Readings []int

	// index tracks the current position in Readings
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, is returned by Read
	ReadError error
}

// NewFake creates a Fake source with the given readings.
func NewFake(readings []int) *Fake {
	return &Fake{Readings: readings}
}

// Read returns the next scripted reading.
func (f *Fake) Read() (int, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	if len(f.Readings) == 0 {
		return 0, errors.New("no readings configured")
	}

	reading := f.Readings[f.index]
	if f.index < len(f.Readings)-1 {
		f.index++
	}
	return reading, nil
}

// Close marks the source as closed.
func (f *Fake) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the source to the first reading.
func (f *Fake) Reset() {
	f.index = 0
	f.Closed = false
}
