// internal/tx/fake.go
package tx

// FakeKeyer records Set calls for test assertions.
type FakeKeyer struct {
	// States contains every value passed to Set, in order.
	States []bool

	// SetError, if set, is returned by Set.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeKeyer creates a FakeKeyer.
func NewFakeKeyer() *FakeKeyer {
	return &FakeKeyer{}
}

// Set records the state.
func (f *FakeKeyer) Set(on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.States = append(f.States, on)
	return nil
}

// Close marks the keyer as closed.
func (f *FakeKeyer) Close() error {
	f.Closed = true
	return nil
}
