//go:build !linux

// internal/adc/gpio_stub.go
package adc

import "errors"

// GPIO is not available on non-Linux platforms.
type GPIO struct{}

// NewGPIO returns an error on non-Linux platforms.
func NewGPIO(chipName string, pin int) (*GPIO, error) {
	return nil, errors.New("gpio source: not supported on this platform (requires Linux)")
}

// Read is not implemented on non-Linux platforms.
func (g *GPIO) Read() (int, error) {
	return 0, errors.New("gpio source: not supported")
}

// Close is not implemented on non-Linux platforms.
func (g *GPIO) Close() error {
	return nil
}
