//go:build !linux

// internal/tx/keyer_stub.go
package tx

import "errors"

// GPIOKeyer is not available on non-Linux platforms.
type GPIOKeyer struct{}

// NewGPIOKeyer returns an error on non-Linux platforms.
func NewGPIOKeyer(chipName string, pin int) (*GPIOKeyer, error) {
	return nil, errors.New("gpio keyer: not supported on this platform (requires Linux)")
}

// Set is not implemented on non-Linux platforms.
func (k *GPIOKeyer) Set(on bool) error {
	return errors.New("gpio keyer: not supported")
}

// Close is not implemented on non-Linux platforms.
func (k *GPIOKeyer) Close() error {
	return nil
}
