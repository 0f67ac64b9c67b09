// internal/adc/adc.go
// Package adc provides intensity sources for the receiver with hardware
// abstraction. Sources deliver one raw reading per call; the fake
// implementation allows testing without hardware.
package adc

// MaxReading is the full-scale raw intensity (12-bit ADC range).
const MaxReading = 4095

// Source reads the photodiode intensity.
type Source interface {
	// Read returns the current raw intensity reading. A read error is fatal
	// to the decode loop; sources must not mask hardware failures.
	Read() (int, error)

	// Close releases source resources.
	Close() error
}
