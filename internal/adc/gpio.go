//go:build linux

// internal/adc/gpio.go
package adc

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// GPIO reads a photodiode behind a hardware comparator wired to a digital
// input line. The binary line level maps to 0 or MaxReading, so the engine's
// threshold sampler sees a clean two-level signal.
type GPIO struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewGPIO requests the input line on the given chip (e.g. "gpiochip0").
func NewGPIO(chipName string, pin int) (*GPIO, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chipName, err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsInput, gpiocdev.WithPullDown)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request pin %d: %w", pin, err)
	}

	return &GPIO{chip: chip, line: line}, nil
}

// Read returns 0 (line low) or MaxReading (line high).
func (g *GPIO) Read() (int, error) {
	v, err := g.line.Value()
	if err != nil {
		return 0, fmt.Errorf("read pin: %w", err)
	}
	if v == 0 {
		return 0, nil
	}
	return MaxReading, nil
}

// Close releases the line and chip.
func (g *GPIO) Close() error {
	var errs []error
	if g.line != nil {
		if err := g.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line: %w", err))
		}
	}
	if g.chip != nil {
		if err := g.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
