//go:build linux

// internal/tx/keyer_gpio.go
package tx

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// GPIOKeyer keys an LED (or laser) through a GPIO output line.
type GPIOKeyer struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewGPIOKeyer requests the output line on the given chip, initially off.
func NewGPIOKeyer(chipName string, pin int) (*GPIOKeyer, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", chipName, err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request pin %d: %w", pin, err)
	}

	return &GPIOKeyer{chip: chip, line: line}, nil
}

// Set switches the line on or off.
func (k *GPIOKeyer) Set(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := k.line.SetValue(v); err != nil {
		return fmt.Errorf("set pin: %w", err)
	}
	return nil
}

// Close drives the line low and releases it.
func (k *GPIOKeyer) Close() error {
	var errs []error
	if k.line != nil {
		if err := k.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear pin: %w", err))
		}
		if err := k.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line: %w", err))
		}
	}
	if k.chip != nil {
		if err := k.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
