// internal/adc/serial.go
package adc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/tarm/serial"
)

// Serial reads intensity values from an external ADC streaming over a serial
// port (one decimal reading per line, e.g. an Arduino printing an analog pin).
// A reader goroutine keeps the latest value current; Read never blocks on the
// port.
type Serial struct {
	port   io.ReadCloser
	latest atomic.Int64

	mu      sync.Mutex
	readErr error
	closed  bool
}

// NewSerial opens the port and starts the reader goroutine.
func NewSerial(name string, baud int) (*Serial, error) {
	port, err := serial.OpenPort(&serial.Config{Name: name, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", name, err)
	}
	s := &Serial{port: port}
	go s.readLines()
	return s, nil
}

func (s *Serial) readLines() {
	scanner := bufio.NewScanner(s.port)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			// Garbled line, likely a partial read at startup.
			continue
		}
		if v < 0 {
			v = 0
		}
		if v > MaxReading {
			v = MaxReading
		}
		s.latest.Store(int64(v))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if err := scanner.Err(); err != nil {
		s.readErr = fmt.Errorf("serial read: %w", err)
	} else {
		s.readErr = fmt.Errorf("serial stream ended")
	}
}

// Read returns the latest streamed reading. Once the stream fails or ends,
// the error is sticky and fatal to the decode loop.
func (s *Serial) Read() (int, error) {
	s.mu.Lock()
	err := s.readErr
	s.mu.Unlock()
	if err != nil {
		return 0, err
	}
	return int(s.latest.Load()), nil
}

// Close closes the serial port.
func (s *Serial) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.port.Close()
}
