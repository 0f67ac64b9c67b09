// internal/rx/loop.go
package rx

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lightlab/morserx/internal/report"
)

// ErrInvalidInterval indicates the sampling interval must be positive
var ErrInvalidInterval = errors.New("sampling interval must be positive")

// Source provides one raw intensity reading per tick.
type Source interface {
	Read() (int, error)
}

// Run drives the engine from a periodic source until ctx is cancelled.
// One tick reads one sample and makes one full pass through the engine.
// The ticker yields to the scheduler between samples, so the loop never
// starves other tasks. A source read failure is fatal and is returned to the
// caller; there is no fallback sampling strategy. Emitted messages are handed
// to the reporter; reporter failures are logged and the loop continues.
//
// The interval must be small relative to the dot duration (the reference
// configuration is 1ms against a 10ms dot) or classification accuracy
// degrades near the boundaries.
func Run(ctx context.Context, eng *Engine, src Source, rep report.Reporter, interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	return runLoop(ctx, eng, src, rep, ticker.C, time.Now)
}

func runLoop(ctx context.Context, eng *Engine, src Source, rep report.Reporter, tick <-chan time.Time, now func() time.Time) error {
	base := now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			t := now()
			raw, err := src.Read()
			if err != nil {
				return fmt.Errorf("read sample: %w", err)
			}
			msg, ok := eng.Tick(raw, t.Sub(base).Milliseconds())
			if !ok {
				continue
			}
			if err := rep.Report(report.Message{Text: msg, Timestamp: t}); err != nil {
				log.Printf("report error: %v", err)
			}
		}
	}
}
