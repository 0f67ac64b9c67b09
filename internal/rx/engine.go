// internal/rx/engine.go
// Package rx implements the signal-to-symbol decoding engine: thresholding,
// edge detection, pulse/gap classification, symbol accumulation and message
// assembly with idle-based flushing.
package rx

import (
	"errors"

	"github.com/lightlab/morserx/internal/morse"
)

const (
	// DefaultSymbolCapacity bounds the per-letter symbol buffer.
	DefaultSymbolCapacity = 9
	// DefaultMessageCapacity bounds the assembled output message.
	DefaultMessageCapacity = 255
)

var (
	// ErrInvalidThreshold indicates the light threshold must be non-negative
	ErrInvalidThreshold = errors.New("light threshold must be non-negative")
	// ErrInvalidDotDuration indicates the dot duration must be positive
	ErrInvalidDotDuration = errors.New("dot duration must be positive")
	// ErrInvalidDashMin indicates the dash minimum must exceed half a dot
	ErrInvalidDashMin = errors.New("dash minimum must exceed half the dot duration")
	// ErrInvalidLetterGap indicates the letter gap must exceed the dash minimum
	ErrInvalidLetterGap = errors.New("letter gap must exceed the dash minimum")
	// ErrInvalidWordGap indicates the word gap must exceed the letter gap
	ErrInvalidWordGap = errors.New("word gap must exceed the letter gap")
	// ErrInvalidCapacity indicates buffer capacities must be positive
	ErrInvalidCapacity = errors.New("buffer capacities must be positive")
)

// Config holds the timing and buffer configuration for the decoding engine.
// All durations are in milliseconds. The ordering invariants
// DashMinMs > DotDurationMs/2, LetterGapMs > DashMinMs and
// WordGapMs > LetterGapMs must hold or classification becomes ambiguous.
type Config struct {
	// LightThreshold is the raw reading above which the light is ON
	// (from config: light_threshold)
	LightThreshold int
	// DotDurationMs is the nominal dot duration (from config: dot_duration_ms)
	DotDurationMs int64
	// DashMinMs is the minimum pulse duration classified as a dash
	// (from config: dash_min_ms)
	DashMinMs int64
	// LetterGapMs is the minimum gap signaling a letter boundary
	// (from config: letter_gap_ms)
	LetterGapMs int64
	// WordGapMs is the minimum gap signaling a word boundary
	// (from config: word_gap_ms)
	WordGapMs int64
	// SymbolCapacity bounds the per-letter symbol buffer (0 = default)
	SymbolCapacity int
	// MessageCapacity bounds the output message (0 = default)
	MessageCapacity int
}

// Letter is a single decoded character, reported through LetterCallback.
type Letter struct {
	// Pattern is the dot/dash key that was looked up
	Pattern string
	// Char is the decoded character, morse.Unknown if the pattern is not in the table
	Char rune
	// WhenMs is the tick timestamp at which the letter was flushed
	WhenMs int64
}

// LetterCallback is invoked for each decoded letter. It is called from the
// tick path and must be fast and non-blocking.
type LetterCallback func(letter Letter)

// Stats counts engine activity, including data silently dropped by the
// bounded buffers.
type Stats struct {
	SymbolsAppended int64
	SymbolsDropped  int64
	LettersDecoded  int64
	CharsDropped    int64
	MessagesEmitted int64
}

// Engine is the decoding state machine. All state is owned by the engine and
// touched only from Tick, which the caller must invoke from a single loop;
// no locking is done here.
type Engine struct {
	cfg     Config
	sampler Sampler

	// Light state
	previous bool
	current  bool

	// Timers (monotonic milliseconds)
	pulseStart   int64
	gapStart     int64
	lastActivity int64
	lastEmission int64

	buffer   *SymbolBuffer
	output   *MessageAssembler
	letterCb LetterCallback
	stats    Stats
}

// NewEngine creates a decoding engine. startMs seeds the gap and activity
// timers and must come from the same monotonic clock as later Tick calls.
func NewEngine(cfg Config, startMs int64) (*Engine, error) {
	if cfg.LightThreshold < 0 {
		return nil, ErrInvalidThreshold
	}
	if cfg.DotDurationMs <= 0 {
		return nil, ErrInvalidDotDuration
	}
	if cfg.DashMinMs <= cfg.DotDurationMs/2 {
		return nil, ErrInvalidDashMin
	}
	if cfg.LetterGapMs <= cfg.DashMinMs {
		return nil, ErrInvalidLetterGap
	}
	if cfg.WordGapMs <= cfg.LetterGapMs {
		return nil, ErrInvalidWordGap
	}
	if cfg.SymbolCapacity == 0 {
		cfg.SymbolCapacity = DefaultSymbolCapacity
	}
	if cfg.MessageCapacity == 0 {
		cfg.MessageCapacity = DefaultMessageCapacity
	}
	if cfg.SymbolCapacity < 0 || cfg.MessageCapacity < 0 {
		return nil, ErrInvalidCapacity
	}

	return &Engine{
		cfg:          cfg,
		sampler:      ThresholdSampler{Threshold: cfg.LightThreshold},
		gapStart:     startMs,
		lastActivity: startMs,
		buffer:       NewSymbolBuffer(cfg.SymbolCapacity),
		output:       NewMessageAssembler(cfg.MessageCapacity),
	}, nil
}

// SetSampler replaces the default threshold sampler. Must be called before
// the first Tick.
func (e *Engine) SetSampler(s Sampler) {
	if s != nil {
		e.sampler = s
	}
}

// SetLetterCallback registers a callback for decoded letters. Must be called
// before the first Tick.
func (e *Engine) SetLetterCallback(cb LetterCallback) {
	e.letterCb = cb
}

// Tick processes one sample. now is a monotonic timestamp in milliseconds and
// must not decrease between calls. The returned string and true flag carry the
// assembled message when the idle-emission heuristic fires; the output buffer
// is cleared atomically on emission.
func (e *Engine) Tick(raw int, now int64) (string, bool) {
	e.current = e.sampler.Sample(raw)

	switch {
	case e.current && !e.previous:
		// Rising edge: classify the gap that just ended.
		gap := now - e.gapStart
		if gap >= e.cfg.WordGapMs {
			e.flushLetter(now)
			if e.output.Append(' ') == Overflowed {
				e.stats.CharsDropped++
			}
		} else if gap >= e.cfg.LetterGapMs {
			e.flushLetter(now)
		}
		// Gaps below the letter boundary separate symbols within a letter
		// and need no explicit action.
		e.pulseStart = now
		e.lastActivity = now

	case !e.current && e.previous:
		// Falling edge: classify the pulse that just ended.
		pulse := now - e.pulseStart
		switch {
		case pulse >= e.cfg.DashMinMs:
			e.appendSymbol(morse.Dash)
		case pulse >= e.cfg.DotDurationMs/2:
			e.appendSymbol(morse.Dot)
		default:
			// Too short to classify; treated as noise.
		}
		e.gapStart = now
		e.lastActivity = now
	}

	var emitted string
	var ok bool
	if !e.current {
		// Idle flush: a trailing letter has no rising edge to flush it.
		if e.buffer.Len() > 0 && now-e.lastActivity > e.cfg.LetterGapMs {
			e.flushLetter(now)
			e.lastActivity = now
		}

		// Best-effort end-of-transmission: emit after silence well beyond a
		// word gap, at most once per such silence period.
		if now-e.lastActivity > 2*e.cfg.WordGapMs &&
			now-e.lastEmission > 2*e.cfg.WordGapMs &&
			e.output.Len() > 0 {
			emitted = e.output.String()
			e.output.Clear()
			e.lastEmission = now
			e.stats.MessagesEmitted++
			ok = true
		}
	}

	e.previous = e.current
	return emitted, ok
}

// flushLetter decodes the buffered pattern and appends the result to the
// output. A flush on an empty buffer is a no-op, which guards the double
// flush when an idle flush races a rising-edge flush.
func (e *Engine) flushLetter(now int64) {
	if e.buffer.Len() == 0 {
		return
	}
	pattern := e.buffer.Pattern()
	e.buffer.Clear()

	ch := morse.Decode(pattern)
	if ch == 0 {
		return
	}
	if e.output.Append(ch) == Overflowed {
		e.stats.CharsDropped++
	}
	e.stats.LettersDecoded++

	if e.letterCb != nil {
		e.letterCb(Letter{Pattern: pattern, Char: ch, WhenMs: now})
	}
}

func (e *Engine) appendSymbol(sym byte) {
	if e.buffer.Append(sym) == Overflowed {
		e.stats.SymbolsDropped++
		return
	}
	e.stats.SymbolsAppended++
}

// LightState returns the light state confirmed by the most recent tick.
func (e *Engine) LightState() bool {
	return e.previous
}

// Pending returns the dot/dash pattern accumulated for the current letter.
func (e *Engine) Pending() string {
	return e.buffer.Pattern()
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Reset clears all decoder state and re-seeds the timers from startMs.
func (e *Engine) Reset(startMs int64) {
	e.previous = false
	e.current = false
	e.pulseStart = 0
	e.gapStart = startMs
	e.lastActivity = startMs
	e.lastEmission = 0
	e.buffer.Clear()
	e.output.Clear()
	e.stats = Stats{}
}
