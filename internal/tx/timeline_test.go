package tx

import (
	"errors"
	"testing"
	"time"
)

func TestTimingFromDot(t *testing.T) {
	dot := 10 * time.Millisecond
	got := TimingFromDot(dot)

	want := Timing{
		Dot:       10 * time.Millisecond,
		Dash:      30 * time.Millisecond,
		SymbolGap: 10 * time.Millisecond,
		LetterGap: 30 * time.Millisecond,
		WordGap:   70 * time.Millisecond,
	}
	if got != want {
		t.Errorf("TimingFromDot(%v) = %+v, want %+v", dot, got, want)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() = %v on derived timing", err)
	}
}

func TestTiming_Validate(t *testing.T) {
	valid := TimingFromDot(10 * time.Millisecond)

	tests := []struct {
		name   string
		mutate func(*Timing)
		want   error
	}{
		{"zero dot", func(tm *Timing) { tm.Dot = 0 }, ErrInvalidDot},
		{"dash at dot", func(tm *Timing) { tm.Dash = tm.Dot }, ErrInvalidDash},
		{"zero symbol gap", func(tm *Timing) { tm.SymbolGap = 0 }, ErrInvalidGaps},
		{"letter gap at symbol gap", func(tm *Timing) { tm.LetterGap = tm.SymbolGap }, ErrInvalidGaps},
		{"word gap at letter gap", func(tm *Timing) { tm.WordGap = tm.LetterGap }, ErrInvalidGaps},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := valid
			tt.mutate(&tm)
			if err := tm.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuild_SOS(t *testing.T) {
	tm := TimingFromDot(10 * time.Millisecond)
	segments, err := Build("SOS", tm)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	on := func(d time.Duration) Segment { return Segment{On: true, Duration: d} }
	off := func(d time.Duration) Segment { return Segment{On: false, Duration: d} }

	want := []Segment{
		// S
		on(tm.Dot), off(tm.SymbolGap), on(tm.Dot), off(tm.SymbolGap), on(tm.Dot),
		off(tm.LetterGap),
		// O
		on(tm.Dash), off(tm.SymbolGap), on(tm.Dash), off(tm.SymbolGap), on(tm.Dash),
		off(tm.LetterGap),
		// S
		on(tm.Dot), off(tm.SymbolGap), on(tm.Dot), off(tm.SymbolGap), on(tm.Dot),
		off(tm.LetterGap),
	}

	if len(segments) != len(want) {
		t.Fatalf("got %d segments, want %d", len(segments), len(want))
	}
	for i := range want {
		if segments[i] != want[i] {
			t.Errorf("segment[%d] = %+v, want %+v", i, segments[i], want[i])
		}
	}
}

func TestBuild_SpaceStretchesGap(t *testing.T) {
	tm := TimingFromDot(10 * time.Millisecond)
	segments, err := Build("E E", tm)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []Segment{
		{On: true, Duration: tm.Dot},
		{On: false, Duration: tm.LetterGap},
		// Together with the preceding letter gap this makes a full word gap.
		{On: false, Duration: tm.WordGap - tm.LetterGap},
		{On: true, Duration: tm.Dot},
		{On: false, Duration: tm.LetterGap},
	}
	if len(segments) != len(want) {
		t.Fatalf("got %d segments, want %d: %+v", len(segments), len(want), segments)
	}
	for i := range want {
		if segments[i] != want[i] {
			t.Errorf("segment[%d] = %+v, want %+v", i, segments[i], want[i])
		}
	}
}

func TestBuild_SkipsUnknownCharacters(t *testing.T) {
	tm := TimingFromDot(10 * time.Millisecond)

	got, err := Build("E!E", tm)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want, err := Build("EE", tm)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d segments, want %d (unknown character must be skipped)", len(got), len(want))
	}
}

func TestBuild_LowercaseFolds(t *testing.T) {
	tm := TimingFromDot(10 * time.Millisecond)

	lower, err := Build("sos", tm)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	upper, err := Build("SOS", tm)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(lower) != len(upper) {
		t.Fatalf("lowercase build differs: %d vs %d segments", len(lower), len(upper))
	}
}

func TestBuild_InvalidTiming(t *testing.T) {
	if _, err := Build("SOS", Timing{}); !errors.Is(err, ErrInvalidDot) {
		t.Errorf("Build error = %v, want ErrInvalidDot", err)
	}
}

func TestBuild_EmptyMessage(t *testing.T) {
	segments, err := Build("", TimingFromDot(10*time.Millisecond))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(segments) != 0 {
		t.Errorf("got %d segments for an empty message, want 0", len(segments))
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"SOS", "... --- ..."},
		{"sos", "... --- ..."},
		{"HI MOM", ".... .. / -- --- --"},
		{"E!T", ". -"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Preview(tt.message); got != tt.want {
			t.Errorf("Preview(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}
