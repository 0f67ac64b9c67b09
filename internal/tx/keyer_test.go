package tx

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTransmitter_Send(t *testing.T) {
	keyer := NewFakeKeyer()
	tr := NewTransmitter(keyer)

	var slept []time.Duration
	tr.sleep = func(d time.Duration) { slept = append(slept, d) }

	segments := []Segment{
		{On: true, Duration: 10 * time.Millisecond},
		{On: false, Duration: 10 * time.Millisecond},
		{On: true, Duration: 30 * time.Millisecond},
	}

	if err := tr.Send(context.Background(), segments); err != nil {
		t.Fatalf("Send: %v", err)
	}

	// Three keyed states plus the forced final off.
	wantStates := []bool{true, false, true, false}
	if len(keyer.States) != len(wantStates) {
		t.Fatalf("keyed %d states, want %d: %v", len(keyer.States), len(wantStates), keyer.States)
	}
	for i, want := range wantStates {
		if keyer.States[i] != want {
			t.Errorf("state[%d] = %v, want %v", i, keyer.States[i], want)
		}
	}

	wantSlept := []time.Duration{10 * time.Millisecond, 10 * time.Millisecond, 30 * time.Millisecond}
	if len(slept) != len(wantSlept) {
		t.Fatalf("slept %d times, want %d", len(slept), len(wantSlept))
	}
	for i, want := range wantSlept {
		if slept[i] != want {
			t.Errorf("sleep[%d] = %v, want %v", i, slept[i], want)
		}
	}
}

func TestTransmitter_SendCancelled(t *testing.T) {
	keyer := NewFakeKeyer()
	tr := NewTransmitter(keyer)
	tr.sleep = func(time.Duration) {}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	segments := []Segment{{On: true, Duration: time.Millisecond}}
	if err := tr.Send(ctx, segments); !errors.Is(err, context.Canceled) {
		t.Fatalf("Send error = %v, want context.Canceled", err)
	}

	// Nothing keyed on besides the forced final off.
	for _, on := range keyer.States {
		if on {
			t.Errorf("line keyed on after cancellation: %v", keyer.States)
		}
	}
}

func TestTransmitter_KeyerError(t *testing.T) {
	keyer := NewFakeKeyer()
	keyer.SetError = errors.New("line busy")
	tr := NewTransmitter(keyer)
	tr.sleep = func(time.Duration) {}

	err := tr.Send(context.Background(), []Segment{{On: true, Duration: time.Millisecond}})
	if err == nil {
		t.Fatal("Send returned nil, want keyer error")
	}
	if !errors.Is(err, keyer.SetError) {
		t.Errorf("error = %v, want wrapped %v", err, keyer.SetError)
	}
	if !strings.Contains(err.Error(), "key line") {
		t.Errorf("error = %q, want \"key line\" context", err)
	}
}

func TestTransmitter_EmptyTimeline(t *testing.T) {
	keyer := NewFakeKeyer()
	tr := NewTransmitter(keyer)
	tr.sleep = func(time.Duration) {}

	if err := tr.Send(context.Background(), nil); err != nil {
		t.Fatalf("Send: %v", err)
	}
	// Only the forced final off.
	if len(keyer.States) != 1 || keyer.States[0] {
		t.Errorf("states = %v, want single off", keyer.States)
	}
}
