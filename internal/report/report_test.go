package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestConsole_Report(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	msg := Message{
		Text:      "SOS SOS",
		Timestamp: time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC),
	}
	if err := c.Report(msg); err != nil {
		t.Fatalf("Report: %v", err)
	}

	want := "09:26:53.589  SOS SOS\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestConsole_Close(t *testing.T) {
	if err := NewConsole(&bytes.Buffer{}).Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestFormatPayload(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	msg := Message{
		Text:      "HELLO WORLD",
		Timestamp: time.Date(2026, 3, 14, 10, 26, 53, 0, loc),
	}

	data, err := FormatPayload(msg)
	if err != nil {
		t.Fatalf("FormatPayload: %v", err)
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if p.Message != "HELLO WORLD" {
		t.Errorf("message = %q, want \"HELLO WORLD\"", p.Message)
	}
	// Timestamps are normalized to UTC.
	if p.Timestamp != "2026-03-14T09:26:53Z" {
		t.Errorf("timestamp = %q, want \"2026-03-14T09:26:53Z\"", p.Timestamp)
	}
}

func TestMulti_FansOut(t *testing.T) {
	a := NewFake()
	b := NewFake()
	m := Multi{a, b}

	msg := Message{Text: "E", Timestamp: time.Now()}
	if err := m.Report(msg); err != nil {
		t.Fatalf("Report: %v", err)
	}

	if len(a.Messages) != 1 || len(b.Messages) != 1 {
		t.Errorf("fan-out counts = %d, %d, want 1, 1", len(a.Messages), len(b.Messages))
	}
}

func TestMulti_FirstErrorWins(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	a := &Fake{ReportError: errA}
	b := &Fake{ReportError: errB}
	c := NewFake()
	m := Multi{a, b, c}

	err := m.Report(Message{Text: "E"})
	if !errors.Is(err, errA) {
		t.Errorf("Report error = %v, want first error %v", err, errA)
	}
	// Later reporters still receive the message.
	if len(c.Messages) != 1 {
		t.Errorf("trailing reporter got %d messages, want 1", len(c.Messages))
	}
}

func TestMulti_Close(t *testing.T) {
	a := NewFake()
	b := NewFake()
	if err := (Multi{a, b}).Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !a.Closed || !b.Closed {
		t.Error("not all reporters were closed")
	}
}

func TestFake_ReportAndClose(t *testing.T) {
	f := NewFake()
	if err := f.Report(Message{Text: "T"}); err != nil {
		t.Fatalf("Report: %v", err)
	}
	if len(f.Messages) != 1 || f.Messages[0].Text != "T" {
		t.Errorf("Messages = %v, want one \"T\"", f.Messages)
	}
	if err := f.Close(); err != nil || !f.Closed {
		t.Errorf("Close: err=%v Closed=%v", err, f.Closed)
	}
}
