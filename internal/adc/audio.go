// internal/adc/audio.go
package adc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gen2brain/malgo"
)

var (
	ErrNotInitialized = errors.New("audio source not initialized")
	ErrAlreadyRunning = errors.New("audio source already running")
)

// AudioConfig holds audio capture configuration for the envelope source.
type AudioConfig struct {
	DeviceIndex int    // -1 for default device
	SampleRate  uint32 // e.g., 48000
	BufferSize  uint32 // frames per callback
}

// DefaultAudioConfig returns sensible defaults for envelope sampling.
func DefaultAudioConfig() AudioConfig {
	return AudioConfig{
		DeviceIndex: -1,
		SampleRate:  48000,
		BufferSize:  512,
	}
}

// Audio turns a capture device into an intensity source: each incoming buffer
// is reduced to its peak amplitude, scaled to the 0..MaxReading range. Useful
// when the photodiode is wired to a sound-card line input instead of a
// dedicated ADC.
type Audio struct {
	config  AudioConfig
	ctx     *malgo.AllocatedContext
	device  *malgo.Device
	running bool
	mu      sync.Mutex

	// latest holds the most recent intensity reading
	latest atomic.Int64
}

// NewAudio creates an audio-backed intensity source.
func NewAudio(cfg AudioConfig) *Audio {
	return &Audio{config: cfg}
}

// Init initializes the audio backend.
func (a *Audio) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("init audio context: %w", err)
	}
	a.ctx = ctx
	return nil
}

// ListDevices returns available capture devices.
func (a *Audio) ListDevices() ([]malgo.DeviceInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ctx == nil {
		return nil, ErrNotInitialized
	}
	infos, err := a.ctx.Devices(malgo.Capture)
	if err != nil {
		return nil, fmt.Errorf("enumerate devices: %w", err)
	}
	return infos, nil
}

// Start begins capture. The device keeps the latest envelope reading current
// until ctx is cancelled or Close is called.
func (a *Audio) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return ErrAlreadyRunning
	}
	if a.ctx == nil {
		a.mu.Unlock()
		return ErrNotInitialized
	}
	a.mu.Unlock()

	deviceConfig := malgo.DeviceConfig{
		DeviceType:         malgo.Capture,
		SampleRate:         a.config.SampleRate,
		PeriodSizeInFrames: a.config.BufferSize,
		Capture: malgo.SubConfig{
			Format:   malgo.FormatF32,
			Channels: 1,
		},
	}

	if a.config.DeviceIndex >= 0 {
		devices, err := a.ListDevices()
		if err != nil {
			return err
		}
		if a.config.DeviceIndex >= len(devices) {
			return fmt.Errorf("device index %d out of range (have %d devices)",
				a.config.DeviceIndex, len(devices))
		}
		deviceConfig.Capture.DeviceID = devices[a.config.DeviceIndex].ID.Pointer()
	}

	onRecvFrames := func(outputSamples, inputSamples []byte, frameCount uint32) {
		if len(inputSamples) == 0 {
			return
		}
		a.latest.Store(int64(envelope(inputSamples)))
	}

	device, err := malgo.InitDevice(a.ctx.Context, deviceConfig, malgo.DeviceCallbacks{Data: onRecvFrames})
	if err != nil {
		return fmt.Errorf("init device: %w", err)
	}
	if err := device.Start(); err != nil {
		device.Uninit()
		return fmt.Errorf("start device: %w", err)
	}

	a.mu.Lock()
	a.device = device
	a.running = true
	a.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = a.Close()
	}()

	return nil
}

// Read returns the most recent envelope reading. The value is refreshed
// per capture buffer, which must be shorter than the sampling interval's
// resolution requirements allow.
func (a *Audio) Read() (int, error) {
	a.mu.Lock()
	running := a.running
	a.mu.Unlock()
	if !running {
		return 0, ErrNotInitialized
	}
	return int(a.latest.Load()), nil
}

// Close stops the device and releases all audio resources.
func (a *Audio) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.device != nil {
		_ = a.device.Stop()
		a.device.Uninit()
		a.device = nil
	}
	a.running = false

	if a.ctx != nil {
		if err := a.ctx.Uninit(); err != nil {
			return fmt.Errorf("uninit context: %w", err)
		}
		a.ctx.Free()
		a.ctx = nil
	}
	return nil
}

// envelope reduces a buffer of little-endian float32 samples to a peak
// amplitude scaled to 0..MaxReading.
func envelope(data []byte) int {
	peak := float32(0)
	for offset := 0; offset+4 <= len(data); offset += 4 {
		bits := uint32(data[offset]) |
			uint32(data[offset+1])<<8 |
			uint32(data[offset+2])<<16 |
			uint32(data[offset+3])<<24
		s := math.Float32frombits(bits)
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	if peak > 1 {
		peak = 1
	}
	return int(peak * MaxReading)
}
