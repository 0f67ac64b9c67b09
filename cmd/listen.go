// cmd/listen.go
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lightlab/morserx/internal/adc"
	"github.com/lightlab/morserx/internal/config"
	"github.com/lightlab/morserx/internal/report"
	"github.com/lightlab/morserx/internal/rx"
	"github.com/spf13/cobra"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Decode the optical signal and print received messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Get()
		if err != nil {
			return err
		}
		return runListen(cmd.Context(), settings)
	},
}

func init() {
	rootCmd.AddCommand(listenCmd)
}

func runListen(parent context.Context, settings *config.Settings) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, err := newSource(ctx, settings)
	if err != nil {
		return fmt.Errorf("init source: %w", err)
	}
	defer source.Close()

	reporter, err := newReporter(settings)
	if err != nil {
		return fmt.Errorf("init reporter: %w", err)
	}
	defer reporter.Close()

	engine, err := rx.NewEngine(rx.Config{
		LightThreshold:  settings.LightThreshold,
		DotDurationMs:   int64(settings.DotDurationMs),
		DashMinMs:       int64(settings.DashMinMs),
		LetterGapMs:     int64(settings.LetterGapMs),
		WordGapMs:       int64(settings.WordGapMs),
		SymbolCapacity:  settings.SymbolCapacity,
		MessageCapacity: settings.MessageCapacity,
	}, 0)
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}

	if settings.Debug {
		engine.SetLetterCallback(func(l rx.Letter) {
			log.Printf("decoded %q = %q", l.Pattern, string(l.Char))
		})
	}

	interval := time.Duration(settings.SampleIntervalMs) * time.Millisecond
	log.Printf("listening: source=%s interval=%v threshold=%d dot=%dms",
		settings.Source, interval, settings.LightThreshold, settings.DotDurationMs)

	return rx.Run(ctx, engine, source, reporter, interval)
}

// newSource builds the configured intensity source.
func newSource(ctx context.Context, settings *config.Settings) (adc.Source, error) {
	switch settings.Source {
	case "serial":
		return adc.NewSerial(settings.SerialPort, settings.SerialBaud)
	case "audio":
		audio := adc.NewAudio(adc.AudioConfig{
			DeviceIndex: settings.DeviceIndex,
			SampleRate:  uint32(settings.SampleRate),
			BufferSize:  uint32(settings.BufferSize),
		})
		if err := audio.Init(); err != nil {
			return nil, err
		}
		if err := audio.Start(ctx); err != nil {
			_ = audio.Close()
			return nil, err
		}
		return audio, nil
	case "gpio":
		return adc.NewGPIO(settings.GPIOChip, settings.GPIOPin)
	default:
		return nil, fmt.Errorf("unknown source %q", settings.Source)
	}
}

// newReporter builds the console reporter, fanned out to MQTT when enabled.
func newReporter(settings *config.Settings) (report.Reporter, error) {
	console := report.NewConsole(os.Stdout)
	if !settings.MQTTEnabled {
		return console, nil
	}

	mq, err := report.NewMQTT(settings.Broker, settings.Topic, settings.ClientID)
	if err != nil {
		return nil, err
	}
	return report.Multi{console, mq}, nil
}
