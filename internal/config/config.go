// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	AppName       = "morserx"
	ConfigType    = "yaml"
	DefaultConfig = `# morserx configuration (fast profile: 10ms dot, ~10 chars/sec)

# Sampling
sample_interval_ms: 1   # Tick interval; keep small relative to the dot duration
light_threshold: 80     # Raw reading above which the light counts as ON

# Morse timing (milliseconds)
dot_duration_ms: 10     # Dot duration
dash_min_ms: 20         # Minimum pulse duration classified as a dash (2x dot)
symbol_gap_ms: 10       # Gap between symbols within a letter
letter_gap_ms: 30       # Gap between letters (3x dot)
word_gap_ms: 70         # Gap between words (7x dot)
# Slow profile (hand-keyed senders): dot 200, dash_min 400, gaps 200/600/1400

# Buffers
symbol_capacity: 9      # Symbols per letter before overflow
message_capacity: 255   # Characters per message before overflow

# Input source: serial, audio or gpio
source: "serial"
serial_port: "/dev/ttyUSB0"  # Serial ADC stream (one decimal reading per line)
serial_baud: 115200
device_index: -1        # Audio source: -1 for default capture device
sample_rate: 48000      # Audio source: sample rate in Hz
buffer_size: 64         # Audio source: frames per envelope reading
gpio_chip: "gpiochip0"  # GPIO chip for the comparator input and the keyer
gpio_pin: 2             # GPIO source: comparator input pin
tx_pin: 17              # Transmitter: output pin for the send command

# Reporting
mqtt_enabled: false
broker: "tcp://127.0.0.1:1883"
topic: "morserx/receiver/messages"
client_id: "morserx"

# Output
debug: false            # Print each decoded letter as it flushes
`
)

// Settings holds all application configuration
type Settings struct {
	// Sampling
	SampleIntervalMs int `mapstructure:"sample_interval_ms"`
	LightThreshold   int `mapstructure:"light_threshold"`

	// Morse timing (milliseconds)
	DotDurationMs int `mapstructure:"dot_duration_ms"`
	DashMinMs     int `mapstructure:"dash_min_ms"`
	SymbolGapMs   int `mapstructure:"symbol_gap_ms"`
	LetterGapMs   int `mapstructure:"letter_gap_ms"`
	WordGapMs     int `mapstructure:"word_gap_ms"`

	// Buffers
	SymbolCapacity  int `mapstructure:"symbol_capacity"`
	MessageCapacity int `mapstructure:"message_capacity"`

	// Input source
	Source      string `mapstructure:"source"`
	SerialPort  string `mapstructure:"serial_port"`
	SerialBaud  int    `mapstructure:"serial_baud"`
	DeviceIndex int    `mapstructure:"device_index"`
	SampleRate  int    `mapstructure:"sample_rate"`
	BufferSize  int    `mapstructure:"buffer_size"`
	GPIOChip    string `mapstructure:"gpio_chip"`
	GPIOPin     int    `mapstructure:"gpio_pin"`
	TxPin       int    `mapstructure:"tx_pin"`

	// Reporting
	MQTTEnabled bool   `mapstructure:"mqtt_enabled"`
	Broker      string `mapstructure:"broker"`
	Topic       string `mapstructure:"topic"`
	ClientID    string `mapstructure:"client_id"`

	// Output
	Debug bool `mapstructure:"debug"`
}

// Init initializes Viper with defaults and config file.
// Config file search order: current directory, then ~/.config/morserx/
func Init() error {
	// Set defaults (fast profile)
	viper.SetDefault("sample_interval_ms", 1)
	viper.SetDefault("light_threshold", 80)
	viper.SetDefault("dot_duration_ms", 10)
	viper.SetDefault("dash_min_ms", 20)
	viper.SetDefault("symbol_gap_ms", 10)
	viper.SetDefault("letter_gap_ms", 30)
	viper.SetDefault("word_gap_ms", 70)
	viper.SetDefault("symbol_capacity", 9)
	viper.SetDefault("message_capacity", 255)
	viper.SetDefault("source", "serial")
	viper.SetDefault("serial_port", "/dev/ttyUSB0")
	viper.SetDefault("serial_baud", 115200)
	viper.SetDefault("device_index", -1)
	viper.SetDefault("sample_rate", 48000)
	viper.SetDefault("buffer_size", 64)
	viper.SetDefault("gpio_chip", "gpiochip0")
	viper.SetDefault("gpio_pin", 2)
	viper.SetDefault("tx_pin", 17)
	viper.SetDefault("mqtt_enabled", false)
	viper.SetDefault("broker", "tcp://127.0.0.1:1883")
	viper.SetDefault("topic", "morserx/receiver/messages")
	viper.SetDefault("client_id", "morserx")
	viper.SetDefault("debug", false)

	viper.SetConfigType(ConfigType)

	// Priority order: current directory first, then XDG config
	viper.AddConfigPath(".")

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	viper.AddConfigPath(filepath.Join(configDir, AppName))

	// Try .config.yaml first (hidden file), then config.yaml
	viper.SetConfigName(".config")
	if err = viper.ReadInConfig(); err != nil {
		viper.SetConfigName("config")
		err = viper.ReadInConfig()
	}

	// If no config exists anywhere, create the default in the XDG config dir
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			xdgConfigPath := filepath.Join(configDir, AppName)
			if err = ensureConfigExists(xdgConfigPath); err != nil {
				return err
			}
			if err = viper.ReadInConfig(); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
		} else {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return nil
}

func ensureConfigExists(configPath string) error {
	configFile := filepath.Join(configPath, "config.yaml")

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err = os.MkdirAll(configPath, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
		if err = os.WriteFile(configFile, []byte(DefaultConfig), 0644); err != nil {
			return fmt.Errorf("write default config: %w", err)
		}
	}
	return nil
}

// Get returns the current settings
func Get() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &s, nil
}

// Validate checks that all settings are within acceptable ranges
func (s *Settings) Validate() error {
	var errs []error

	// Sampling
	if s.SampleIntervalMs < 1 {
		errs = append(errs, fmt.Errorf("sample_interval_ms must be at least 1, got %d", s.SampleIntervalMs))
	}
	if s.LightThreshold < 0 || s.LightThreshold >= 4095 {
		errs = append(errs, fmt.Errorf("light_threshold must be between 0 and 4094, got %d", s.LightThreshold))
	}

	// Timing ordering; violating these makes classification ambiguous
	if s.DotDurationMs < 1 {
		errs = append(errs, fmt.Errorf("dot_duration_ms must be at least 1, got %d", s.DotDurationMs))
	}
	if s.DashMinMs <= s.DotDurationMs/2 {
		errs = append(errs, fmt.Errorf("dash_min_ms (%d) must exceed half of dot_duration_ms (%d)", s.DashMinMs, s.DotDurationMs))
	}
	if s.SymbolGapMs < 1 {
		errs = append(errs, fmt.Errorf("symbol_gap_ms must be at least 1, got %d", s.SymbolGapMs))
	}
	if s.LetterGapMs <= s.DashMinMs {
		errs = append(errs, fmt.Errorf("letter_gap_ms (%d) must exceed dash_min_ms (%d)", s.LetterGapMs, s.DashMinMs))
	}
	if s.WordGapMs <= s.LetterGapMs {
		errs = append(errs, fmt.Errorf("word_gap_ms (%d) must exceed letter_gap_ms (%d)", s.WordGapMs, s.LetterGapMs))
	}

	// Sampling resolution: the tick must be small relative to the dot
	if s.DotDurationMs >= 1 && s.SampleIntervalMs*2 > s.DotDurationMs {
		errs = append(errs, fmt.Errorf("sample_interval_ms (%d) must be at most half of dot_duration_ms (%d)", s.SampleIntervalMs, s.DotDurationMs))
	}

	// Buffers
	if s.SymbolCapacity < 1 || s.SymbolCapacity > 64 {
		errs = append(errs, fmt.Errorf("symbol_capacity must be between 1 and 64, got %d", s.SymbolCapacity))
	}
	if s.MessageCapacity < 1 || s.MessageCapacity > 65536 {
		errs = append(errs, fmt.Errorf("message_capacity must be between 1 and 65536, got %d", s.MessageCapacity))
	}

	// Input source
	validSources := map[string]bool{
		"serial": true,
		"audio":  true,
		"gpio":   true,
	}
	if !validSources[s.Source] {
		errs = append(errs, fmt.Errorf("source must be one of serial, audio, gpio, got %q", s.Source))
	}
	if s.Source == "serial" && s.SerialBaud < 1 {
		errs = append(errs, fmt.Errorf("serial_baud must be positive, got %d", s.SerialBaud))
	}
	if s.Source == "audio" {
		if s.SampleRate < 8000 || s.SampleRate > 192000 {
			errs = append(errs, fmt.Errorf("sample_rate must be between 8000 and 192000 Hz, got %d", s.SampleRate))
		}
		if s.BufferSize < 16 || s.BufferSize > 8192 {
			errs = append(errs, fmt.Errorf("buffer_size must be between 16 and 8192, got %d", s.BufferSize))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
