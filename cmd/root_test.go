package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/lightlab/morserx/internal/config"
	"github.com/lightlab/morserx/internal/report"
)

func TestRootCmd_PersistentFlags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{"source", "s", "serial"},
		{"threshold", "t", "80"},
		{"broker", "b", "tcp://127.0.0.1:1883"},
		{"debug", "D", "false"},
	}

	for _, tt := range tests {
		flag := rootCmd.PersistentFlags().Lookup(tt.name)
		if flag == nil {
			t.Errorf("flag --%s not registered", tt.name)
			continue
		}
		if flag.Shorthand != tt.shorthand {
			t.Errorf("flag --%s shorthand = %q, want %q", tt.name, flag.Shorthand, tt.shorthand)
		}
		if flag.DefValue != tt.defValue {
			t.Errorf("flag --%s default = %q, want %q", tt.name, flag.DefValue, tt.defValue)
		}
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	for _, name := range []string{"listen", "send"} {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootCmd_Help(t *testing.T) {
	// Keep any config initialization away from the real home directory.
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--help"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	help := out.String()
	for _, want := range []string{"morserx", "listen", "send", "--source", "--threshold"} {
		if !strings.Contains(help, want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestNewSource_Unknown(t *testing.T) {
	settings := &config.Settings{Source: "laser"}
	if _, err := newSource(context.Background(), settings); err == nil {
		t.Error("newSource(laser) = nil error, want unknown source error")
	}
}

func TestNewReporter_ConsoleOnlyWhenMQTTDisabled(t *testing.T) {
	settings := &config.Settings{MQTTEnabled: false}
	rep, err := newReporter(settings)
	if err != nil {
		t.Fatalf("newReporter: %v", err)
	}
	if _, ok := rep.(*report.Console); !ok {
		t.Errorf("newReporter = %T, want *report.Console", rep)
	}
}

func TestSendCmd_RequiresMessage(t *testing.T) {
	if err := sendCmd.Args(sendCmd, nil); err == nil {
		t.Error("send accepted zero arguments, want error")
	}
	if err := sendCmd.Args(sendCmd, []string{"SOS"}); err != nil {
		t.Errorf("send rejected one argument: %v", err)
	}
}
