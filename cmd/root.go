// cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/lightlab/morserx/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "morserx",
	Short: "Optical Morse code receiver and transmitter",
	Long: `morserx decodes a binary optical signal (a light read through a photodiode)
into text using Morse-code timing, and can bit-bang the matching signal out
through a GPIO pin for round-trip testing.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags (override config file)
	rootCmd.PersistentFlags().StringP("source", "s", "serial", "intensity source (serial, audio, gpio)")
	rootCmd.PersistentFlags().IntP("threshold", "t", 80, "raw reading above which the light counts as ON")
	rootCmd.PersistentFlags().StringP("broker", "b", "tcp://127.0.0.1:1883", "MQTT broker address")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "print each decoded letter")

	// Bind flags to viper
	viper.BindPFlag("source", rootCmd.PersistentFlags().Lookup("source"))
	viper.BindPFlag("light_threshold", rootCmd.PersistentFlags().Lookup("threshold"))
	viper.BindPFlag("broker", rootCmd.PersistentFlags().Lookup("broker"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
}
