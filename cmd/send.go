// cmd/send.go
package cmd

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/lightlab/morserx/internal/config"
	"github.com/lightlab/morserx/internal/tx"
	"github.com/spf13/cobra"
)

var sendRepeat int

var sendCmd = &cobra.Command{
	Use:   "send [message]",
	Short: "Transmit a message by bit-banging the GPIO output pin",
	Long: `send keys the configured GPIO pin with the classical Morse timing:
ON for one dot per dot and three dots per dash, with one dot between symbols,
three dots between letters and seven dots between words.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Get()
		if err != nil {
			return err
		}
		return runSend(cmd, strings.Join(args, " "), settings)
	},
}

func init() {
	sendCmd.Flags().IntVarP(&sendRepeat, "repeat", "r", 1, "number of times to send the message")
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, message string, settings *config.Settings) error {
	if sendRepeat < 1 {
		return fmt.Errorf("repeat count must be at least 1, got %d", sendRepeat)
	}

	dot := time.Duration(settings.DotDurationMs) * time.Millisecond
	timing := tx.Timing{
		Dot:       dot,
		Dash:      3 * dot, // transmitter convention, not the receiver's dash_min
		SymbolGap: time.Duration(settings.SymbolGapMs) * time.Millisecond,
		LetterGap: time.Duration(settings.LetterGapMs) * time.Millisecond,
		WordGap:   time.Duration(settings.WordGapMs) * time.Millisecond,
	}

	segments, err := tx.Build(message, timing)
	if err != nil {
		return fmt.Errorf("build timeline: %w", err)
	}
	if len(segments) == 0 {
		return fmt.Errorf("message %q has no sendable characters", message)
	}

	keyer, err := tx.NewGPIOKeyer(settings.GPIOChip, settings.TxPin)
	if err != nil {
		return fmt.Errorf("init keyer: %w", err)
	}
	defer keyer.Close()

	transmitter := tx.NewTransmitter(keyer)
	fmt.Fprintln(cmd.OutOrStdout(), tx.Preview(message))

	for i := 0; i < sendRepeat; i++ {
		if err := transmitter.Send(cmd.Context(), segments); err != nil {
			return fmt.Errorf("send: %w", err)
		}
		if i < sendRepeat-1 {
			time.Sleep(timing.WordGap)
		}
	}

	log.Printf("sent %q %d time(s)", message, sendRepeat)
	return nil
}
