/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/healthassist/healthassist/internal/mq"
	"github.com/healthassist/healthassist/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// eventsCmd represents the events command
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print derived-metric events as they arrive",
	Long: `Subscribes to the channel that "bulk --publish" writes to and prints one
line per event until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		broker, err := mq.Open(ctx, cfg.MQ)
		if err != nil {
			return fmt.Errorf("open message queue: %w", err)
		}
		defer broker.Close()

		err = broker.Subscribe(ctx, cfg.MQ.Channel, printEvent(cmd.OutOrStdout()))
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}

// printEvent decodes derived metrics and writes a summary line. Undecodable
// payloads are logged and acknowledged so they are not redelivered.
func printEvent(w io.Writer) mq.Handler {
	return func(ctx context.Context, msg mq.Message) error {
		var m services.DerivedMetrics
		if err := json.Unmarshal(msg.Data, &m); err != nil {
			logger.Warn("discarding malformed event", zap.String("id", msg.ID), zap.Error(err))
			return nil
		}
		fmt.Fprintf(w, "%s: body fat %.6g%% (%s), %.6g calories, carbs %.6gg, protein %.6gg, fat %.6gg\n",
			m.Name, m.BodyFat.Percentage, m.BodyFat.Group, m.DailyCalories, m.CarbsG, m.ProteinG, m.FatG)
		return nil
	}
}
