/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/healthassist/healthassist/internal/mq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	bulkPublish bool
	bulkOutput  string
)

// bulkCmd represents the bulk command
var bulkCmd = &cobra.Command{
	Use:   "bulk [path]",
	Short: "Load a table and derive every metric for every user",
	Long: `Loads the table (default: --file), computes body fat, daily calories and
macronutrients for each user and writes the result back. With --publish,
each user's metrics are also sent to the configured message queue.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := dataFile
		if len(args) == 1 {
			path = args[0]
		}
		out := bulkOutput
		if out == "" {
			out = path
		}

		opts := sessionOptions{
			in:      cmd.InOrStdin(),
			out:     cmd.OutOrStdout(),
			errOut:  cmd.ErrOrStderr(),
			lenient: lenient,
			logger:  logger,
		}
		if bulkPublish {
			broker, err := mq.Open(cmd.Context(), cfg.MQ)
			if err != nil {
				return fmt.Errorf("open message queue: %w", err)
			}
			defer func() {
				if err := broker.Close(); err != nil {
					logger.Warn("close message queue", zap.Error(err))
				}
			}()
			opts.publisher = broker
			opts.channel = cfg.MQ.Channel
		}

		s := newSession(opts)
		bulkErr := s.bulk(cmd.Context(), path)
		if s.records.Len() == 0 && bulkErr != nil {
			return bulkErr
		}
		s.report(bulkErr)
		return s.persist(out)
	},
}

func init() {
	rootCmd.AddCommand(bulkCmd)
	bulkCmd.Flags().BoolVar(&bulkPublish, "publish", false, "publish derived metrics to the message queue")
	bulkCmd.Flags().StringVarP(&bulkOutput, "output", "o", "", "write the derived table here instead of back to the input")
}
