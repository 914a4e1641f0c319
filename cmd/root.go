/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/healthassist/healthassist/config"
	"github.com/healthassist/healthassist/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataFile string
	lenient  bool
	verbose  bool

	cfg    config.Config
	logger = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "healthassist",
	Short: "Track body measurements and derive health targets",
	Long: `healthassist records body measurements for named users and derives
body-fat percentage, a daily calorie target and macronutrient targets.
Records are kept in a comma-separated table.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.LoadConfig()
		if !cmd.Flags().Changed("file") {
			dataFile = cfg.DataFile
		}
		if !cmd.Flags().Changed("lenient") {
			lenient = cfg.Lenient()
		}

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		l, err := logging.New(level)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataFile, "file", "f", "user_data.csv", "path of the .csv table; one-shot commands keep its row order, shell \"save\" writes newest first")
	rootCmd.PersistentFlags().BoolVar(&lenient, "lenient", false, "skip malformed table lines instead of failing")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// openSession builds a session bound to the command's streams.
func openSession(cmd *cobra.Command) *session {
	return newSession(sessionOptions{
		in:      cmd.InOrStdin(),
		out:     cmd.OutOrStdout(),
		errOut:  cmd.ErrOrStderr(),
		lenient: lenient,
		logger:  logger,
	})
}
