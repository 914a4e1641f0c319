/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/healthassist/healthassist/internal/storage"
	"github.com/spf13/cobra"
)

// archiveCmd represents the archive command
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Copy the table to and from object storage",
	Long: `Uploads or downloads the .csv table using the backend selected by
STORAGE_BACKEND (minio or gcs). The object key defaults to the table's file name.`,
}

var archivePushCmd = &cobra.Command{
	Use:   "push [key]",
	Short: "Upload the table",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		archive, err := storage.Open(cmd.Context(), cfg.Storage)
		if err != nil {
			return err
		}
		key, err := archive.Push(cmd.Context(), dataFile, optionalArg(args))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s to %s/%s\n", dataFile, archive.Bucket(), key)
		return nil
	},
}

var archivePullCmd = &cobra.Command{
	Use:   "pull [key]",
	Short: "Download a table, replacing the local one",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		archive, err := storage.Open(cmd.Context(), cfg.Storage)
		if err != nil {
			return err
		}
		key, err := archive.Pull(cmd.Context(), optionalArg(args), dataFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %s/%s to %s\n", archive.Bucket(), key, dataFile)
		return nil
	},
}

var archiveRemoveCmd = &cobra.Command{
	Use:   "rm <key>",
	Short: "Delete an archived table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		archive, err := storage.Open(cmd.Context(), cfg.Storage)
		if err != nil {
			return err
		}
		if err := archive.Remove(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s/%s\n", archive.Bucket(), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archivePushCmd, archivePullCmd, archiveRemoveCmd)
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
