/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
)

// demoCmd represents the demo command
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through the full record lifecycle with two users",
	Long: `Adds two users from prompts, derives metrics for the first, saves the
table, reloads it into a second independent store with bulk derivation,
deletes the second user there and shows both stores.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		first := openSession(cmd)

		firstUser, err := first.add()
		if err != nil {
			return err
		}
		secondUser, err := first.add()
		if err != nil {
			return err
		}

		first.report(first.show(firstUser.Name))
		first.report(first.show("all"))

		first.report(first.bodyFat(firstUser.Name))
		first.report(first.calories(firstUser.Name))
		first.report(first.mealPrep(firstUser.Name))
		first.report(first.save(dataFile))

		second := openSession(cmd)
		second.report(second.bulk(cmd.Context(), dataFile))
		second.report(second.show("all"))
		second.report(second.remove(secondUser.Name))
		second.report(second.show("all"))

		first.report(first.show("all"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
