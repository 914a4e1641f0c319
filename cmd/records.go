/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a user by answering prompts",
	Long: `Prompts for name, gender, age, body measurements and lifestyle,
then stores the new user at the top of the table.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate(cmd, func(s *session) error {
			_, err := s.add()
			return err
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show [name|all]",
	Short: "Display one user or all users",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "all"
		if len(args) == 1 {
			name = args[0]
		}
		s := openSession(cmd)
		if err := s.loadIfExists(dataFile); err != nil {
			return err
		}
		return s.show(name)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete the first user with the given name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate(cmd, func(s *session) error {
			return s.remove(args[0])
		})
	},
}

var bodyFatCmd = &cobra.Command{
	Use:   "bodyfat <name>",
	Short: "Compute body-fat percentage and classification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate(cmd, func(s *session) error {
			return s.bodyFat(args[0])
		})
	},
}

var caloriesCmd = &cobra.Command{
	Use:   "calories <name>",
	Short: "Compute the recommended daily calorie intake",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate(cmd, func(s *session) error {
			return s.calories(args[0])
		})
	},
}

var mealPrepCmd = &cobra.Command{
	Use:   "mealprep <name>",
	Short: "Split the daily calorie target into macronutrients",
	Long: `Computes grams of carbohydrate, protein and fat from the user's daily
calorie target. Run "calories" for the user first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutate(cmd, func(s *session) error {
			return s.mealPrep(args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(addCmd, showCmd, deleteCmd, bodyFatCmd, caloriesCmd, mealPrepCmd)
}

// mutate loads the table, applies fn and writes the table back in file order
// when fn succeeds. Existing rows keep their place and new users go last.
func mutate(cmd *cobra.Command, fn func(s *session) error) error {
	s := openSession(cmd)
	if err := s.loadIfExists(dataFile); err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	return s.records.SaveFileOrder(dataFile)
}
