/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

const shellHelp = `Commands:
  add                 add a user from prompts
  show <name|all>     display one user or every user
  delete <name>       delete a user
  bodyfat <name>      compute body-fat percentage
  calories <name>     compute daily calories
  mealprep <name>     compute macronutrients
  load <path>         replace all users with a .csv table
  save <path>         write all users to a .csv table
  bulk <path>         load a table and derive everything
  help                show this message
  quit                leave the shell
`

// shellCmd represents the shell command
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Work with one in-memory store interactively",
	Long: `Starts a prompt where commands operate on a single in-memory store.
Nothing is written to disk unless "save" is used.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openSession(cmd)
		fmt.Fprint(s.out, "Type \"help\" for a list of commands.\n")
		for {
			quit, err := runShellCommand(cmd, s)
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

// runShellCommand reads and executes one command. Errors of the command
// itself are reported and swallowed; only input failures are returned.
func runShellCommand(cmd *cobra.Command, s *session) (bool, error) {
	word, err := s.prompter.Token("> ")
	if err != nil {
		return false, err
	}

	withArg := func(fn func(string) error) error {
		arg, err := s.prompter.Token("")
		if err != nil {
			return err
		}
		s.report(fn(arg))
		return nil
	}

	switch strings.ToLower(word) {
	case "add":
		if _, err := s.add(); err != nil {
			return false, err
		}
	case "show":
		err = withArg(s.show)
	case "delete":
		err = withArg(s.remove)
	case "bodyfat":
		err = withArg(s.bodyFat)
	case "calories":
		err = withArg(s.calories)
	case "mealprep":
		err = withArg(s.mealPrep)
	case "load":
		err = withArg(s.load)
	case "save":
		err = withArg(s.save)
	case "bulk":
		err = withArg(func(path string) error {
			return s.bulk(cmd.Context(), path)
		})
	case "help":
		fmt.Fprint(s.out, shellHelp)
	case "quit", "exit":
		return true, nil
	default:
		fmt.Fprintf(s.errOut, "Unknown command %q. Type \"help\" for a list of commands.\n", word)
	}
	return false, err
}
