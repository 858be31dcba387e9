package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wippyai/lineparse/schema"
)

var tryCmd = &cobra.Command{
	Use:   "try",
	Short: "Type lines and watch how the plan parses them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("try needs an interactive terminal on stdin")
		}
		s, err := schema.LoadFile(schemaPath)
		if err != nil {
			return err
		}
		return runInteractive(s, schemaPath)
	},
}

func init() {
	rootCmd.AddCommand(tryCmd)
}
