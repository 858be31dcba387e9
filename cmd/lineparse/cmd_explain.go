package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wippyai/lineparse/schema"
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Show the record type and compiled program of a plan",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := schema.LoadFile(schemaPath)
		if err != nil {
			return err
		}
		return explain(s, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

func explain(s *schema.Schema, w io.Writer) error {
	c, err := s.Compile(nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "schema %s\n\nrecord:\n", s.Name)
	for i := 0; i < c.Type.NumField(); i++ {
		f := c.Type.Field(i)
		fmt.Fprintf(w, "  %-16s %-16s %s\n", f.Tag.Get("parse"), f.Type, f.Name)
	}
	fmt.Fprintf(w, "\n%s\n\n%s", c.Plan, c.Program.Disassemble())
	return nil
}
