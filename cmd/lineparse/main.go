// Command lineparse runs YAML parsing plans over line-oriented input.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/lineparse/machine"
	"github.com/wippyai/lineparse/schema"
)

var (
	logger     = zap.NewNop()
	schemaPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "lineparse",
	Short:         "Parse log lines with declarative plans",
	Long:          "lineparse compiles a YAML plan into a cursor program and uses it to turn lines of text into JSON records.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		logger = l
		machine.SetLogger(l.Named("machine"))
		schema.SetLogger(l.Named("schema"))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&schemaPath, "schema", "s", "", "Path to the YAML plan (required)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Human readable debug logging")
	_ = rootCmd.MarkPersistentFlagRequired("schema")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger returns a development logger when verbose is set and a
// production JSON logger otherwise. Both write to stderr.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
