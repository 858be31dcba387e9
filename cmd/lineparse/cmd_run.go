package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/lineparse/errors"
	"github.com/wippyai/lineparse/schema"
)

var runCmd = &cobra.Command{
	Use:   "run [files...]",
	Short: "Parse lines into JSON records",
	Long:  "Parse every line of the given files, or stdin when none are given, and write one JSON object per parsed line to stdout.",
	RunE:  runRun,
}

var (
	onFailure string
	strict    bool
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&onFailure, "on-failure", "skip", "What to do with lines the plan cannot walk: skip, log or fail")
	runCmd.Flags().BoolVar(&strict, "strict", false, "Stop at the first field that does not decode")
}

type failureMode int

const (
	failureSkip failureMode = iota
	failureLog
	failureFail
)

func parseFailureMode(s string) (failureMode, error) {
	switch s {
	case "skip":
		return failureSkip, nil
	case "log":
		return failureLog, nil
	case "fail":
		return failureFail, nil
	default:
		return 0, fmt.Errorf("unknown --on-failure %q, want skip, log or fail", s)
	}
}

type runOptions struct {
	source    string
	onFailure failureMode
	strict    bool
}

type runStats struct {
	Lines    int
	Parsed   int
	Failed   int
	Faults   int
	Duration time.Duration
}

func runRun(cmd *cobra.Command, args []string) error {
	mode, err := parseFailureMode(onFailure)
	if err != nil {
		return err
	}

	s, err := schema.LoadFile(schemaPath)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	total := runStats{}
	inputs := args
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	for _, path := range inputs {
		stats, err := processPath(cmd, s, path, out, runOptions{source: path, onFailure: mode, strict: strict})
		total.add(stats)
		if err != nil {
			return err
		}
	}

	logger.Info("run complete",
		zap.String("schema", s.Name),
		zap.Int("lines", total.Lines),
		zap.Int("parsed", total.Parsed),
		zap.Int("failed", total.Failed),
		zap.Int("faults", total.Faults),
		zap.Duration("duration", total.Duration))
	return nil
}

func processPath(cmd *cobra.Command, s *schema.Schema, path string, w io.Writer, opts runOptions) (runStats, error) {
	if path == "-" {
		return process(s, cmd.InOrStdin(), w, opts)
	}
	f, err := os.Open(path)
	if err != nil {
		return runStats{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return process(s, f, w, opts)
}

func (s *runStats) add(o runStats) {
	s.Lines += o.Lines
	s.Parsed += o.Parsed
	s.Failed += o.Failed
	s.Faults += o.Faults
	s.Duration += o.Duration
}

// process parses each line of r and writes the records it produced to w as
// JSON lines.
func process(s *schema.Schema, r io.Reader, w io.Writer, opts runOptions) (stats runStats, err error) {
	var failed bool
	compiled, err := s.Compile(func(string, any) { failed = true })
	if err != nil {
		return stats, err
	}

	start := time.Now()
	defer func() { stats.Duration = time.Since(start) }()

	enc := json.NewEncoder(w)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	for sc.Scan() {
		line := sc.Text()
		stats.Lines++
		failed = false

		rec, err := compiled.Parse(line)
		switch {
		case err != nil:
			stats.Faults++
			logger.Warn("field did not decode",
				zap.String("source", opts.source),
				zap.Int("line", stats.Lines),
				zap.String("kind", string(errors.KindOf(err))),
				zap.Error(err))
			if opts.strict {
				return stats, fmt.Errorf("%s:%d: %w", opts.source, stats.Lines, err)
			}
			continue

		case failed:
			stats.Failed++
			switch opts.onFailure {
			case failureLog:
				logger.Warn("line does not match plan",
					zap.String("source", opts.source),
					zap.Int("line", stats.Lines),
					zap.String("text", line))
			case failureFail:
				return stats, fmt.Errorf("%s:%d: line does not match plan", opts.source, stats.Lines)
			}
			continue
		}

		if err := enc.Encode(rec); err != nil {
			return stats, fmt.Errorf("write record: %w", err)
		}
		stats.Parsed++
	}
	if err := sc.Err(); err != nil {
		return stats, fmt.Errorf("read %s: %w", opts.source, err)
	}
	return stats, nil
}
