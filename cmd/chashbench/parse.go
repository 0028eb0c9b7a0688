package main

import (
	"os"
	"strings"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/theflywheel/chash/internal/benchfmt"
)

func newParseCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "parse <benchmark_output_file> [commit_id] [branch_name]",
		Short: "Convert go test -bench output into a JSON summary",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			inputFile := args[0]
			commitID, branch := "unknown", "unknown"
			if len(args) >= 2 {
				commitID = args[1]
			}
			if len(args) >= 3 {
				branch = args[2]
			}

			data, err := os.ReadFile(inputFile)
			if err != nil {
				return errors.Wrap(err, "failed to read benchmark output")
			}

			summary := benchfmt.Parse(string(data), commitID, branch)
			if len(summary.Results) == 0 {
				return errors.Errorf("no benchmark results found in %s", inputFile)
			}

			if output == "" {
				output = strings.TrimSuffix(inputFile, ".txt") + ".json"
			}
			if err := benchfmt.Write(output, summary); err != nil {
				return err
			}

			level.Info(logger).Log("msg", "benchmark results written", "path", output, "results", len(summary.Results))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: input path with .json extension)")

	return cmd
}
