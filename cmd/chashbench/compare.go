package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/theflywheel/chash/internal/benchfmt"
)

func newCompareCmd() *cobra.Command {
	var (
		threshold float64
		output    string
	)

	cmd := &cobra.Command{
		Use:   "compare <base_json_file> <current_json_file>",
		Short: "Compare two benchmark summaries and fail on significant regressions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := benchfmt.Load(args[0])
			if err != nil {
				return err
			}
			current, err := benchfmt.Load(args[1])
			if err != nil {
				return err
			}

			comparison := benchfmt.Compare(base, current, threshold)
			benchfmt.WriteReport(cmd.OutOrStdout(), comparison)

			if output != "" {
				if err := benchfmt.WriteComparison(output, comparison); err != nil {
					return err
				}
			}

			if comparison.SignificantRegressions > 0 {
				return errors.Errorf("%d significant performance regressions detected", comparison.SignificantRegressions)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&threshold, "threshold", benchfmt.DefaultThreshold, "percent change from which a difference is significant")
	flags.StringVarP(&output, "output", "o", "benchmark-comparison.json", "comparison JSON path, empty to skip")

	return cmd
}
