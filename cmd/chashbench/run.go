package main

import (
	"encoding/json"
	"fmt"

	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/theflywheel/chash/internal/benchfmt"
	"github.com/theflywheel/chash/internal/loadgen"
)

func newRunCmd() *cobra.Command {
	var (
		cfg    loadgen.Config
		output string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fill a table with generated keys and report rates and probe lengths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cfg.Logger = logger

			result, err := loadgen.Run(cfg)
			if err != nil {
				return errors.Wrap(err, "run failed")
			}
			level.Info(logger).Log("msg", "run complete", "name", result.Name,
				"insertion_rate", fmt.Sprintf("%.0f", result.Metrics["insertion_rate"]),
				"max_probe", result.Metrics["max_probe"])

			summary := benchfmt.NewSummary(".", result)
			if output != "" {
				if err := benchfmt.Write(output, summary); err != nil {
					return err
				}
				level.Info(logger).Log("msg", "summary written", "path", output)
			}

			data, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return errors.Wrap(err, "failed to marshal summary")
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Name, "name", "", "result name (default <kind>-<hasher>-<keys>)")
	flags.IntVar(&cfg.Keys, "keys", 100_000, "number of distinct keys to insert")
	flags.StringVar(&cfg.Kind, "kind", loadgen.KindInt, "key kind: int, string or uuid")
	flags.StringVar(&cfg.Hasher, "hasher", loadgen.HasherSplitmix, "hasher: splitmix (int), xxhash, xxh3 (string, uuid) or maphash (any)")
	flags.IntVar(&cfg.ValueSize, "value-size", 16, "length of the generated string values")
	flags.IntVar(&cfg.Lookups, "lookups", 10_000, "number of random lookups")
	flags.BoolVar(&cfg.Reserve, "reserve", false, "reserve capacity for all keys up front")
	flags.Uint64Var(&cfg.Seed, "seed", 1, "random seed for key and value generation")
	flags.StringVarP(&output, "output", "o", "", "also write the summary JSON to this file")

	return cmd
}
