package main

import (
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var logLevel string

// NewRootCmd builds the chashbench command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chashbench",
		Short:         "Load, benchmark and compare chash tables",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")

	root.AddCommand(newRunCmd(), newParseCmd(), newCompareCmd())
	return root
}

// newLogger returns a logfmt logger on w filtered by the --log-level flag
func newLogger(w io.Writer) (log.Logger, error) {
	var opt level.Option
	switch logLevel {
	case "debug":
		opt = level.AllowDebug()
	case "info":
		opt = level.AllowInfo()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		return nil, errors.Errorf("invalid log level %q", logLevel)
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
	return level.NewFilter(logger, opt), nil
}
