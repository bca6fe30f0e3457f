// Package cli implements the dtgeo command-line interface.
//
// Two commands are available:
//   - inspect: load a geometry XML dump, build one station and print its
//     layout (superlayers, layers, wire ranges, derived angles)
//   - transform: map a point between two reference frames of a station
//
// Both commands support --verbose (-v) for debug-level logging via
// charmbracelet/log; diagnostics go to stderr, results to stdout.
package cli

import (
	"context"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// newLogger creates the CLI logger writing to w at the given level.
func newLogger(w io.Writer, level charmlog.Level) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *charmlog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the command logger, falling back to the
// package default so commands never hold a nil logger.
func loggerFromContext(ctx context.Context) *charmlog.Logger {
	if l, ok := ctx.Value(loggerKey).(*charmlog.Logger); ok {
		return l
	}

	return charmlog.Default()
}

// Execute runs the dtgeo CLI and returns the first command error.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "dtgeo",
		Short:        "dtgeo inspects the DT chamber geometry",
		Long:         `dtgeo loads the CMS DT geometry description and answers questions about chamber layout and reference-frame transformations.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newInspectCmd())
	root.AddCommand(newTransformCmd())

	return root.ExecuteContext(context.Background())
}
