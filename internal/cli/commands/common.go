// Package commands implements the readfile subcommands.
package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/oleg578/readfile"
	"github.com/oleg578/readfile/internal/cli/config"
	"github.com/oleg578/readfile/internal/cli/render"
)

// tableOptions builds extraction options from the command configuration.
func tableOptions(ctx context.Context) (readfile.TableOptions, *slog.Logger, error) {
	logger := config.GetLogger(ctx)
	opts, err := config.FromContext(ctx).TableOptions(logger)
	return opts, logger, err
}

func newRenderer(cmd *cobra.Command) *render.Renderer {
	return render.New(cmd.OutOrStdout(), config.FromContext(cmd.Context()).OutputFormat())
}

// extractNamed extracts path and names the columns from its header when the
// file has a usable one.
func extractNamed(path string, opts readfile.TableOptions, logger *slog.Logger) (*readfile.Table, error) {
	tbl, err := readfile.Dict(path, opts)
	if err == nil {
		return tbl, nil
	}
	var cerr *readfile.ConfigError
	if errors.Is(err, readfile.ErrHeaderNotFound) || (errors.As(err, &cerr) && cerr.Arg == "header") {
		logger.Debug("columns left unnamed", "file", path, "reason", err)
		return readfile.ExtractTable(path, opts)
	}
	return nil, err
}
