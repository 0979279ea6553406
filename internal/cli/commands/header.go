package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oleg578/readfile"
	"github.com/oleg578/readfile/internal/cli/config"
)

// NewHeaderCommand creates the header command.
func NewHeaderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "header FILE...",
		Short: "Print the column names found in file headers",
		Long: `Resolve the column names of each file from its header.

The header is either a single commented line (--layout 1) or one
"# index name description" record per column (--layout 2). Use --columns
to restrict the listing to some names or indices.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, err := config.FromContext(ctx).HeaderOptions(config.GetLogger(ctx))
			if err != nil {
				return err
			}
			r := newRenderer(cmd)
			for _, path := range args {
				h, err := readfile.ResolveHeader(path, opts)
				if err != nil {
					return fmt.Errorf("failed to read header of %s: %w", path, err)
				}
				if err := r.Header(path, &h); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
