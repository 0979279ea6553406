package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/oleg578/readfile"
)

// NewTableCommand creates the table command.
func NewTableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "table FILE...",
		Short: "Extract columns and print them",
		Long: `Extract the selected columns of each file and print them in the
format chosen with --output (table, json, yaml, csv or markdown).

Files are read concurrently and printed in argument order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, logger, err := tableOptions(cmd.Context())
			if err != nil {
				return err
			}

			tables := make([]*readfile.Table, len(args))
			g, _ := errgroup.WithContext(cmd.Context())
			g.SetLimit(runtime.GOMAXPROCS(0))
			for i, path := range args {
				g.Go(func() error {
					tbl, err := extractNamed(path, opts, logger)
					if err != nil {
						return fmt.Errorf("failed to read %s: %w", path, err)
					}
					tables[i] = tbl
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			r := newRenderer(cmd)
			for i, tbl := range tables {
				logger.Debug("extracted table", "file", args[i], "rows", tbl.Rows, "columns", tbl.Width(), "shape", tbl.Shape())
				if err := r.Table(args[i], tbl); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
