package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oleg578/readfile/arrowtable"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	var formatName string

	cmd := &cobra.Command{
		Use:   "export FILE OUT",
		Short: "Export columns as an Arrow IPC or Parquet file",
		Long: `Extract the selected columns of FILE and write them to OUT as an Arrow
IPC file or a Snappy-compressed Parquet file.

Without --format the format follows the extension of OUT: .parquet and .pq
select Parquet, anything else Arrow.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := formatName
			if name == "" {
				name = formatFromExt(args[1])
			}
			format, err := arrowtable.ParseFormat(name)
			if err != nil {
				return err
			}

			opts, logger, err := tableOptions(cmd.Context())
			if err != nil {
				return err
			}
			tbl, err := extractNamed(args[0], opts, logger)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			if err := arrowtable.Export(args[1], tbl, format); err != nil {
				return fmt.Errorf("failed to export %s: %w", args[1], err)
			}
			logger.Info("exported table", "file", args[1], "format", format.String(), "rows", tbl.Rows)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s (%s)\n", tbl.Rows, args[1], format)
			return nil
		},
	}

	cmd.Flags().StringVar(&formatName, "format", "", "Output format (arrow|parquet)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"arrow", "parquet"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet", ".pq":
		return "parquet"
	}
	return "arrow"
}
