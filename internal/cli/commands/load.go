package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/oleg578/readfile/internal/store/sqlite"
)

// NewLoadCommand creates the load command.
func NewLoadCommand() *cobra.Command {
	var (
		dbPath  string
		table   string
		replace bool
	)

	cmd := &cobra.Command{
		Use:   "load FILE",
		Short: "Load columns into a SQLite table",
		Long: `Extract the selected columns of FILE and insert them into a SQLite
table, creating the database and the table when needed.

Integer and boolean columns become INTEGER, floats REAL and text TEXT. The
table name defaults to the base name of FILE.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, logger, err := tableOptions(cmd.Context())
			if err != nil {
				return err
			}
			tbl, err := extractNamed(args[0], opts, logger)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			name := table
			if name == "" {
				name = tableName(args[0])
			}

			db, err := sqlite.Open(dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			n, err := sqlite.Load(cmd.Context(), db, name, tbl, sqlite.LoadOptions{Replace: replace})
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", args[0], err)
			}
			logger.Info("loaded table", "db", dbPath, "table", name, "rows", n)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d rows into %s.%s\n", n, dbPath, name)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the SQLite database")
	cmd.Flags().StringVar(&table, "table", "", "Table name (default: base name of FILE)")
	cmd.Flags().BoolVar(&replace, "replace", false, "Drop an existing table first")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

// tableName derives an SQL identifier from a file name.
func tableName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return r
		}
		return '_'
	}, base)
	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = "t_" + name
	}
	return name
}
