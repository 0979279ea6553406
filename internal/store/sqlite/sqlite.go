// Package sqlite loads extracted tables into SQLite databases.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/oleg578/readfile"
	"github.com/oleg578/readfile/arrowtable"
)

// ErrInvalidName is returned for table or column names that are not plain
// SQL identifiers.
var ErrInvalidName = errors.New("sqlite: invalid identifier")

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadOptions controls how a table is written.
type LoadOptions struct {
	// Replace drops an existing table of the same name before loading.
	Replace bool
}

// Open opens the SQLite database at path, creating it when missing.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// Load creates table when needed and inserts every row of tbl in one
// transaction. It returns the number of rows inserted.
func Load(ctx context.Context, db *sql.DB, table string, tbl *readfile.Table, opts LoadOptions) (int64, error) {
	if !identifier.MatchString(table) {
		return 0, fmt.Errorf("%w: table %q", ErrInvalidName, table)
	}
	if tbl.Width() == 0 {
		return 0, fmt.Errorf("table %s: no columns to load", table)
	}

	names := make([]string, tbl.Width())
	defs := make([]string, tbl.Width())
	for i, c := range tbl.Columns {
		name := arrowtable.FieldName(tbl, i)
		if !identifier.MatchString(name) {
			return 0, fmt.Errorf("%w: column %q", ErrInvalidName, name)
		}
		names[i] = quote(name)
		defs[i] = names[i] + " " + columnType(c.Kind())
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if opts.Replace {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quote(table)); err != nil {
			return 0, fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	create := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quote(table), strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return 0, fmt.Errorf("failed to create table %s: %w", table, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quote(table), strings.Join(names, ", "), placeholders)
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	args := make([]any, len(names))
	for r := 0; r < tbl.Rows; r++ {
		for j, c := range tbl.Columns {
			args[j] = sqlValue(c, r)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("failed to insert row %d: %w", r+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return int64(tbl.Rows), nil
}

func quote(name string) string {
	return `"` + name + `"`
}

func columnType(k readfile.Kind) string {
	switch k {
	case readfile.Int, readfile.Bool:
		return "INTEGER"
	case readfile.Float:
		return "REAL"
	default:
		return "TEXT"
	}
}

// sqlValue stores booleans as 0/1, SQLite having no boolean type.
func sqlValue(c readfile.Column, i int) any {
	if c.Kind() == readfile.Bool {
		if c.Bools()[i] {
			return int64(1)
		}
		return int64(0)
	}
	return c.At(i)
}
