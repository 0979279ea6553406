package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oleg578/readfile"
)

func sampleTable(t *testing.T) *readfile.Table {
	t.Helper()
	opts := readfile.DefaultTableOptions()
	opts.DType = readfile.PerColumn(readfile.Int, readfile.Float, readfile.String, readfile.Bool)
	tbl, err := readfile.ExtractTableFrom(strings.NewReader("# id mag name ok\n1 20.5 m31 true\n2 21.25 m33 false\n"), "cat", opts)
	require.NoError(t, err)
	tbl.Names = []string{"id", "mag", "name", "ok"}
	return tbl
}

func TestLoadStatements(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec(`DROP TABLE IF EXISTS "objects"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "objects" ("id" INTEGER, "mag" REAL, "name" TEXT, "ok" INTEGER)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mock.ExpectPrepare(`INSERT INTO "objects" ("id", "mag", "name", "ok") VALUES (?, ?, ?, ?)`)
	prep.ExpectExec().WithArgs(int64(1), 20.5, "m31", int64(1)).WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WithArgs(int64(2), 21.25, "m33", int64(0)).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	n, err := Load(context.Background(), db, "objects", sampleTable(t), LoadOptions{Replace: true})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadRollsBackOnInsertError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "objects" ("id" INTEGER, "mag" REAL, "name" TEXT, "ok" INTEGER)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	prep := mock.ExpectPrepare(`INSERT INTO "objects" ("id", "mag", "name", "ok") VALUES (?, ?, ?, ?)`)
	prep.ExpectExec().WithArgs(int64(1), 20.5, "m31", int64(1)).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err = Load(context.Background(), db, "objects", sampleTable(t), LoadOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "failed to insert row 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadRejectsBadNames(t *testing.T) {
	tests := []struct {
		name  string
		table string
		names []string
	}{
		{name: "table with space", table: "my table", names: []string{"id", "mag", "name", "ok"}},
		{name: "table with quote", table: `x"; DROP`, names: []string{"id", "mag", "name", "ok"}},
		{name: "column with dash", table: "objects", names: []string{"id", "mag-auto", "name", "ok"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()

			tbl := sampleTable(t)
			tbl.Names = tt.names
			_, err = Load(context.Background(), db, tt.table, tbl, LoadOptions{})
			assert.ErrorIs(t, err, ErrInvalidName)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLoadSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	tbl := sampleTable(t)

	n, err := Load(ctx, db, "objects", tbl, LoadOptions{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	// Loading again appends unless Replace is set.
	_, err = Load(ctx, db, "objects", tbl, LoadOptions{})
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM objects`).Scan(&count))
	assert.Equal(t, 4, count)

	_, err = Load(ctx, db, "objects", tbl, LoadOptions{Replace: true})
	require.NoError(t, err)

	var (
		total float64
		name  string
		ok    int
	)
	require.NoError(t, db.QueryRowContext(ctx, `SELECT SUM(mag) FROM objects`).Scan(&total))
	assert.InDelta(t, 41.75, total, 1e-9)
	require.NoError(t, db.QueryRowContext(ctx, `SELECT name, ok FROM objects WHERE id = 1`).Scan(&name, &ok))
	assert.Equal(t, "m31", name)
	assert.Equal(t, 1, ok)
}

func TestLoadUnnamedColumns(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "plain.db"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	tbl := &readfile.Table{
		Columns: []readfile.Column{readfile.IntColumn([]int64{7}), readfile.StringColumn([]string{"x"})},
		Rows:    1,
	}
	_, err = Load(context.Background(), db, "plain", tbl, LoadOptions{})
	require.NoError(t, err)

	var v string
	require.NoError(t, db.QueryRow(`SELECT col1 FROM plain WHERE col0 = 7`).Scan(&v))
	assert.Equal(t, "x", v)
}
