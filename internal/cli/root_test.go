package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oleg578/readfile"
	"github.com/oleg578/readfile/internal/store/sqlite"
)

const catalog = `# NUMBER  MAG  CLASS
1  21.3  galaxy
2  19.8  star
3  23.1  galaxy
`

// runCLI executes the root command in a fresh working directory holding the
// given files.
func runCLI(t *testing.T, files map[string]string, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := runCLI(t, nil, "version")
	require.NoError(t, err)
	assert.Equal(t, "readfile v"+Version+"\n", out)
}

func TestHeaderCommand(t *testing.T) {
	out, _, err := runCLI(t, map[string]string{"cat.txt": catalog}, "header", "cat.txt", "-o", "csv")
	require.NoError(t, err)
	assert.Equal(t, "index,name\n0,NUMBER\n1,MAG\n2,CLASS\n", out)

	out, _, err = runCLI(t, map[string]string{"cat.txt": catalog}, "header", "cat.txt", "--lowercase", "-c", "2,0")
	require.NoError(t, err)
	assert.Contains(t, out, "2  class")
	assert.Contains(t, out, "0  number")
}

func TestTableCommand(t *testing.T) {
	out, _, err := runCLI(t, map[string]string{"cat.txt": catalog},
		"table", "cat.txt", "-c", "MAG,NUMBER", "-d", "int,float", "-o", "csv")
	require.NoError(t, err)
	assert.Equal(t, "NUMBER,MAG\n1,21.3\n2,19.8\n3,23.1\n", out)
}

func TestTableCommandManyFiles(t *testing.T) {
	files := map[string]string{
		"a.txt": catalog,
		"b.txt": "# x y\n5 6\n7 8\n",
	}
	out, _, err := runCLI(t, files, "table", "b.txt", "a.txt", "-d", "auto", "-o", "json")
	require.NoError(t, err)

	dec := json.NewDecoder(bytes.NewReader([]byte(out)))
	var docs []map[string]any
	for dec.More() {
		var doc map[string]any
		require.NoError(t, dec.Decode(&doc))
		docs = append(docs, doc)
	}
	require.Len(t, docs, 2)
	assert.Equal(t, "b.txt", docs[0]["file"])
	assert.Equal(t, []any{"x", "y"}, docs[0]["columns"])
	assert.Equal(t, "a.txt", docs[1]["file"])
	assert.Equal(t, []any{"int", "float", "str"}, docs[1]["kinds"])
}

func TestTableCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		is   error
	}{
		{name: "missing file", args: []string{"table", "nope.txt"}, is: os.ErrNotExist},
		{name: "mixed columns", args: []string{"table", "cat.txt", "-c", "1,MAG"}, is: readfile.ErrMixedColumns},
		{name: "unknown kind", args: []string{"table", "cat.txt", "-d", "complex"}, is: readfile.ErrUnknownKind},
		{name: "layout 3", args: []string{"header", "cat.txt", "--layout", "3"}, is: readfile.ErrNotImplemented},
		{name: "strict conversion", args: []string{"table", "cat.txt", "-d", "int", "--strict"}, is: readfile.ErrConversion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, map[string]string{"cat.txt": catalog}, tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.is)
		})
	}
}

func TestConfigFileAndEnv(t *testing.T) {
	files := map[string]string{
		"cat.txt":       catalog,
		"readfile.yaml": "columns: [CLASS]\ndtype: str\noutput: markdown\n",
	}
	t.Setenv("READFILE_DATA_START", "1")

	out, _, err := runCLI(t, files, "table", "cat.txt")
	require.NoError(t, err)
	assert.Equal(t, "| CLASS |\n| --- |\n| star |\n| galaxy |\n", out)

	// Flags win over the file.
	out, _, err = runCLI(t, files, "table", "cat.txt", "-o", "csv")
	require.NoError(t, err)
	assert.Equal(t, "CLASS\nstar\ngalaxy\n", out)
}

func TestConvertCommand(t *testing.T) {
	out, stderr, err := runCLI(t, map[string]string{"cat.txt": catalog},
		"convert", "cat.txt", "mags.csv", "-c", "NUMBER,MAG", "-d", "int,float",
		"--delimiter", ",", "--format", "%d %.2f", "--log-level", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 3 rows to mags.csv")
	assert.Contains(t, stderr, "saved file")

	data, err := os.ReadFile("mags.csv")
	require.NoError(t, err)
	assert.Equal(t, "# NUMBER,MAG\n1,21.30\n2,19.80\n3,23.10\n", string(data))
}

func TestConvertNoClobber(t *testing.T) {
	files := map[string]string{"cat.txt": catalog, "out.txt": "keep\n"}
	_, _, err := runCLI(t, files, "convert", "cat.txt", "out.txt", "--no-clobber")
	require.Error(t, err)
	assert.ErrorIs(t, err, readfile.ErrFileExists)

	data, err := os.ReadFile("out.txt")
	require.NoError(t, err)
	assert.Equal(t, "keep\n", string(data))
}

func TestExportCommand(t *testing.T) {
	out, _, err := runCLI(t, map[string]string{"cat.txt": catalog},
		"export", "cat.txt", "cat.parquet", "-d", "auto")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 3 rows to cat.parquet (parquet)")

	info, err := os.Stat("cat.parquet")
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, _, err = runCLI(t, map[string]string{"cat.txt": catalog}, "export", "cat.txt", "cat.out", "--format", "xlsx")
	require.Error(t, err)
}

func TestLoadCommand(t *testing.T) {
	out, _, err := runCLI(t, map[string]string{"m31-catalog.txt": catalog},
		"load", "m31-catalog.txt", "--db", "cat.db", "-d", "auto")
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded 3 rows into cat.db.m31_catalog")

	db, err := sqlite.Open("cat.db")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var n int
	var mag float64
	row := db.QueryRow(`SELECT COUNT(*), MAX(MAG) FROM m31_catalog WHERE CLASS = 'galaxy'`)
	require.NoError(t, row.Scan(&n, &mag))
	assert.Equal(t, 2, n)
	assert.InDelta(t, 23.1, mag, 1e-9)

	_, _, err = runCLI(t, map[string]string{"cat.txt": catalog}, "load", "cat.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db")
}
