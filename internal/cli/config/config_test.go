package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oleg578/readfile"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.StringSlice("columns", nil, "")
	fs.String("dtype", "", "")
	fs.StringSlice("comment", nil, "")
	fs.Int("data-start", 0, "")
	fs.Bool("no-strip", false, "")
	fs.String("output", "", "")
	fs.String("layout", "", "")
	return fs
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, used, err := Load("", nil)
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.Equal(t, DefaultDType, cfg.DType)
	assert.Equal(t, []string{"#"}, cfg.Comment)
	assert.Equal(t, DefaultLayout, cfg.Layout)
	assert.Equal(t, "table", cfg.OutputFormat())
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readfile.yaml"), []byte(`
dtype: int
data_start: 2
separator: ","
columns: [ra, dec]
output: json
`), 0o600))
	t.Setenv("READFILE_DTYPE", "str")
	t.Setenv("READFILE_COLUMNS", "mag,flux")

	fs := newFlags()
	require.NoError(t, fs.Parse([]string{"--data-start", "5"}))

	cfg, used, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, "readfile.yaml", used)
	assert.Equal(t, "str", cfg.DType, "env overrides file")
	assert.Equal(t, []string{"mag", "flux"}, cfg.Columns, "env list is split")
	assert.Equal(t, 5, cfg.DataStart, "flag overrides file")
	assert.Equal(t, ",", cfg.Separator, "file overrides default")
	assert.Equal(t, "json", cfg.Output)
}

func TestLoadUnchangedFlagsKeepFileValues(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("layout: \"2\"\nno_strip: true\n"), 0o600))

	fs := newFlags()
	require.NoError(t, fs.Parse([]string{"--columns", "NUMBER,MAG_AUTO"}))

	cfg, used, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, "2", cfg.Layout)
	assert.True(t, cfg.NoStrip)
	assert.Equal(t, []string{"NUMBER", "MAG_AUTO"}, cfg.Columns)
}

func TestLoadErrors(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := Load("missing.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")

	t.Setenv("READFILE_OUTPUT", "xml")
	_, _, err = Load("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		errSubstr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "markdown alias", mutate: func(c *Config) { c.Output = "MD" }},
		{name: "bad output", mutate: func(c *Config) { c.Output = "html" }, errSubstr: "unknown output format"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, errSubstr: "unknown log format"},
		{name: "negative data start", mutate: func(c *Config) { c.DataStart = -1 }, errSubstr: "data_start"},
		{name: "negative header line", mutate: func(c *Config) { c.HeaderLine = -3 }, errSubstr: "header_line"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Output: DefaultOutput, LogFormat: DefaultLogFormat}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestTableOptions(t *testing.T) {
	cfg := &Config{
		Columns:    []string{"1", "3"},
		DType:      "int,str",
		Comment:    []string{"!", "#"},
		Include:    []string{"DATA"},
		Separator:  ";",
		DataStart:  1,
		WholeToken: true,
		NoStrip:    true,
		Strict:     true,
		Encoding:   "latin1",
		Layout:     "2",
		HeaderLine: 3,
		Lowercase:  true,
	}

	opts, err := cfg.TableOptions(nil)
	require.NoError(t, err)
	assert.Equal(t, readfile.Index(1, 3), opts.Columns)
	assert.Equal(t, readfile.PerColumn(readfile.Int, readfile.String), opts.DType)
	assert.Equal(t, []string{"!", "#"}, opts.Comment)
	assert.Equal(t, []string{"DATA"}, opts.Include)
	assert.Equal(t, ";", opts.Separator)
	assert.Equal(t, 1, opts.DataStart)
	assert.True(t, opts.WholeToken)
	assert.False(t, opts.Strip)
	assert.True(t, opts.Strict)
	assert.Equal(t, "latin1", opts.Encoding)

	assert.Equal(t, "!", opts.Header.Comment)
	assert.Equal(t, readfile.LayoutVertical, opts.Header.Layout)
	assert.Equal(t, 3, opts.Header.Line)
	assert.True(t, opts.Header.Lowercase)
	assert.False(t, opts.Header.Strip)
}

func TestTableOptionsErrors(t *testing.T) {
	_, err := (&Config{Columns: []string{"1", "mag"}}).TableOptions(nil)
	assert.ErrorIs(t, err, readfile.ErrMixedColumns)

	_, err = (&Config{DType: "complex"}).TableOptions(nil)
	assert.ErrorIs(t, err, readfile.ErrUnknownKind)
}
