package readfile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
)

// SaveOptions configures Save. Start from DefaultSaveOptions; the zero value
// refuses to replace an existing file.
type SaveOptions struct {
	// Delimiter joins repeated format fields. Empty means two spaces.
	Delimiter string
	// Format is a percent or brace template, see ParseFormat.
	Format string
	// Header is written verbatim before the data when not empty.
	Header string
	// Overwrite replaces an existing file.
	Overwrite bool
	// Append adds to an existing file. It takes precedence over Overwrite.
	Append bool
	// Verbose logs the saved file name at info level.
	Verbose bool
	// UseCRLF terminates lines with \r\n.
	UseCRLF bool
	// Logger receives the Verbose message. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultSaveOptions returns two-space delimited "%s" output that overwrites
// existing files and reports what it saved.
func DefaultSaveOptions() SaveOptions {
	return SaveOptions{
		Delimiter: DefaultDelimiter,
		Format:    "%s",
		Overwrite: true,
		Verbose:   true,
	}
}

// Save writes columns to path, one row per line. Column lengths, the format
// and the rendering of every value are checked before the file is touched.
func Save(path string, columns []Column, opts SaveOptions) (err error) {
	rows, err := columnRows(columns)
	if err != nil {
		return err
	}
	if opts.Delimiter == "" {
		opts.Delimiter = DefaultDelimiter
	}
	var tmpl *Template
	if len(columns) > 0 {
		if tmpl, err = ParseFormat(opts.Format, opts.Delimiter, len(columns)); err != nil {
			return err
		}
	}

	// Render everything first: a value the format rejects must leave path untouched.
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Template = tmpl
	w.Delimiter = opts.Delimiter
	w.UseCRLF = opts.UseCRLF
	if err := w.WriteHeader(opts.Header); err != nil {
		return err
	}
	if err := w.WriteColumns(columns); err != nil {
		if errors.Is(err, ErrBadFormat) {
			return configErr("format", err)
		}
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	switch {
	case opts.Append:
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	case !opts.Overwrite:
		if _, statErr := os.Stat(path); statErr == nil {
			return fmt.Errorf("%w: %s", ErrFileExists, path)
		} else if !errors.Is(statErr, fs.ErrNotExist) {
			return statErr
		}
	}

	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := buf.WriteTo(f); err != nil {
		return err
	}

	if opts.Verbose {
		logger := opts.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Info("saved file", "path", path, "rows", rows, "columns", len(columns))
	}
	return nil
}
