package config

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/oleg578/readfile"
)

// Validate checks values that cannot be checked by the library itself.
func (c *Config) Validate() error {
	if !slices.Contains(OutputFormats, c.OutputFormat()) {
		return fmt.Errorf("unknown output format %q (want one of %s)", c.Output, strings.Join(OutputFormats, ", "))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.LogFormat)
	}
	if c.DataStart < 0 {
		return fmt.Errorf("data_start must not be negative, got %d", c.DataStart)
	}
	if c.HeaderLine < 0 {
		return fmt.Errorf("header_line must not be negative, got %d", c.HeaderLine)
	}
	return nil
}

// OutputFormat returns the normalized output format name.
func (c *Config) OutputFormat() string {
	f := strings.ToLower(strings.TrimSpace(c.Output))
	if f == "md" {
		return "markdown"
	}
	return f
}

// HeaderOptions converts the header settings for readfile.ResolveHeader.
func (c *Config) HeaderOptions(logger *slog.Logger) (readfile.HeaderOptions, error) {
	cols, err := readfile.ParseColumns(c.Columns)
	if err != nil {
		return readfile.HeaderOptions{}, err
	}
	opts := readfile.DefaultHeaderOptions()
	opts.Columns = cols
	opts.Comment = ""
	if len(c.Comment) > 0 {
		opts.Comment = c.Comment[0]
	}
	opts.Layout = readfile.Layout(c.Layout)
	opts.Line = c.HeaderLine
	opts.Separator = c.HeaderSeparator
	opts.Lowercase = c.Lowercase
	opts.Strip = !c.NoStrip
	opts.Encoding = c.Encoding
	opts.Logger = logger
	return opts, nil
}

// TableOptions converts the extraction settings for readfile.ExtractTable.
func (c *Config) TableOptions(logger *slog.Logger) (readfile.TableOptions, error) {
	header, err := c.HeaderOptions(logger)
	if err != nil {
		return readfile.TableOptions{}, err
	}
	dtype, err := readfile.ParseDType(c.DType)
	if err != nil {
		return readfile.TableOptions{}, err
	}

	opts := readfile.DefaultTableOptions()
	opts.Columns = header.Columns
	opts.DType = dtype
	opts.Comment = c.Comment
	opts.Include = c.Include
	opts.DataStart = c.DataStart
	opts.Separator = c.Separator
	opts.WholeToken = c.WholeToken
	opts.ForceArray = c.ForceArray
	opts.Strip = !c.NoStrip
	opts.Strict = c.Strict
	opts.Encoding = c.Encoding
	opts.Header = header
	opts.Logger = logger
	return opts, nil
}
