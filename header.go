package readfile

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Layout names the convention used to locate column names in a file.
type Layout string

const (
	// LayoutLine is a single delimited header line.
	LayoutLine Layout = "1"
	// LayoutVertical lists one "# index name description" record per column,
	// as SExtractor catalogues do.
	LayoutVertical Layout = "2"
	// LayoutByteByByte is the ApJ byte-by-byte description. Not implemented.
	LayoutByteByByte Layout = "3"
)

// defaultNameField is the token holding the name in a vertical header record.
const defaultNameField = 2

// HeaderOptions configures ResolveHeader.
type HeaderOptions struct {
	// Columns restricts the returned names. The zero value returns all.
	Columns Columns
	// Comment is the marker stripped from a horizontal header line and the
	// marker of every record in a vertical header.
	Comment string
	// Layout selects the header convention. Empty means LayoutLine.
	Layout Layout
	// Line is the 1-based header line for LayoutLine, where 0 means the first
	// line starting with Comment. For LayoutVertical it is the token holding
	// the name, where 0 means 2.
	Line int
	// Separator splits a horizontal header line. Empty means whitespace runs.
	Separator string
	// Lowercase converts every name to lower case.
	Lowercase bool
	// Strip trims spaces around every name.
	Strip bool
	// Encoding names the text encoding of the file. Empty means UTF-8.
	Encoding string
	// Logger receives diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultHeaderOptions returns a horizontal layout with a '#' marker and
// stripped names.
func DefaultHeaderOptions() HeaderOptions {
	return HeaderOptions{
		Comment: "#",
		Layout:  LayoutLine,
		Strip:   true,
	}
}

// Header holds resolved column names. Indices is parallel to Names when a
// selection was given and nil otherwise.
type Header struct {
	Names   []string
	Indices []int
}

func (o HeaderOptions) validate() error {
	if err := o.Columns.validate(); err != nil {
		return err
	}
	switch o.Layout {
	case "", LayoutLine:
	case LayoutVertical:
		if strings.TrimSpace(o.Comment) == "" {
			return configErr("comment", fmt.Errorf("%w for vertical header layout", ErrMissingMarker))
		}
	default:
		return configErr("layout", fmt.Errorf("%w: %q", ErrNotImplemented, string(o.Layout)))
	}
	if o.Line < 0 {
		return configErr("header_line", fmt.Errorf("must not be negative, got %d", o.Line))
	}
	_, err := lookupEncoding(o.Encoding)
	return err
}

// ResolveHeader reads the column names of the file at path.
func ResolveHeader(path string, opts HeaderOptions) (Header, error) {
	if err := opts.validate(); err != nil {
		return Header{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Header{}, err
	}
	defer f.Close()
	return resolveHeader(f, path, opts)
}

// ResolveHeaderFrom is ResolveHeader over an already open reader. name is
// used in error messages.
func ResolveHeaderFrom(r io.Reader, name string, opts HeaderOptions) (Header, error) {
	if err := opts.validate(); err != nil {
		return Header{}, err
	}
	return resolveHeader(r, name, opts)
}

func resolveHeader(r io.Reader, name string, opts HeaderOptions) (Header, error) {
	var (
		h   Header
		err error
	)
	if opts.Layout == LayoutVertical {
		h, err = verticalHeader(r, name, opts)
	} else {
		h, err = lineHeader(r, name, opts)
	}
	if err != nil {
		return Header{}, err
	}

	for i, n := range h.Names {
		if opts.Lowercase {
			n = strings.ToLower(n)
		}
		if opts.Strip {
			n = strings.TrimSpace(n)
		}
		h.Names[i] = n
	}
	return h, nil
}

// lineHeader implements LayoutLine.
func lineHeader(r io.Reader, name string, opts HeaderOptions) (Header, error) {
	enc, _ := lookupEncoding(opts.Encoding)
	lr := newLineReader(decode(r, enc))
	marker := strings.TrimSpace(opts.Comment)

	var line string
	found := false
	for {
		s, err := lr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Header{}, err
		}
		if opts.Line > 0 {
			if lr.Line() == opts.Line {
				line, found = s, true
				break
			}
			continue
		}
		t := strings.TrimSpace(s)
		if t == "" {
			continue
		}
		if marker == "" || strings.HasPrefix(t, marker) {
			line, found = s, true
			break
		}
	}
	if !found {
		return Header{}, fmt.Errorf("%w in %s", ErrHeaderNotFound, name)
	}

	line = strings.TrimSpace(line)
	if marker != "" {
		line = trimMarker(line, marker)
	}
	line = strings.TrimSpace(line)

	var tokens []string
	if opts.Separator == "" {
		tokens = strings.Fields(line)
	} else {
		tokens = strings.Split(line, opts.Separator)
	}
	opts.logger().Debug("header line", "file", name, "tokens", len(tokens))
	return selectTokens(tokens, opts), nil
}

// trimMarker removes repeated leading and trailing occurrences of marker.
func trimMarker(s, marker string) string {
	for strings.HasPrefix(s, marker) {
		s = s[len(marker):]
	}
	for strings.HasSuffix(s, marker) {
		s = s[:len(s)-len(marker)]
	}
	return s
}

// selectTokens filters a horizontal header by the requested columns.
func selectTokens(tokens []string, opts HeaderOptions) Header {
	c := opts.Columns
	switch {
	case c.All():
		return Header{Names: tokens}
	case c.ByName():
		h := Header{Names: []string{}, Indices: []int{}}
		for i, tok := range tokens {
			if opts.wants(tok) {
				h.Names = append(h.Names, tok)
				h.Indices = append(h.Indices, i)
			}
		}
		return h
	default:
		h := Header{Names: []string{}, Indices: c.Indices()}
		for _, ix := range c.Indices() {
			if ix < len(tokens) {
				h.Names = append(h.Names, tokens[ix])
			}
		}
		return h
	}
}

// wants reports whether tok, raw or post-processed, is a requested name.
func (o HeaderOptions) wants(tok string) bool {
	norm := tok
	if o.Lowercase {
		norm = strings.ToLower(norm)
	}
	if o.Strip {
		norm = strings.TrimSpace(norm)
	}
	for _, n := range o.Columns.ColumnNames() {
		if n == tok || n == norm {
			return true
		}
	}
	return false
}

// verticalHeader implements LayoutVertical. Every record line is read through
// the table extractor, taking the 1-based file index and the name.
func verticalHeader(r io.Reader, name string, opts HeaderOptions) (Header, error) {
	field := opts.Line
	if field <= 0 {
		field = defaultNameField
	}
	topts := TableOptions{
		Columns:    Index(field-1, field),
		DType:      PerColumn(String, String),
		Include:    []string{strings.TrimSpace(opts.Comment)},
		ForceArray: true,
		Strip:      true,
		Encoding:   opts.Encoding,
		Logger:     opts.Logger,
	}
	tbl, err := ExtractTableFrom(r, name, topts)
	if err != nil {
		return Header{}, err
	}
	if tbl.Rows == 0 {
		return Header{}, fmt.Errorf("%w in %s", ErrHeaderNotFound, name)
	}
	nums, names := tbl.Columns[0].Strings(), tbl.Columns[1].Strings()

	index := make([]int, len(nums))
	for i, s := range nums {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			opts.logger().Debug("vertical header index is not a number",
				"file", name, "record", i+1, "value", s)
			n = i + 1
		}
		index[i] = n - 1
	}

	c := opts.Columns
	switch {
	case c.All():
		return Header{Names: names}, nil
	case c.ByName():
		h := Header{Names: []string{}, Indices: []int{}}
		for i, n := range names {
			if opts.wants(n) {
				h.Names = append(h.Names, n)
				h.Indices = append(h.Indices, index[i])
			}
		}
		return h, nil
	default:
		h := Header{Names: []string{}, Indices: c.Indices()}
		for _, want := range c.Indices() {
			for i, ix := range index {
				if ix == want {
					h.Names = append(h.Names, names[i])
					break
				}
			}
		}
		return h, nil
	}
}

func (o HeaderOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
