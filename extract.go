package readfile

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/text/encoding"
)

// TableOptions configures ExtractTable. Start from DefaultTableOptions; the
// zero value has no comment marker and does not strip lines.
type TableOptions struct {
	// Columns selects the fields to extract. The zero value selects all.
	Columns Columns
	// DType gives the target kind of each selected column. When Columns
	// selects by name, kinds apply to the matched columns in file order, not
	// in the order the names were given.
	DType DType
	// Comment lists markers of lines to skip.
	Comment []string
	// Include lists markers of the only lines to keep. It overrides Comment
	// and DataStart.
	Include []string
	// DataStart is the number of leading data lines to discard. Excluded and
	// blank lines are not counted.
	DataStart int
	// Separator splits fields. "", " " and "\t" split on whitespace runs; any
	// other string is a literal delimiter.
	Separator string
	// WholeToken requires a marker to equal the first field instead of
	// prefixing the line.
	WholeToken bool
	// ForceArray disables collapsing of one-row results.
	ForceArray bool
	// Strip trims each line and, with a literal separator, each field.
	Strip bool
	// Strict turns a failed explicit conversion into a ConversionError
	// instead of a text fallback.
	Strict bool
	// Encoding names the text encoding of the file. Empty means UTF-8.
	Encoding string
	// Header locates column names when Columns selects by name.
	Header HeaderOptions
	// Logger receives diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultTableOptions returns options with '#' comments, stripping enabled
// and float columns.
func DefaultTableOptions() TableOptions {
	return TableOptions{
		DType:   Uniform(Float),
		Comment: []string{"#"},
		Strip:   true,
		Header:  DefaultHeaderOptions(),
	}
}

func (o TableOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// headerOptions returns the header configuration used to resolve names for o.
func (o TableOptions) headerOptions() HeaderOptions {
	h := o.Header
	h.Columns = o.Columns
	if h.Encoding == "" {
		h.Encoding = o.Encoding
	}
	if h.Logger == nil {
		h.Logger = o.Logger
	}
	return h
}

// extraction is a validated TableOptions ready to run over one input.
type extraction struct {
	cls       classifier
	indices   []int
	single    bool
	dtype     DType
	dataStart int
	force     bool
	strict    bool
	enc       encoding.Encoding
	log       *slog.Logger
}

// prepare checks every option that can be checked without reading the file.
func (o TableOptions) prepare() (*extraction, error) {
	if err := o.Columns.validate(); err != nil {
		return nil, err
	}
	if o.DataStart < 0 {
		return nil, configErr("data_start", fmt.Errorf("must not be negative, got %d", o.DataStart))
	}
	enc, err := lookupEncoding(o.Encoding)
	if err != nil {
		return nil, err
	}
	ex := &extraction{
		cls:       newClassifier(o.Comment, o.Include, o.Separator, o.WholeToken, o.Strip),
		single:    o.Columns.Single(),
		dtype:     o.DType,
		dataStart: o.DataStart,
		force:     o.ForceArray,
		strict:    o.Strict,
		enc:       enc,
		log:       o.logger(),
	}
	if len(ex.cls.include) > 0 {
		ex.dataStart = 0
	}
	if !o.Columns.All() {
		if _, _, err := o.DType.resolve(o.Columns.Len()); err != nil {
			return nil, err
		}
	}
	if !o.Columns.ByName() && !o.Columns.All() {
		ex.indices = o.Columns.Indices()
	}
	return ex, nil
}

// ExtractTable reads path and returns the selected columns converted to their
// target kinds. The file is opened and closed within the call.
func ExtractTable(path string, opts TableOptions) (*Table, error) {
	ex, err := opts.prepare()
	if err != nil {
		return nil, err
	}
	var names []string
	if opts.Columns.ByName() {
		h, err := ResolveHeader(path, opts.headerOptions())
		if err != nil {
			return nil, err
		}
		if err := ex.useHeader(opts, h); err != nil {
			return nil, err
		}
		names = h.Names
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tbl, err := ex.run(f, path)
	if err != nil {
		return nil, err
	}
	if names != nil {
		tbl.setNames(names)
	}
	return tbl, nil
}

// ExtractTableFrom is ExtractTable over an already open reader. name is used
// in error messages.
func ExtractTableFrom(r io.Reader, name string, opts TableOptions) (*Table, error) {
	ex, err := opts.prepare()
	if err != nil {
		return nil, err
	}
	if !opts.Columns.ByName() {
		return ex.run(r, name)
	}

	// Name selection reads the input twice.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	h, err := ResolveHeaderFrom(bytes.NewReader(data), name, opts.headerOptions())
	if err != nil {
		return nil, err
	}
	if err := ex.useHeader(opts, h); err != nil {
		return nil, err
	}
	tbl, err := ex.run(bytes.NewReader(data), name)
	if err != nil {
		return nil, err
	}
	tbl.setNames(h.Names)
	return tbl, nil
}

// useHeader switches a name selection to the indices resolved from h.
func (ex *extraction) useHeader(opts TableOptions, h Header) error {
	if len(h.Indices) == 0 {
		return configErr("columns", fmt.Errorf("no column named %v in header", opts.Columns.ColumnNames()))
	}
	if missing := opts.Columns.Len() - len(h.Indices); missing > 0 {
		ex.log.Warn("some requested columns are not in the header",
			"requested", opts.Columns.ColumnNames(), "found", h.Names)
	}
	if _, _, err := ex.dtype.resolve(len(h.Indices)); err != nil {
		return err
	}
	ex.indices = h.Indices
	ex.single = len(h.Indices) == 1
	return nil
}

// run performs the single pass over r: classify, select, transpose, convert.
func (ex *extraction) run(r io.Reader, name string) (*Table, error) {
	lr := newLineReader(decode(r, ex.enc))

	var (
		raw   [][]string
		width = -1
		rows  int
		seen  int
	)
	if ex.indices != nil {
		width = len(ex.indices)
		raw = make([][]string, width)
	}

	for {
		line, err := lr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		class, fields := ex.cls.classify(line)
		if class != classData {
			continue
		}
		seen++
		if seen <= ex.dataStart {
			continue
		}

		if ex.indices == nil {
			if width < 0 {
				width = len(fields)
				raw = make([][]string, width)
			}
			if len(fields) < width {
				return nil, &ParseError{File: name, Line: lr.Line(), Row: rows + 1, Column: len(fields), Err: ErrMissingField}
			}
			for j := 0; j < width; j++ {
				raw[j] = append(raw[j], fields[j])
			}
		} else {
			for j, ix := range ex.indices {
				if ix >= len(fields) {
					return nil, &ParseError{File: name, Line: lr.Line(), Row: rows + 1, Column: ix, Err: ErrMissingField}
				}
				raw[j] = append(raw[j], fields[ix])
			}
		}
		rows++
	}

	tbl := &Table{Rows: rows, single: ex.single, forceArray: ex.force}
	if rows == 0 {
		ex.log.Warn("no data selected from file", "file", name)
		return tbl, nil
	}

	kinds, auto, err := ex.dtype.resolve(len(raw))
	if err != nil {
		return nil, err
	}
	tbl.Columns = make([]Column, len(raw))
	for j, values := range raw {
		if auto {
			tbl.Columns[j] = detectColumn(values)
			continue
		}
		col, bad := convertColumn(values, kinds[j])
		if bad >= 0 {
			if ex.strict {
				return nil, &ConversionError{File: name, Column: ex.columnIndex(j), Row: bad + 1, Kind: kinds[j], Value: values[bad]}
			}
			ex.log.Debug("column kept as text",
				"file", name, "column", ex.columnIndex(j), "kind", kinds[j].String(), "value", values[bad])
			col = StringColumn(values)
		}
		tbl.Columns[j] = col
	}
	return tbl, nil
}

// columnIndex maps position j of the output to the file column index.
func (ex *extraction) columnIndex(j int) int {
	if ex.indices != nil {
		return ex.indices[j]
	}
	return j
}
