// Package arrowtable converts extracted tables to Apache Arrow records and
// writes them as Arrow IPC or Parquet files.
package arrowtable

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/oleg578/readfile"
)

// Format is an export file format.
type Format int

const (
	FormatArrow Format = iota
	FormatParquet
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("arrowtable: unknown export format")

// ParseFormat maps "arrow", "ipc", "feather" or "parquet" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "arrow", "ipc", "feather":
		return FormatArrow, nil
	case "parquet", "pq":
		return FormatParquet, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownFormat, s)
}

// String returns the canonical name of f.
func (f Format) String() string {
	if f == FormatParquet {
		return "parquet"
	}
	return "arrow"
}

// FieldName returns the name of column i: the header name when known,
// otherwise "col<i>".
func FieldName(tbl *readfile.Table, i int) string {
	if i < len(tbl.Names) && tbl.Names[i] != "" {
		return tbl.Names[i]
	}
	return fmt.Sprintf("col%d", i)
}

func dataType(k readfile.Kind) arrow.DataType {
	switch k {
	case readfile.Int:
		return arrow.PrimitiveTypes.Int64
	case readfile.Float:
		return arrow.PrimitiveTypes.Float64
	case readfile.Bool:
		return arrow.FixedWidthTypes.Boolean
	default:
		return arrow.BinaryTypes.String
	}
}

// Schema returns the Arrow schema of tbl. Every field is non-nullable.
func Schema(tbl *readfile.Table) *arrow.Schema {
	fields := make([]arrow.Field, tbl.Width())
	for i, c := range tbl.Columns {
		fields[i] = arrow.Field{Name: FieldName(tbl, i), Type: dataType(c.Kind())}
	}
	return arrow.NewSchema(fields, nil)
}

// ToRecord copies tbl into a single Arrow record. The caller must Release it.
func ToRecord(mem memory.Allocator, tbl *readfile.Table) arrow.Record {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	schema := Schema(tbl)
	cols := make([]arrow.Array, tbl.Width())
	for i, c := range tbl.Columns {
		cols[i] = buildArray(mem, c)
	}
	defer func() {
		for _, a := range cols {
			a.Release()
		}
	}()
	return array.NewRecord(schema, cols, int64(tbl.Rows))
}

func buildArray(mem memory.Allocator, c readfile.Column) arrow.Array {
	switch c.Kind() {
	case readfile.Int:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		b.AppendValues(c.Ints(), nil)
		return b.NewArray()
	case readfile.Float:
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		b.AppendValues(c.Floats(), nil)
		return b.NewArray()
	case readfile.Bool:
		b := array.NewBooleanBuilder(mem)
		defer b.Release()
		b.AppendValues(c.Bools(), nil)
		return b.NewArray()
	default:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		b.AppendValues(c.Strings(), nil)
		return b.NewArray()
	}
}

// ToTable wraps tbl as an Arrow table. The caller must Release it.
func ToTable(mem memory.Allocator, tbl *readfile.Table) arrow.Table {
	rec := ToRecord(mem, tbl)
	defer rec.Release()
	return array.NewTableFromRecords(rec.Schema(), []arrow.Record{rec})
}

// WriteIPC writes tbl to w in the Arrow IPC file format.
func WriteIPC(w io.Writer, tbl *readfile.Table) error {
	mem := memory.NewGoAllocator()
	rec := ToRecord(mem, tbl)
	defer rec.Release()

	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(rec.Schema()), ipc.WithAllocator(mem))
	if err != nil {
		return fmt.Errorf("failed to create arrow writer: %w", err)
	}
	if err := fw.Write(rec); err != nil {
		fw.Close()
		return fmt.Errorf("failed to write arrow record: %w", err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("failed to close arrow writer: %w", err)
	}
	return nil
}

// WriteParquet writes tbl to w as a Snappy-compressed Parquet file with the
// Arrow schema embedded.
func WriteParquet(w io.Writer, tbl *readfile.Table) error {
	table := ToTable(memory.NewGoAllocator(), tbl)
	defer table.Release()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(table.Schema(), w, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	chunk := table.NumRows()
	if chunk == 0 {
		chunk = 1
	}
	if err := writer.WriteTable(table, chunk); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write table to parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// Export writes tbl to path in the given format.
func Export(path string, tbl *readfile.Table, format Format) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", format, err)
	}
	defer func() {
		// The Parquet writer closes its sink itself.
		if cerr := f.Close(); err == nil && cerr != nil && !errors.Is(cerr, os.ErrClosed) {
			err = cerr
		}
	}()

	if format == FormatParquet {
		return WriteParquet(f, tbl)
	}
	return WriteIPC(f, tbl)
}
