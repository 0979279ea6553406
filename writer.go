package readfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	errNilWriter      = errors.New("readfile: writer is nil")
	errWriterNoTarget = errors.New("readfile: writer destination cannot be nil")
)

// DefaultDelimiter separates fields written by Writer and Save.
const DefaultDelimiter = "  "

// Writer emits delimited text rows that ExtractTable can read back.
type Writer struct {
	dst *bufio.Writer

	// Delimiter separates fields when Template is nil. Default is two spaces.
	Delimiter string
	// Template renders each row when set.
	Template *Template
	// UseCRLF writes rows terminated with \r\n when set.
	UseCRLF bool

	err error
}

// NewWriter creates a new Writer buffering output to w.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		panic(errWriterNoTarget.Error())
	}
	return &Writer{
		dst:       bufio.NewWriterSize(w, defaultBufferSize),
		Delimiter: DefaultDelimiter,
	}
}

// Reset updates the underlying writer while preserving the configuration.
func (w *Writer) Reset(dst io.Writer) {
	if w == nil {
		panic(errNilWriter.Error())
	}
	if dst == nil {
		panic(errWriterNoTarget.Error())
	}
	if w.dst == nil {
		w.dst = bufio.NewWriterSize(dst, defaultBufferSize)
	} else {
		w.dst.Reset(dst)
	}
	w.err = nil
}

// WriteHeader writes line verbatim followed by a newline. Multi-line headers
// are written line by line. An empty line writes nothing.
func (w *Writer) WriteHeader(line string) error {
	if err := w.check(); err != nil {
		return err
	}
	if line == "" {
		return nil
	}
	for _, l := range strings.Split(strings.TrimRight(line, "\r\n"), "\n") {
		if err := w.writeLine(strings.TrimRight(l, "\r")); err != nil {
			return err
		}
	}
	return nil
}

// WriteRow renders values through Template, or joins their text with
// Delimiter when no template is set.
func (w *Writer) WriteRow(values []any) error {
	if err := w.check(); err != nil {
		return err
	}
	var line string
	if w.Template != nil {
		s, err := w.Template.Format(values...)
		if err != nil {
			w.err = err
			return err
		}
		line = s
	} else {
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = textOf(v)
		}
		line = strings.Join(parts, w.Delimiter)
	}
	return w.writeLine(line)
}

// WriteColumns writes the columns row by row. All columns must have the same
// length.
func (w *Writer) WriteColumns(cols []Column) error {
	if err := w.check(); err != nil {
		return err
	}
	rows, err := columnRows(cols)
	if err != nil {
		return err
	}
	row := make([]any, len(cols))
	for i := 0; i < rows; i++ {
		for j, c := range cols {
			row[j] = c.At(i)
		}
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes pending buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if err := w.check(); err != nil {
		return err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	if w == nil {
		return errNilWriter
	}
	return w.err
}

func (w *Writer) check() error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	return w.err
}

func (w *Writer) writeLine(line string) error {
	if _, err := w.dst.WriteString(line); err != nil {
		w.err = err
		return err
	}
	var err error
	if w.UseCRLF {
		_, err = w.dst.WriteString("\r\n")
	} else {
		err = w.dst.WriteByte('\n')
	}
	if err != nil {
		w.err = err
	}
	return err
}

// columnRows returns the common length of cols.
func columnRows(cols []Column) (int, error) {
	if len(cols) == 0 {
		return 0, nil
	}
	rows := cols[0].Len()
	for _, c := range cols[1:] {
		if c.Len() != rows {
			lens := make([]int, len(cols))
			for i, c := range cols {
				lens[i] = c.Len()
			}
			return 0, fmt.Errorf("%w: column lengths %v", ErrColumnLength, lens)
		}
	}
	return rows, nil
}
