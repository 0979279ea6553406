package readfile

import (
	"bytes"
	"io"
)

const defaultBufferSize = 1 << 10 // 1024 bytes

// lineReader splits a byte stream into lines. LF, CR and CRLF all terminate a
// line; the terminator is not part of the returned text.
type lineReader struct {
	src io.Reader

	buf    []byte
	bufPos int
	bufLen int
	bufErr error

	lineBuf  []byte
	line     int
	finished bool
}

// newLineReader creates a lineReader that consumes r, panicking if r is nil.
func newLineReader(r io.Reader) *lineReader {
	if r == nil {
		panic("readfile: reader source cannot be nil")
	}
	return &lineReader{
		src:     r,
		buf:     make([]byte, defaultBufferSize),
		lineBuf: make([]byte, 0, 256),
	}
}

// Read returns the next line. io.EOF signals that no more lines remain; a
// final line without a terminator is still returned.
func (r *lineReader) Read() (string, error) {
	if r.finished {
		return "", io.EOF
	}

	r.lineBuf = r.lineBuf[:0]
	sawData := false

	for {
		// Ensure the working buffer has data before scanning.
		if r.bufPos >= r.bufLen {
			if r.bufErr != nil {
				err := r.bufErr
				r.bufErr = nil
				if err == io.EOF {
					r.finished = true
					if sawData {
						r.line++
						return string(r.lineBuf), nil
					}
					return "", io.EOF
				}
				return "", err
			}

			n, err := r.src.Read(r.buf)
			if n == 0 {
				if err != nil {
					r.bufErr = err
				}
				continue
			}
			r.bufPos = 0
			r.bufLen = n
			r.bufErr = err
		}

		data := r.buf[r.bufPos:r.bufLen]
		idx := bytes.IndexAny(data, "\r\n")
		if idx < 0 {
			r.lineBuf = append(r.lineBuf, data...)
			r.bufPos = r.bufLen
			sawData = true
			continue
		}

		r.lineBuf = append(r.lineBuf, data[:idx]...)
		term := data[idx]
		r.bufPos += idx + 1
		if term == '\r' {
			// Support CRLF by peeking ahead for '\n' and consuming it together.
			next, err := r.peekByte()
			if err == nil && next == '\n' {
				r.bufPos++
			} else if err != nil && err != io.EOF {
				return "", err
			}
		}
		r.line++
		return string(r.lineBuf), nil
	}
}

// ReadAll collects the remaining lines until io.EOF.
func (r *lineReader) ReadAll() ([]string, error) {
	var lines []string
	for {
		line, err := r.Read()
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
}

// Line returns the 1-based number of the line last returned by Read.
func (r *lineReader) Line() int { return r.line }

// peekByte returns the next buffered byte, refilling from src as needed.
func (r *lineReader) peekByte() (byte, error) {
	for {
		if r.bufPos < r.bufLen {
			return r.buf[r.bufPos], nil
		}
		if r.bufErr != nil {
			return 0, r.bufErr
		}

		n, err := r.src.Read(r.buf)
		if n == 0 && err != nil {
			r.bufErr = err
			return 0, err
		}
		if n == 0 {
			continue
		}
		r.bufPos = 0
		r.bufLen = n
		r.bufErr = err
	}
}
