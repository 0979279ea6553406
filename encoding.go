package readfile

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// lookupEncoding resolves a WHATWG encoding label such as "latin1",
// "windows-1252" or "utf-16le". The empty name means UTF-8.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return encoding.Nop, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, configErr("encoding", fmt.Errorf("%w %q", ErrUnknownEncoding, name))
	}
	return enc, nil
}

// decode wraps r so that it yields UTF-8. A leading byte order mark selects
// UTF-8 or UTF-16 regardless of enc and is dropped.
func decode(r io.Reader, enc encoding.Encoding) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder()))
}
