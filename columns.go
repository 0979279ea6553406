package readfile

import (
	"fmt"
	"strconv"
	"strings"
)

// Columns selects which fields to extract. The zero value selects all columns.
type Columns struct {
	indices []int
	names   []string
}

// Index selects columns by zero-based position.
func Index(i ...int) Columns {
	return Columns{indices: append([]int{}, i...)}
}

// Names selects columns by header name.
func Names(n ...string) Columns {
	return Columns{names: append([]string{}, n...)}
}

// ParseColumns builds a selection from text tokens such as command-line
// arguments. Tokens that parse as integers select by index, the rest by name;
// mixing both is an error.
func ParseColumns(tokens []string) (Columns, error) {
	var (
		indices []int
		names   []string
	)
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if i, err := strconv.Atoi(tok); err == nil {
			indices = append(indices, i)
		} else {
			names = append(names, tok)
		}
	}
	switch {
	case len(indices) > 0 && len(names) > 0:
		return Columns{}, configErr("columns", fmt.Errorf("%w: %q", ErrMixedColumns, tokens))
	case len(indices) > 0:
		return Index(indices...), nil
	case len(names) > 0:
		return Names(names...), nil
	}
	return Columns{}, nil
}

// All reports whether every column is selected.
func (c Columns) All() bool { return c.Len() == 0 }

// ByName reports whether the selection is by header name.
func (c Columns) ByName() bool { return len(c.names) > 0 }

// Single reports whether exactly one column was requested.
func (c Columns) Single() bool { return c.Len() == 1 }

// Len returns the number of requested identifiers, or 0 for all columns.
func (c Columns) Len() int {
	if len(c.names) > 0 {
		return len(c.names)
	}
	return len(c.indices)
}

// Indices returns a copy of the requested positions.
func (c Columns) Indices() []int { return append([]int(nil), c.indices...) }

// ColumnNames returns a copy of the requested names.
func (c Columns) ColumnNames() []string { return append([]string(nil), c.names...) }

// String renders the selection as a comma-separated list.
func (c Columns) String() string {
	if len(c.names) > 0 {
		return strings.Join(c.names, ",")
	}
	parts := make([]string, len(c.indices))
	for i, ix := range c.indices {
		parts[i] = strconv.Itoa(ix)
	}
	return strings.Join(parts, ",")
}

func (c Columns) validate() error {
	for _, ix := range c.indices {
		if ix < 0 {
			return configErr("columns", fmt.Errorf("negative column index %d", ix))
		}
	}
	return nil
}
