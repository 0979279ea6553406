package readfile

import "strconv"

// Column is a homogeneous typed sequence holding one extracted column.
type Column struct {
	// Name is the header name, when one was resolved.
	Name string

	kind   Kind
	strs   []string
	ints   []int64
	floats []float64
	bools  []bool
}

// StringColumn wraps v as a text column.
func StringColumn(v []string) Column { return Column{kind: String, strs: v} }

// IntColumn wraps v as an integer column.
func IntColumn(v []int64) Column { return Column{kind: Int, ints: v} }

// FloatColumn wraps v as a floating-point column.
func FloatColumn(v []float64) Column { return Column{kind: Float, floats: v} }

// BoolColumn wraps v as a boolean column.
func BoolColumn(v []bool) Column { return Column{kind: Bool, bools: v} }

// Kind returns the element type of the column.
func (c Column) Kind() Kind { return c.kind }

// Len returns the number of rows in the column.
func (c Column) Len() int {
	switch c.kind {
	case Int:
		return len(c.ints)
	case Float:
		return len(c.floats)
	case Bool:
		return len(c.bools)
	default:
		return len(c.strs)
	}
}

// At returns element i as string, int64, float64 or bool.
func (c Column) At(i int) any {
	switch c.kind {
	case Int:
		return c.ints[i]
	case Float:
		return c.floats[i]
	case Bool:
		return c.bools[i]
	default:
		return c.strs[i]
	}
}

// Text returns element i rendered as text.
func (c Column) Text(i int) string {
	switch c.kind {
	case Int:
		return strconv.FormatInt(c.ints[i], 10)
	case Float:
		return strconv.FormatFloat(c.floats[i], 'g', -1, 64)
	case Bool:
		return strconv.FormatBool(c.bools[i])
	default:
		return c.strs[i]
	}
}

// Values returns every element boxed as any.
func (c Column) Values() []any {
	out := make([]any, c.Len())
	for i := range out {
		out[i] = c.At(i)
	}
	return out
}

// Strings returns the backing slice of a text column, or nil.
func (c Column) Strings() []string { return c.strs }

// Ints returns the backing slice of an integer column, or nil.
func (c Column) Ints() []int64 { return c.ints }

// Floats returns the backing slice of a floating-point column, or nil.
func (c Column) Floats() []float64 { return c.floats }

// Bools returns the backing slice of a boolean column, or nil.
func (c Column) Bools() []bool { return c.bools }

// convertColumn builds a column of kind k from raw. On failure it returns the
// index of the first field that did not convert.
func convertColumn(raw []string, k Kind) (Column, int) {
	switch k {
	case Int:
		out := make([]int64, len(raw))
		for i, s := range raw {
			v, ok := parseValue(Int, s)
			if !ok {
				return Column{}, i
			}
			out[i] = v.(int64)
		}
		return IntColumn(out), -1
	case Float:
		out := make([]float64, len(raw))
		for i, s := range raw {
			v, ok := parseValue(Float, s)
			if !ok {
				return Column{}, i
			}
			out[i] = v.(float64)
		}
		return FloatColumn(out), -1
	case Bool:
		out := make([]bool, len(raw))
		for i, s := range raw {
			v, ok := parseValue(Bool, s)
			if !ok {
				return Column{}, i
			}
			out[i] = v.(bool)
		}
		return BoolColumn(out), -1
	default:
		return StringColumn(raw), -1
	}
}

// detectColumn tries int, then float, then text.
func detectColumn(raw []string) Column {
	for _, k := range []Kind{Int, Float} {
		if col, bad := convertColumn(raw, k); bad < 0 {
			return col
		}
	}
	return StringColumn(raw)
}
