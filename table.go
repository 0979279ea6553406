package readfile

// Shape describes how a Table collapses when viewed through Value.
type Shape int

const (
	// ShapeTable is a list of columns.
	ShapeTable Shape = iota
	// ShapeColumn is a single requested column.
	ShapeColumn
	// ShapeRow is a single row over several columns, one scalar per column.
	ShapeRow
	// ShapeScalar is a single row of a single column.
	ShapeScalar
)

// String returns the name of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeColumn:
		return "column"
	case ShapeRow:
		return "row"
	case ShapeScalar:
		return "scalar"
	default:
		return "table"
	}
}

// Table is the result of one extraction. Columns all have Rows elements.
type Table struct {
	Columns []Column
	// Names holds one header name per column when a header was resolved.
	Names []string
	Rows  int

	single     bool
	forceArray bool
}

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.Columns) }

// Shape reports the collapsed form of t. Without ForceArray a one-row result
// collapses to a scalar or a flat row; a single requested column is returned
// on its own.
func (t *Table) Shape() Shape {
	if !t.forceArray && t.Rows == 1 && len(t.Columns) > 0 {
		if len(t.Columns) == 1 {
			return ShapeScalar
		}
		return ShapeRow
	}
	if t.single && len(t.Columns) == 1 {
		return ShapeColumn
	}
	return ShapeTable
}

// Value returns t in its collapsed form: a scalar (string, int64, float64 or
// bool), a []any row, a Column, or a []Column.
func (t *Table) Value() any {
	switch t.Shape() {
	case ShapeScalar:
		return t.Columns[0].At(0)
	case ShapeRow:
		return t.Row(0)
	case ShapeColumn:
		return t.Columns[0]
	default:
		return t.Columns
	}
}

// Row returns row i across all columns.
func (t *Table) Row(i int) []any {
	row := make([]any, len(t.Columns))
	for j, c := range t.Columns {
		row[j] = c.At(i)
	}
	return row
}

// Column returns the column with the given header name.
func (t *Table) Column(name string) (Column, bool) {
	for i, n := range t.Names {
		if n == name && i < len(t.Columns) {
			return t.Columns[i], true
		}
	}
	return Column{}, false
}

// Map returns the columns keyed by header name. Later duplicates win.
func (t *Table) Map() map[string]Column {
	m := make(map[string]Column, len(t.Names))
	for i, n := range t.Names {
		if i < len(t.Columns) {
			m[n] = t.Columns[i]
		}
	}
	return m
}

// setNames attaches header names to t and its columns.
func (t *Table) setNames(names []string) {
	t.Names = append([]string(nil), names...)
	for i := range t.Columns {
		if i < len(names) {
			t.Columns[i].Name = names[i]
		}
	}
}
