package readfile

import "fmt"

// Dict extracts the selected columns of path and names each of them from the
// file header. Use Table.Map for keyed access.
func Dict(path string, opts TableOptions) (*Table, error) {
	if _, err := opts.prepare(); err != nil {
		return nil, err
	}
	h, err := ResolveHeader(path, opts.headerOptions())
	if err != nil {
		return nil, err
	}

	topts := opts
	if h.Indices != nil {
		if len(h.Indices) == 0 {
			return nil, configErr("columns", fmt.Errorf("no column named %v in header", opts.Columns.ColumnNames()))
		}
		topts.Columns = Index(h.Indices...)
	}
	tbl, err := ExtractTable(path, topts)
	if err != nil {
		return nil, err
	}
	if tbl.Rows > 0 && len(h.Names) != tbl.Width() {
		return nil, configErr("header", fmt.Errorf("%d names for %d columns in %s", len(h.Names), tbl.Width(), path))
	}
	tbl.setNames(h.Names)
	return tbl, nil
}
