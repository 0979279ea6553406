// Package render writes extracted tables and headers in the output formats
// of the readfile command.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/oleg578/readfile"
	"github.com/oleg578/readfile/arrowtable"
)

// Styles holds the terminal styles of the header listing.
type Styles struct {
	Title lipgloss.Style
	Index lipgloss.Style
	Name  lipgloss.Style
	Muted lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Index: r.NewStyle().Foreground(lipgloss.Color("8")).Width(4).Align(lipgloss.Right),
		Name:  r.NewStyle().Bold(true),
		Muted: r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Renderer writes results to one output in one format.
type Renderer struct {
	w      io.Writer
	format string
	styles Styles
}

// New returns a renderer for format: table, json, yaml, csv or markdown.
// Colors are used only when w is a terminal.
func New(w io.Writer, format string) *Renderer {
	return &Renderer{
		w:      w,
		format: format,
		styles: newStyles(lipgloss.NewRenderer(w)),
	}
}

type tableDoc struct {
	File    string   `json:"file" yaml:"file"`
	Columns []string `json:"columns" yaml:"columns"`
	Kinds   []string `json:"kinds" yaml:"kinds"`
	Rows    [][]any  `json:"rows" yaml:"rows"`
}

type headerDoc struct {
	File    string   `json:"file" yaml:"file"`
	Names   []string `json:"names" yaml:"names"`
	Indices []int    `json:"indices" yaml:"indices"`
}

// Table writes tbl read from file.
func (r *Renderer) Table(file string, tbl *readfile.Table) error {
	cols := make([]string, tbl.Width())
	for i := range cols {
		cols[i] = arrowtable.FieldName(tbl, i)
	}

	switch r.format {
	case "json", "yaml":
		doc := tableDoc{File: file, Columns: cols, Kinds: make([]string, tbl.Width()), Rows: make([][]any, tbl.Rows)}
		for i, c := range tbl.Columns {
			doc.Kinds[i] = c.Kind().String()
		}
		for i := range doc.Rows {
			doc.Rows[i] = tbl.Row(i)
		}
		return r.encode(doc)
	case "csv":
		return r.csv(cols, textRows(tbl))
	case "markdown":
		return r.markdown(cols, textRows(tbl))
	default:
		return r.table(file, cols, textRows(tbl))
	}
}

// Header writes the names resolved from file.
func (r *Renderer) Header(file string, h *readfile.Header) error {
	indices := h.Indices
	if indices == nil {
		indices = make([]int, len(h.Names))
		for i := range indices {
			indices[i] = i
		}
	}

	switch r.format {
	case "json", "yaml":
		return r.encode(headerDoc{File: file, Names: h.Names, Indices: indices})
	case "csv", "markdown":
		rows := make([][]string, len(h.Names))
		for i, name := range h.Names {
			rows[i] = []string{fmt.Sprint(indices[i]), name}
		}
		if r.format == "csv" {
			return r.csv([]string{"index", "name"}, rows)
		}
		return r.markdown([]string{"index", "name"}, rows)
	}

	var b strings.Builder
	b.WriteString(r.styles.Title.Render(file))
	b.WriteByte('\n')
	if len(h.Names) == 0 {
		b.WriteString(r.styles.Muted.Render("(no columns)"))
		b.WriteByte('\n')
	}
	for i, name := range h.Names {
		b.WriteString(r.styles.Index.Render(fmt.Sprint(indices[i])))
		b.WriteString("  ")
		b.WriteString(r.styles.Name.Render(name))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Renderer) encode(v any) error {
	if r.format == "yaml" {
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Renderer) table(title string, cols []string, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintf(r.w, "%s: (0 rows)\n", title)
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)

	header := make(table.Row, len(cols))
	for i, col := range cols {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, row := range rows {
		out := make(table.Row, len(row))
		for i, v := range row {
			out[i] = v
		}
		t.AppendRow(out)
	}

	t.Render()
	_, err := fmt.Fprintf(r.w, "(%d rows)\n", len(rows))
	return err
}

func (r *Renderer) csv(cols []string, rows [][]string) error {
	if _, err := fmt.Fprintln(r.w, joinCSV(cols)); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(r.w, joinCSV(row)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) markdown(cols []string, rows [][]string) error {
	if _, err := fmt.Fprintf(r.w, "| %s |\n", strings.Join(cols, " | ")); err != nil {
		return err
	}
	seps := make([]string, len(cols))
	for i := range seps {
		seps[i] = "---"
	}
	if _, err := fmt.Fprintf(r.w, "| %s |\n", strings.Join(seps, " | ")); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(r.w, "| %s |\n", strings.Join(row, " | ")); err != nil {
			return err
		}
	}
	return nil
}

func textRows(tbl *readfile.Table) [][]string {
	rows := make([][]string, tbl.Rows)
	for i := range rows {
		row := make([]string, tbl.Width())
		for j, c := range tbl.Columns {
			row[j] = c.Text(i)
		}
		rows[i] = row
	}
	return rows
}

func joinCSV(fields []string) string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = escapeCSV(f)
	}
	return strings.Join(out, ",")
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n\r") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
