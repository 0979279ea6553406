package readfile

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestTableView(t *testing.T) {
	t.Parallel()

	tbl := &Table{
		Columns: []Column{
			IntColumn([]int64{1, 2}),
			StringColumn([]string{"a", "b"}),
		},
		Rows: 2,
	}
	tbl.setNames([]string{"n", "s"})

	if got := tbl.Row(1); !reflect.DeepEqual(got, []any{int64(2), "b"}) {
		t.Fatalf("Row(1) = %v", got)
	}
	if c, ok := tbl.Column("s"); !ok || c.Name != "s" || c.Text(0) != "a" {
		t.Fatalf("Column(s) = %+v, %v", c, ok)
	}
	if _, ok := tbl.Column("missing"); ok {
		t.Fatalf("Column(missing) reported found")
	}
	if cols, ok := tbl.Value().([]Column); !ok || len(cols) != 2 {
		t.Fatalf("Value() = %T, want []Column", tbl.Value())
	}
}

func TestColumnAccessors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		col    Column
		kind   Kind
		values []any
		text   []string
	}{
		{
			name:   "int",
			col:    IntColumn([]int64{-1, 7}),
			kind:   Int,
			values: []any{int64(-1), int64(7)},
			text:   []string{"-1", "7"},
		},
		{
			name:   "float",
			col:    FloatColumn([]float64{0.5, 1e21}),
			kind:   Float,
			values: []any{0.5, 1e21},
			text:   []string{"0.5", "1e+21"},
		},
		{
			name:   "bool",
			col:    BoolColumn([]bool{true, false}),
			kind:   Bool,
			values: []any{true, false},
			text:   []string{"true", "false"},
		},
		{
			name:   "string",
			col:    StringColumn([]string{"x", ""}),
			kind:   String,
			values: []any{"x", ""},
			text:   []string{"x", ""},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if tc.col.Kind() != tc.kind {
				t.Fatalf("Kind() = %v, want %v", tc.col.Kind(), tc.kind)
			}
			if tc.col.Len() != len(tc.values) {
				t.Fatalf("Len() = %d, want %d", tc.col.Len(), len(tc.values))
			}
			if got := tc.col.Values(); !reflect.DeepEqual(got, tc.values) {
				t.Fatalf("Values() = %v, want %v", got, tc.values)
			}
			for i, want := range tc.text {
				if got := tc.col.Text(i); got != want {
					t.Fatalf("Text(%d) = %q, want %q", i, got, want)
				}
			}
		})
	}
}

func TestShapeString(t *testing.T) {
	t.Parallel()

	for shape, want := range map[Shape]string{
		ShapeTable:  "table",
		ShapeColumn: "column",
		ShapeRow:    "row",
		ShapeScalar: "scalar",
	} {
		if got := shape.String(); got != want {
			t.Fatalf("Shape(%d).String() = %q, want %q", int(shape), got, want)
		}
	}
}

func TestParseDType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
		auto  bool
		n     int
	}{
		{input: "", want: "float"},
		{input: "auto", want: "auto", auto: true},
		{input: "None", want: "auto", auto: true},
		{input: "int", want: "int"},
		{input: "str, float ,bool", want: "str,float,bool", n: 3},
		{input: "integer,double", want: "int,float", n: 2},
	}

	for _, tc := range tests {
		d, err := ParseDType(tc.input)
		if err != nil {
			t.Fatalf("ParseDType(%q) error = %v", tc.input, err)
		}
		if d.String() != tc.want || d.IsAuto() != tc.auto || d.Len() != tc.n {
			t.Fatalf("ParseDType(%q) = %s (auto %v, len %d), want %s (auto %v, len %d)",
				tc.input, d, d.IsAuto(), d.Len(), tc.want, tc.auto, tc.n)
		}
	}

	if _, err := ParseDType("int,complex"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("ParseDType() error = %v, want ErrUnknownKind", err)
	}
}

func TestDTypeResolve(t *testing.T) {
	t.Parallel()

	kinds, auto, err := Uniform(Int).resolve(3)
	if err != nil || auto || !reflect.DeepEqual(kinds, []Kind{Int, Int, Int}) {
		t.Fatalf("Uniform(Int).resolve(3) = %v, %v, %v", kinds, auto, err)
	}
	if kinds, _, _ := (DType{}).resolve(1); !reflect.DeepEqual(kinds, []Kind{Float}) {
		t.Fatalf("zero DType resolves to %v, want [float]", kinds)
	}
	if _, auto, _ := AutoDetect().resolve(2); !auto {
		t.Fatalf("AutoDetect().resolve() auto = false")
	}
	_, _, err = PerColumn(Int, Float).resolve(3)
	var cerr *ConfigError
	if !errors.As(err, &cerr) || cerr.Arg != "dtype" || !errors.Is(err, ErrDTypeLength) {
		t.Fatalf("PerColumn.resolve() error = %v, want dtype ErrDTypeLength", err)
	}
}

func TestParseColumns(t *testing.T) {
	t.Parallel()

	c, err := ParseColumns([]string{"2", " 0 "})
	if err != nil {
		t.Fatalf("ParseColumns() error = %v", err)
	}
	if c.ByName() || !reflect.DeepEqual(c.Indices(), []int{2, 0}) || c.String() != "2,0" {
		t.Fatalf("ParseColumns(indices) = %+v", c)
	}

	c, err = ParseColumns([]string{"ra", "dec", ""})
	if err != nil {
		t.Fatalf("ParseColumns() error = %v", err)
	}
	if !c.ByName() || c.Len() != 2 || c.String() != "ra,dec" {
		t.Fatalf("ParseColumns(names) = %+v", c)
	}

	c, err = ParseColumns(nil)
	if err != nil || !c.All() {
		t.Fatalf("ParseColumns(nil) = %+v, %v, want all columns", c, err)
	}

	_, err = ParseColumns([]string{"1", "ra"})
	if !errors.Is(err, ErrMixedColumns) {
		t.Fatalf("ParseColumns(mixed) error = %v, want ErrMixedColumns", err)
	}
}

func TestErrorMethods(t *testing.T) {
	t.Parallel()

	perr := &ParseError{File: "cat.txt", Line: 4, Row: 3, Column: 2, Err: ErrMissingField}
	if got := perr.Error(); !strings.Contains(got, "cat.txt") || !strings.Contains(got, "line 4") || !strings.Contains(got, "row 3") || !strings.Contains(got, "column 2") {
		t.Fatalf("ParseError.Error() = %q, want descriptive output", got)
	}
	if !errors.Is(perr, ErrMissingField) {
		t.Fatalf("ParseError should unwrap to ErrMissingField")
	}
	if got := (&ParseError{Err: ErrMissingField}).Error(); !strings.Contains(got, "<input>") {
		t.Fatalf("ParseError without file = %q, want <input>", got)
	}

	cerr := &ConversionError{File: "cat.txt", Column: 1, Row: 2, Kind: Int, Value: "x"}
	if got := cerr.Error(); !strings.Contains(got, "column 1") || !strings.Contains(got, "int") {
		t.Fatalf("ConversionError.Error() = %q", got)
	}

	var nilParse *ParseError
	var nilConfig *ConfigError
	var nilConv *ConversionError
	if nilParse.Error() != "" || nilConfig.Error() != "" || nilConv.Error() != "" {
		t.Fatalf("nil errors should render as empty strings")
	}
	if nilParse.Unwrap() != nil || nilConfig.Unwrap() != nil || nilConv.Unwrap() != nil {
		t.Fatalf("nil errors should unwrap to nil")
	}
}
