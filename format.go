package readfile

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	percentSpec = regexp.MustCompile(`^%([-+# 0]*)(\d*)(?:\.(\d+))?([a-zA-Z])$`)
	braceSpec   = regexp.MustCompile(`^([<>=^])?([-+ ])?(#)?(0)?(\d*)(?:\.(\d+))?([a-zA-Z]?)$`)
)

// fieldSpec is one parsed conversion of a format template.
type fieldSpec struct {
	arg   int
	flags string
	width string
	prec  string
	verb  byte
	// brace specs left-align text when no alignment is given.
	brace bool
	align byte
}

// Template renders one row of values. Build it with ParseFormat.
// literals[i] precedes fields[i]; the last literal follows the last field.
type Template struct {
	fields   []fieldSpec
	literals []string
}

// ParseFormat builds a row template for n values. format is either a single
// percent specifier repeated n times, n space-separated percent specifiers,
// or a brace template such as "{0:8.3f}  {1:d}". A lone brace field is
// repeated n times like a lone percent specifier. Repeated fields are joined
// with delimiter. An empty format means "%s".
func ParseFormat(format, delimiter string, n int) (*Template, error) {
	if n < 1 {
		return nil, configErr("format", fmt.Errorf("%w: template needs at least one column", ErrBadFormat))
	}
	format = strings.TrimSpace(format)
	if format == "" {
		format = "%s"
	}
	if strings.HasPrefix(format, "%") {
		return parsePercent(format, delimiter, n)
	}
	return parseBrace(format, delimiter, n)
}

func parsePercent(format, delimiter string, n int) (*Template, error) {
	tokens := strings.Fields(format)
	if len(tokens) != 1 && len(tokens) != n {
		return nil, configErr("format", fmt.Errorf("%w: %d specifiers for %d columns", ErrBadFormat, len(tokens), n))
	}
	specs := make([]fieldSpec, len(tokens))
	for i, tok := range tokens {
		m := percentSpec.FindStringSubmatch(tok)
		if m == nil {
			return nil, configErr("format", fmt.Errorf("%w: %q", ErrBadFormat, tok))
		}
		verb, err := goVerb(m[4][0])
		if err != nil {
			return nil, configErr("format", err)
		}
		specs[i] = fieldSpec{arg: i, flags: m[1], width: m[2], prec: m[3], verb: verb}
	}
	return repeat(specs, delimiter, n), nil
}

func parseBrace(format, delimiter string, n int) (*Template, error) {
	t := &Template{}
	var (
		lit    strings.Builder
		auto   = 0
		manual = false
	)
	for i := 0; i < len(format); i++ {
		c := format[i]
		switch {
		case c == '{' && i+1 < len(format) && format[i+1] == '{':
			lit.WriteByte('{')
			i++
		case c == '}' && i+1 < len(format) && format[i+1] == '}':
			lit.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(format[i:], '}')
			if end < 0 {
				return nil, configErr("format", fmt.Errorf("%w: unclosed brace in %q", ErrBadFormat, format))
			}
			body := format[i+1 : i+end]
			i += end

			name, spec, _ := strings.Cut(body, ":")
			f := fieldSpec{brace: true}
			if name == "" {
				if manual {
					return nil, configErr("format", fmt.Errorf("%w: mixed automatic and manual field numbering", ErrBadFormat))
				}
				f.arg = auto
				auto++
			} else {
				ix, err := strconv.Atoi(name)
				if err != nil || ix < 0 || auto > 0 {
					return nil, configErr("format", fmt.Errorf("%w: field %q", ErrBadFormat, body))
				}
				manual = true
				f.arg = ix
			}
			m := braceSpec.FindStringSubmatch(spec)
			if m == nil {
				return nil, configErr("format", fmt.Errorf("%w: %q", ErrBadFormat, spec))
			}
			if m[1] != "" {
				f.align = m[1][0]
			}
			if m[1] == "<" {
				f.flags += "-"
			}
			if m[2] == "+" || m[2] == " " {
				f.flags += m[2]
			}
			f.flags += m[3] + m[4]
			f.width, f.prec = m[5], m[6]
			f.verb = 'v'
			if m[7] != "" {
				v, err := goVerb(m[7][0])
				if err != nil {
					return nil, configErr("format", err)
				}
				f.verb = v
			}
			t.literals = append(t.literals, lit.String())
			lit.Reset()
			t.fields = append(t.fields, f)
		case c == '}':
			return nil, configErr("format", fmt.Errorf("%w: single '}' in %q", ErrBadFormat, format))
		default:
			lit.WriteByte(c)
		}
	}
	t.literals = append(t.literals, lit.String())

	if len(t.fields) == 0 {
		return nil, configErr("format", fmt.Errorf("%w: no fields in %q", ErrBadFormat, format))
	}
	if len(t.fields) == 1 && strings.TrimSpace(t.literals[0]+t.literals[1]) == "" {
		return repeat(t.fields, delimiter, n), nil
	}
	for _, f := range t.fields {
		if f.arg >= n {
			return nil, configErr("format", fmt.Errorf("%w: field %d out of range for %d columns", ErrBadFormat, f.arg, n))
		}
	}
	return t, nil
}

// repeat lays out specs, or a single spec n times, joined by delimiter.
func repeat(specs []fieldSpec, delimiter string, n int) *Template {
	t := &Template{literals: []string{""}}
	for i := 0; i < n; i++ {
		f := specs[0]
		if len(specs) > 1 {
			f = specs[i]
		}
		f.arg = i
		if i > 0 {
			t.literals = append(t.literals, delimiter)
		}
		t.fields = append(t.fields, f)
	}
	t.literals = append(t.literals, "")
	return t
}

// goVerb maps a conversion letter to its fmt verb.
func goVerb(c byte) (byte, error) {
	switch c {
	case 's', 'd', 'f', 'e', 'E', 'g', 'G', 'x', 'X', 'o', 'b', 'c', 'v':
		return c, nil
	case 'i', 'u':
		return 'd', nil
	case 'F':
		return 'f', nil
	case 'r', 'a':
		return 'v', nil
	case 'n':
		return 'g', nil
	}
	return 0, fmt.Errorf("%w: conversion %q", ErrBadFormat, string(c))
}

// Len returns the number of values the template consumes.
func (t *Template) Len() int {
	n := 0
	for _, f := range t.fields {
		n = max(n, f.arg+1)
	}
	return n
}

// String returns the template in brace notation.
func (t *Template) String() string {
	var b strings.Builder
	for i, f := range t.fields {
		b.WriteString(escapeBraces(t.literals[i]))
		fmt.Fprintf(&b, "{%d:%s}", f.arg, f.spec())
	}
	b.WriteString(escapeBraces(t.literals[len(t.fields)]))
	return b.String()
}

func escapeBraces(s string) string {
	return strings.NewReplacer("{", "{{", "}", "}}").Replace(s)
}

func (f fieldSpec) spec() string {
	s := f.flags + f.width
	if f.prec != "" {
		s += "." + f.prec
	}
	return s + string(f.verb)
}

// Format renders values through the template.
func (t *Template) Format(values ...any) (string, error) {
	var b strings.Builder
	for i, f := range t.fields {
		b.WriteString(t.literals[i])
		if f.arg >= len(values) {
			return "", fmt.Errorf("%w: no value for field %d", ErrBadFormat, f.arg)
		}
		s, err := f.render(values[f.arg])
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	b.WriteString(t.literals[len(t.fields)])
	return b.String(), nil
}

func (f fieldSpec) render(v any) (string, error) {
	flags := f.flags
	if _, text := v.(string); f.brace && f.align == 0 && text {
		flags += "-"
	}
	layout := "%" + flags + f.width
	if f.prec != "" {
		layout += "." + f.prec
	}
	layout += string(f.verb)

	switch f.verb {
	case 's':
		return fmt.Sprintf(layout, textOf(v)), nil
	case 'd', 'x', 'X', 'o', 'b', 'c':
		n, ok := asInt(v)
		if !ok {
			return "", fmt.Errorf("%w: %v cannot be formatted with %%%c", ErrBadFormat, v, f.verb)
		}
		return fmt.Sprintf(layout, n), nil
	case 'f', 'e', 'E', 'g', 'G':
		x, ok := asFloat(v)
		if !ok {
			return "", fmt.Errorf("%w: %v cannot be formatted with %%%c", ErrBadFormat, v, f.verb)
		}
		return fmt.Sprintf(layout, x), nil
	default:
		return fmt.Sprintf(layout, v), nil
	}
}

// textOf renders a cell value the way Column.Text does.
func textOf(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(v)
	}
}

func asInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return int64(x), true
		}
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	}
	return 0, false
}
