package readfile

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the target type of a column.
type Kind int

const (
	// String keeps fields as text.
	String Kind = iota
	// Int converts fields to int64.
	Int
	// Float converts fields to float64.
	Float
	// Bool converts fields with strconv.ParseBool.
	Bool
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case String:
		return "str"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a type name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "str", "string", "text":
		return String, nil
	case "int", "integer", "int64":
		return Int, nil
	case "float", "double", "float64":
		return Float, nil
	case "bool", "boolean":
		return Bool, nil
	}
	return String, configErr("dtype", fmt.Errorf("%w %q", ErrUnknownKind, s))
}

type dtypeMode int

const (
	modeUniform dtypeMode = iota
	modePerColumn
	modeAuto
)

// DType describes the target kinds of the selected columns. The zero value is
// Uniform(Float).
type DType struct {
	mode  dtypeMode
	kinds []Kind
}

// Uniform applies one kind to every selected column.
func Uniform(k Kind) DType {
	return DType{mode: modeUniform, kinds: []Kind{k}}
}

// PerColumn assigns one kind per selected column, in order.
func PerColumn(kinds ...Kind) DType {
	return DType{mode: modePerColumn, kinds: append([]Kind(nil), kinds...)}
}

// AutoDetect tries int, then float, then text for each column independently.
func AutoDetect() DType {
	return DType{mode: modeAuto}
}

// IsAuto reports whether d detects kinds per column.
func (d DType) IsAuto() bool { return d.mode == modeAuto }

// Len returns the number of kinds in a per-column dtype, or 0.
func (d DType) Len() int {
	if d.mode != modePerColumn {
		return 0
	}
	return len(d.kinds)
}

// String renders d in the form accepted by ParseDType.
func (d DType) String() string {
	switch d.mode {
	case modeAuto:
		return "auto"
	case modePerColumn:
		parts := make([]string, len(d.kinds))
		for i, k := range d.kinds {
			parts[i] = k.String()
		}
		return strings.Join(parts, ",")
	default:
		return d.uniform().String()
	}
}

func (d DType) uniform() Kind {
	if len(d.kinds) == 0 {
		return Float
	}
	return d.kinds[0]
}

// ParseDType parses "auto", a single kind name, or a comma-separated list of kind names.
func ParseDType(s string) (DType, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return DType{}, nil
	case "auto", "none":
		return AutoDetect(), nil
	}
	parts := strings.Split(s, ",")
	kinds := make([]Kind, 0, len(parts))
	for _, p := range parts {
		k, err := ParseKind(p)
		if err != nil {
			return DType{}, err
		}
		kinds = append(kinds, k)
	}
	if len(kinds) == 1 {
		return Uniform(kinds[0]), nil
	}
	return PerColumn(kinds...), nil
}

// resolve returns one kind per column. For auto detection kinds is nil and
// auto is true.
func (d DType) resolve(n int) (kinds []Kind, auto bool, err error) {
	switch d.mode {
	case modeAuto:
		return nil, true, nil
	case modePerColumn:
		if len(d.kinds) != n {
			return nil, false, configErr("dtype", fmt.Errorf("%w (dtype: %d, columns: %d)", ErrDTypeLength, len(d.kinds), n))
		}
		return d.kinds, false, nil
	}
	kinds = make([]Kind, n)
	u := d.uniform()
	for i := range kinds {
		kinds[i] = u
	}
	return kinds, false, nil
}

// parseValue converts one field. Surrounding whitespace is ignored for
// numeric and boolean kinds.
func parseValue(k Kind, s string) (any, bool) {
	switch k {
	case Int:
		v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		return v, err == nil
	case Float:
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return v, err == nil
	case Bool:
		v, err := strconv.ParseBool(strings.TrimSpace(s))
		return v, err == nil
	default:
		return s, true
	}
}
