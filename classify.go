package readfile

import "strings"

// lineClass is the outcome of classifying one input line.
type lineClass int

const (
	classBlank lineClass = iota
	classExcluded
	classNotIncluded
	classData
)

// classifier decides whether a line carries data and splits it into fields.
type classifier struct {
	comment   []string
	include   []string
	separator string
	whole     bool
	strip     bool
}

func newClassifier(comment, include []string, separator string, whole, strip bool) classifier {
	return classifier{
		comment:   nonEmpty(comment),
		include:   nonEmpty(include),
		separator: separator,
		whole:     whole,
		strip:     strip,
	}
}

// classify returns the class of raw and, for data lines, its fields.
// Include markers take precedence over comment markers.
func (c classifier) classify(raw string) (lineClass, []string) {
	if strings.TrimSpace(raw) == "" {
		return classBlank, nil
	}
	line := raw
	if c.strip {
		line = strings.TrimSpace(raw)
	}
	fields := splitFields(line, c.separator, c.strip)

	if len(c.include) > 0 {
		if !c.matches(c.include, line, fields) {
			return classNotIncluded, nil
		}
		return classData, fields
	}
	if len(c.comment) > 0 && c.matches(c.comment, line, fields) {
		return classExcluded, nil
	}
	return classData, fields
}

// matches compares markers against the first field in whole-token mode and
// against the start of the line, leading whitespace ignored, otherwise.
func (c classifier) matches(markers []string, line string, fields []string) bool {
	if c.whole {
		if len(fields) == 0 {
			return false
		}
		first := strings.TrimSpace(fields[0])
		for _, m := range markers {
			if first == m {
				return true
			}
		}
		return false
	}
	lead := strings.TrimLeft(line, " \t")
	for _, m := range markers {
		if strings.HasPrefix(lead, m) {
			return true
		}
	}
	return false
}

// isWhitespaceSeparator reports whether sep means "split on whitespace runs".
func isWhitespaceSeparator(sep string) bool {
	return sep == "" || sep == " " || sep == "\t"
}

// splitFields splits line on sep. With a literal separator and strip set,
// every field is trimmed.
func splitFields(line, sep string, strip bool) []string {
	if isWhitespaceSeparator(sep) {
		return strings.Fields(line)
	}
	parts := strings.Split(line, sep)
	if strip {
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
	}
	return parts
}

func nonEmpty(markers []string) []string {
	var out []string
	for _, m := range markers {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}
