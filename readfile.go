// # readfile: Typed Column Extraction from Delimited Text Files
//
// readfile reads small and medium scientific data tables stored as plain text: one record per line, fields separated by whitespace or a literal delimiter, optional comment lines and an optional header. Each selected column comes back as a homogeneous typed sequence.
//
// # Features
//
// - Line classification by comment markers, include markers (which override comments) and whole-token or prefix matching.
// - Column selection by zero-based index or by header name, with per-column target kinds (`Uniform`, `PerColumn`, `AutoDetect`) and a silent text fallback.
// - Two header layouts: a single delimited line, or vertical "index name" records as written by SExtractor.
// - Collapse of single-row results to a scalar or a flat row unless `ForceArray` is set.
// - `Save` writes columns back with percent-style or brace-style format specifiers.
// - Structured errors: `ConfigError`, `ParseError` and `ConversionError` wrap sentinel values usable with `errors.Is`.
//
// # Getting Started
//
//	tbl, err := readfile.ExtractTable("catalog.txt", readfile.DefaultTableOptions())
//	if err != nil {
//		return err
//	}
//	ra := tbl.Columns[1].Floats()
//
// Every call opens, reads and closes the file; nothing is cached between calls.
package readfile
