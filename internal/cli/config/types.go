// Package config loads the readfile command configuration.
package config

// Config holds all CLI configuration options. Keys match the global flag
// names with dashes replaced by underscores.
type Config struct {
	// Extraction
	Columns    []string `koanf:"columns"`
	DType      string   `koanf:"dtype"`
	Comment    []string `koanf:"comment"`
	Include    []string `koanf:"include"`
	Separator  string   `koanf:"separator"`
	DataStart  int      `koanf:"data_start"`
	WholeToken bool     `koanf:"whole_token"`
	ForceArray bool     `koanf:"force_array"`
	NoStrip    bool     `koanf:"no_strip"`
	Strict     bool     `koanf:"strict"`
	Encoding   string   `koanf:"encoding"`

	// Header
	Layout          string `koanf:"layout"`
	HeaderLine      int    `koanf:"header_line"`
	HeaderSeparator string `koanf:"header_separator"`
	Lowercase       bool   `koanf:"lowercase"`

	// Output
	Output    string `koanf:"output"`
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
}

// Default configuration values.
const (
	DefaultDType     = "float"
	DefaultComment   = "#"
	DefaultLayout    = "1"
	DefaultOutput    = "table"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Output formats accepted by --output.
var OutputFormats = []string{"table", "json", "yaml", "csv", "markdown"}
