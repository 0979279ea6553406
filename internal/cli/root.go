// Package cli provides the command-line interface for readfile.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oleg578/readfile/internal/cli/commands"
	"github.com/oleg578/readfile/internal/cli/config"
	"github.com/oleg578/readfile/internal/logging"
)

// Version information (set at build time).
var Version = "0.1.0"

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "readfile",
		Short: "Read columns from delimited text tables",
		Long: `readfile extracts typed columns from whitespace or delimiter separated
text tables such as astronomical catalogues.

Columns are selected by index or by header name, lines are filtered by
comment and include markers, and the result can be printed, rewritten with a
new format, exported to Arrow or Parquet, or loaded into SQLite.

Every global flag can also be set in readfile.yaml or through a READFILE_
environment variable (READFILE_DATA_START=2).`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, used, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if used != "" {
				logger.Info("using config file", "path", used)
			}
			cmd.SetContext(config.WithContext(cmd.Context(), cfg, logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./readfile.yaml)")

	// Extraction
	flags.StringSliceP("columns", "c", nil, "Columns to extract, by zero-based index or header name")
	flags.StringP("dtype", "d", config.DefaultDType, "Column kinds: auto, a kind (str|int|float|bool) or a comma-separated list")
	flags.StringSlice("comment", []string{config.DefaultComment}, "Markers of lines to skip")
	flags.StringSlice("include", nil, "Markers of the only lines to keep")
	flags.StringP("separator", "s", "", "Field separator (default: runs of whitespace)")
	flags.Int("data-start", 0, "Number of leading data lines to skip")
	flags.Bool("whole-token", false, "Match markers against the first field only")
	flags.Bool("force-array", false, "Never collapse a single row")
	flags.Bool("no-strip", false, "Keep surrounding spaces of lines and fields")
	flags.Bool("strict", false, "Fail on values that do not convert instead of keeping text")
	flags.String("encoding", "", "Text encoding of the input (default: utf-8)")

	// Header
	flags.String("layout", config.DefaultLayout, "Header layout: 1 (one line) or 2 (one record per column)")
	flags.Int("header-line", 0, "Header line number, or name field for layout 2")
	flags.String("header-separator", "", "Separator of the header line (default: runs of whitespace)")
	flags.Bool("lowercase", false, "Lower-case header names")

	// Output
	flags.StringP("output", "o", config.DefaultOutput, "Output format (table|json|yaml|csv|markdown)")
	flags.String("log-level", config.DefaultLogLevel, "Log level (debug|info|warn|error)")
	flags.String("log-format", config.DefaultLogFormat, "Log format (text|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.OutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("dtype", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "str", "int", "float", "bool"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewHeaderCommand())
	rootCmd.AddCommand(commands.NewTableCommand())
	rootCmd.AddCommand(commands.NewConvertCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewLoadCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
