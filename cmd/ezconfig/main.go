package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"ezconfig-cli/internal/app"
	"ezconfig-cli/internal/interactive"
	"ezconfig-cli/pkg/models"
)

// Build-time variables injected via ldflags
var (
	version   = "dev"
	commit    = "unknown"
	date      = "unknown"
	goVersion = runtime.Version()
)

var rootCmd = &cobra.Command{
	Use:   "ezconfig",
	Short: "Edit a JSON configuration file from the console",
	Long: `ezconfig shows the fields declared in a schema file as a table, together with
their current values from a JSON configuration file, and lets you change them
by typing KEY=VALUE. Keys match field names case-insensitively or by their
1-based position in the table.

Press ENTER on an empty line to finish once every required field has a value,
or type exit, q or quit to leave without finishing. Every accepted change is
saved to the configuration file immediately.

Fields come from the schema file (ezconfig.toml by default) and from repeated
--field NAME[:type][=default][!] flags, where ! marks a required field.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Check if version flag is set
		if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
			versionCmd.Run(cmd, args)
			return nil
		}

		request, err := buildRequestFromFlags(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		outcome, err := app.Run(request)
		if err != nil {
			return err
		}
		if outcome == interactive.OutcomeAborted && request.Verbose {
			fmt.Fprintln(os.Stderr, "Configuration session aborted")
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	Long:  "Print the reconciled configuration once, as a table or as JSON, without starting the editor. The configuration file is not modified.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildRequestFromFlags(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}
		return app.Show(request)
	},
}

var initCmd = &cobra.Command{
	Use:   "init [schema.toml]",
	Short: "Create a schema file interactively",
	Long:  "Ask for field names, types, defaults and whether each field is required, then write them as a schema file (ezconfig.toml by default).",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildRequestFromFlags(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		var path string
		if len(args) > 0 {
			path = strings.TrimSpace(args[0])
		}
		return app.Init(request, path)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print detailed version information including build version, commit, date, and platform details.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ezconfig version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		fmt.Printf("  go version: %s\n", goVersion)
		fmt.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(initCmd)

	// Global flags
	rootCmd.PersistentFlags().StringP("schema", "s", "", "schema file path (default ./ezconfig.toml when present)")
	rootCmd.PersistentFlags().StringP("file", "f", "", "configuration file; the extension is replaced by .json (default config.json)")
	rootCmd.PersistentFlags().StringArray("field", []string{}, "declare a field as NAME[:type][=default][!] (repeatable)")
	rootCmd.PersistentFlags().BoolP("verbose", "V", false, "print info messages to stderr")
	rootCmd.PersistentFlags().Bool("debug", false, "print debug messages to stderr")
	rootCmd.PersistentFlags().BoolP("version", "v", false, "print version information")

	// Display flags shared by the editor and show
	for _, flags := range []*pflag.FlagSet{rootCmd.Flags(), showCmd.Flags()} {
		flags.String("title", "", "table title template (default \"ezconfig({{ .Path }})\")")
		flags.Bool("no-title", false, "render the table without a title")
		flags.String("caption", "", "caption template printed under the table")
		flags.StringSlice("headers", []string{}, "key and value column headers, e.g. Key,Value")
		flags.Bool("no-index", false, "hide the position column")
		flags.Bool("lines", false, "draw separators between rows")
		flags.Bool("plain", false, "print key = value lines instead of a table")
		flags.StringP("target", "t", "", "output target for --print and show (clipboard, stdout, file:/path)")
	}

	// Main command flags
	rootCmd.Flags().String("banner", "", "prompt shown before each input line")
	rootCmd.Flags().Bool("no-clear", false, "do not clear the screen between renders")
	rootCmd.Flags().Bool("print", false, "print the final configuration as JSON after completing")

	// Show command flags
	showCmd.Flags().String("format", "", "output format (table, json)")
}

// buildRequestFromFlags constructs a SessionRequest from command flags. Flags a
// command does not define are left at their zero value.
func buildRequestFromFlags(cmd *cobra.Command) (*models.SessionRequest, error) {
	request := models.NewSessionRequest()
	flags := cmd.Flags()

	stringFlags := map[string]*string{
		"schema":  &request.SchemaPath,
		"file":    &request.File,
		"title":   &request.Title,
		"caption": &request.Caption,
		"banner":  &request.Banner,
		"format":  &request.Format,
		"target":  &request.Target,
	}
	for name, dst := range stringFlags {
		if flags.Lookup(name) == nil {
			continue
		}
		value, err := flags.GetString(name)
		if err != nil {
			return nil, fmt.Errorf("invalid %s flag: %w", name, err)
		}
		*dst = strings.TrimSpace(value)
	}

	boolFlags := map[string]*bool{
		"no-title": &request.NoTitle,
		"no-index": &request.HideIndex,
		"lines":    &request.ShowLines,
		"no-clear": &request.NoClear,
		"plain":    &request.Plain,
		"print":    &request.Print,
		"verbose":  &request.Verbose,
		"debug":    &request.Debug,
	}
	for name, dst := range boolFlags {
		if flags.Lookup(name) == nil {
			continue
		}
		value, err := flags.GetBool(name)
		if err != nil {
			return nil, fmt.Errorf("invalid %s flag: %w", name, err)
		}
		*dst = value
	}

	var err error
	if flags.Lookup("field") != nil {
		if request.Fields, err = flags.GetStringArray("field"); err != nil {
			return nil, fmt.Errorf("invalid field flag: %w", err)
		}
	}

	if flags.Lookup("headers") != nil {
		if request.Headers, err = flags.GetStringSlice("headers"); err != nil {
			return nil, fmt.Errorf("invalid headers flag: %w", err)
		}
		if len(request.Headers) != 0 && len(request.Headers) != 2 {
			return nil, fmt.Errorf("--headers takes a key header and a value header, got %d", len(request.Headers))
		}
	}

	return request, nil
}

func main() {
	// Disable usage on error to show only our custom error messages
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
