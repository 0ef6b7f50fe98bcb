package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/MakeNowJust/heredoc"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abdul-hamid-achik/rdiff/packages/core/config"
	"github.com/abdul-hamid-achik/rdiff/packages/core/env"
	"github.com/abdul-hamid-achik/rdiff/packages/core/profile"
	"github.com/abdul-hamid-achik/rdiff/packages/output"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	verboseFlag  int // 0=warn, 1=-v debug, 2=-vv trace
	settingsFlag string
	envFileFlag  []string
	noColorFlag  bool
	outputFlag   string
	themeFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "rdiff",
	Short: "Diff two HTTP responses, or send one and pretty-print it.",
	Long: heredoc.Doc(`
		rdiff sends the two requests of a named profile and prints a colored
		line diff of their responses, after dropping the headers and body keys
		the profile says to skip.

		The xreq subcommands work on single-request profiles instead: they send
		one request and pretty-print its status, headers and body.

		Profiles live in rdiff.yaml (diff profiles) and xreq.yaml (request
		profiles). Run "rdiff init" to create both with examples.
	`),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the CLI and exits with a code describing the outcome.
func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		code := exitCode(err)
		var exitErr *exitError
		if !errors.As(err, &exitErr) || exitErr.err != nil {
			red := color.New(color.FgRed).SprintFunc()
			fmt.Fprintf(os.Stderr, "%s %v\n", red("Error:"), err)
		}
		os.Exit(code)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&verboseFlag, "verbose", "v", "Verbose output (-v debug logs, -vv trace logs)")
	flags.StringVar(&settingsFlag, "settings", getEnvString("RDIFF_CONFIG", ""), "Path to settings file (env: RDIFF_CONFIG)")
	flags.StringArrayVar(&envFileFlag, "env-file", getEnvStrings("RDIFF_ENV_FILE"), "Path to .env file for variable interpolation, repeatable (env: RDIFF_ENV_FILE)")
	flags.BoolVar(&noColorFlag, "no-color", getEnvBool("RDIFF_NO_COLOR", false), "Disable colored output (env: RDIFF_NO_COLOR)")
	flags.StringVarP(&outputFlag, "output", "o", getEnvString("RDIFF_OUTPUT", output.FormatConsole), "Output format: console, json (env: RDIFF_OUTPUT)")
	flags.StringVar(&themeFlag, "theme", getEnvString("RDIFF_THEME", ""), "Syntax highlighting theme (env: RDIFF_THEME)")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(xreqCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	switch {
	case verboseFlag >= 2:
		log.SetLevel(log.TraceLevel)
	case verboseFlag == 1:
		log.SetLevel(log.DebugLevel)
	default:
		log.SetLevel(log.WarnLevel)
	}

	if noColorFlag || !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
	return nil
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvStrings(key string) []string {
	if val := os.Getenv(key); val != "" {
		return []string{val}
	}
	return nil
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// loadSettings reads the settings file and applies persistent flags on top.
func loadSettings() (*config.Config, error) {
	settings, err := config.LoadConfig(settingsFlag)
	if err != nil {
		return nil, configError(err)
	}

	overrides := &config.Config{Theme: themeFlag, EnvFiles: envFileFlag}
	if noColorFlag {
		overrides.NoColor = config.BoolPtr(true)
	}
	return settings.Merge(overrides), nil
}

// newResolver returns a resolver seeded with the configured dotenv files.
func newResolver(settings *config.Config) (*env.Resolver, error) {
	vars, err := env.LoadVariables(settings.EnvFiles...)
	if err != nil {
		return nil, configError(err)
	}
	resolver := env.NewResolver()
	resolver.SetVariables(vars)
	return resolver, nil
}

func newFormatter(cmd *cobra.Command, settings *config.Config) (output.Formatter, error) {
	width := settings.Width
	if width == 0 || width == config.DefaultConfig().Width {
		width = terminalWidth(width)
	}
	f, err := output.New(outputFlag, output.Options{
		Writer:  cmd.OutOrStdout(),
		Verbose: verboseFlag > 0,
		NoColor: settings.GetNoColor(),
		Theme:   settings.Theme,
		Width:   width,
	})
	if err != nil {
		return nil, usageError(err)
	}
	return f, nil
}

// terminalWidth returns the width of stdout when it is a terminal.
func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallback
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

func loadOptions(settings *config.Config) ([]profile.LoadOption, error) {
	resolver, err := newResolver(settings)
	if err != nil {
		return nil, err
	}
	return []profile.LoadOption{profile.WithResolver(resolver)}, nil
}

func fileArg(args []string, def string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return def
}
