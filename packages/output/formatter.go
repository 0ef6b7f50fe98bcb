package output

import (
	"fmt"
	"io"

	"github.com/abdul-hamid-achik/rdiff/packages/core/runner"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Formatter renders the results of one invocation.
type Formatter interface {
	FormatRequest(result *runner.RequestResult) error
	FormatDiff(result *runner.DiffResult) error
	FormatURL(name, url string) error
	FormatDocument(data []byte) error
	FormatProfiles(source string, profiles []ProfileSummary) error
	FormatValidation(source string, count int, errs []error) error
	FormatError(err error)
}

// ProfileSummary is one line of a profile listing.
type ProfileSummary struct {
	Name string   `json:"name"`
	URLs []string `json:"urls"`
}

// Options configures a formatter.
type Options struct {
	Writer  io.Writer
	Verbose bool
	NoColor bool
	Theme   string
	Width   int
}

// New returns the formatter registered under name.
func New(name string, opts Options) (Formatter, error) {
	switch name {
	case "", FormatConsole:
		consoleOpts := []ConsoleOption{
			WithVerbose(opts.Verbose),
			WithNoColor(opts.NoColor),
			WithTheme(opts.Theme),
			WithWidth(opts.Width),
		}
		if opts.Writer != nil {
			consoleOpts = append(consoleOpts, WithWriter(opts.Writer))
		}
		return NewConsoleFormatter(consoleOpts...), nil
	case FormatJSON:
		var jsonOpts []JSONOption
		if opts.Writer != nil {
			jsonOpts = append(jsonOpts, JSONWithWriter(opts.Writer))
		}
		return NewJSONFormatter(jsonOpts...), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected %s or %s)", name, FormatConsole, FormatJSON)
	}
}
