package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"

	"github.com/abdul-hamid-achik/rdiff/packages/core/profile"
	"github.com/abdul-hamid-achik/rdiff/packages/core/runner"
	"github.com/abdul-hamid-achik/rdiff/packages/diff"
	"github.com/abdul-hamid-achik/rdiff/packages/highlight"
	"github.com/abdul-hamid-achik/rdiff/packages/normalize"
)

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
	theme   string
	width   int
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
		theme:  highlight.DefaultTheme,
		width:  diff.DefaultWidth,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

func WithTheme(theme string) ConsoleOption {
	return func(f *ConsoleFormatter) {
		if theme != "" {
			f.theme = theme
		}
	}
}

func WithWidth(width int) ConsoleOption {
	return func(f *ConsoleFormatter) {
		if width > 0 {
			f.width = width
		}
	}
}

func (f *ConsoleFormatter) colored() bool {
	return !f.noColor && !color.NoColor
}

// highlight colors text when color output is enabled. Highlighting failures
// fall back to the plain text.
func (f *ConsoleFormatter) highlight(text, format, theme string) string {
	if !f.colored() || text == "" {
		return text
	}
	out, err := highlight.Text(text, format, theme)
	if err != nil {
		log.WithError(err).Debug("highlighting failed")
		return text
	}
	return out
}

// FormatRequest prints the resolved URL, the status line, the headers
// highlighted as YAML and the body highlighted by its media type.
func (f *ConsoleFormatter) FormatRequest(result *runner.RequestResult) error {
	cyan := color.New(color.FgCyan).SprintFunc()
	status := color.New(color.Bold, color.FgGreen).SprintFunc()

	resp := result.Response
	if !resp.IsSuccess() {
		status = color.New(color.Bold, color.FgRed).SprintFunc()
	}
	body, err := normalize.BodyText(resp, nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(f.writer, "%s\n\n", cyan(result.URL))
	fmt.Fprint(f.writer, status(normalize.StatusText(resp)))

	headers := strings.TrimSuffix(normalize.HeadersText(resp, profile.ResponseProfile{}), "\n")
	fmt.Fprint(f.writer, f.highlight(headers, "yaml", highlight.HeaderTheme))
	fmt.Fprintln(f.writer)

	fmt.Fprint(f.writer, f.highlight(body, resp.MediaType(), f.theme))
	if body != "" && !strings.HasSuffix(body, "\n") {
		fmt.Fprintln(f.writer)
	}

	if f.verbose {
		fmt.Fprintf(f.writer, "\nTime:  %dms\n", result.Duration.Milliseconds())
	}
	return nil
}

// FormatDiff prints the line diff of the two normalized responses.
func (f *ConsoleFormatter) FormatDiff(result *runner.DiffResult) error {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	if f.verbose {
		fmt.Fprintf(f.writer, "%s %s\n", red("---"), cyan(result.Req1.URL))
		fmt.Fprintf(f.writer, "%s %s\n", green("+++"), cyan(result.Req2.URL))
	}

	opts := []diff.Option{diff.WithWidth(f.width)}
	if !f.colored() {
		opts = append(opts, diff.WithColor(false))
	}
	fmt.Fprint(f.writer, diff.Render(result.Hunks, opts...))

	if f.verbose {
		added, removed := diff.Stats(result.Hunks)
		fmt.Fprintf(f.writer, "\n%s, %s\n",
			green(fmt.Sprintf("%d added", added)),
			red(fmt.Sprintf("%d removed", removed)))
		fmt.Fprintf(f.writer, "Time:  %dms\n", result.Duration.Milliseconds())
	}
	return nil
}

// FormatURL prints the URL a request profile resolves to.
func (f *ConsoleFormatter) FormatURL(name, url string) error {
	if f.verbose {
		bold := color.New(color.Bold).SprintFunc()
		fmt.Fprintf(f.writer, "%s ", bold(name+":"))
	}
	fmt.Fprintln(f.writer, url)
	return nil
}

// FormatDocument prints a serialized config highlighted as YAML.
func (f *ConsoleFormatter) FormatDocument(data []byte) error {
	text := string(data)
	fmt.Fprint(f.writer, f.highlight(text, "yaml", f.theme))
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(f.writer)
	}
	return nil
}

func (f *ConsoleFormatter) FormatProfiles(source string, profiles []ProfileSummary) error {
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintf(f.writer, "%s\n", bold(source))
	for _, p := range profiles {
		fmt.Fprintf(f.writer, "  %s\n", p.Name)
		for _, u := range p.URLs {
			fmt.Fprintf(f.writer, "    %s\n", cyan(u))
		}
	}
	fmt.Fprintf(f.writer, "\n%d profiles\n", len(profiles))
	return nil
}

func (f *ConsoleFormatter) FormatValidation(source string, count int, errs []error) error {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	if len(errs) == 0 {
		fmt.Fprintf(f.writer, "%s %s (%d profiles)\n", green("✓"), source, count)
		return nil
	}

	fmt.Fprintf(f.writer, "%s %s\n", red("✗"), source)
	for _, err := range errs {
		fmt.Fprintf(f.writer, "  %s %v\n", red("→"), err)
	}
	return nil
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
}
