package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/rdiff/packages/core/config"
	"github.com/abdul-hamid-achik/rdiff/packages/core/profile"
	"github.com/abdul-hamid-achik/rdiff/packages/core/runner"
	"github.com/abdul-hamid-achik/rdiff/packages/extraargs"
	"github.com/abdul-hamid-achik/rdiff/packages/output"
)

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

// requestFlags are the flags shared by every command that sends requests.
type requestFlags struct {
	file     string
	profile  string
	extra    []string
	timeout  string
	proxy    string
	insecure bool
	context  int
	watch    bool
	exitCode bool
}

func (f *requestFlags) register(cmd *cobra.Command, defaultFile string) {
	cmd.Flags().StringVarP(&f.file, "config", "c", defaultFile, "Profile file (YAML, JSON or TOML)")
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", "Profile name")
	cmd.Flags().StringArrayVarP(&f.extra, "extra-args", "e", nil, "Override: key=value (query), %key=value (header), @key=value (body)")
	cmd.Flags().StringVar(&f.timeout, "timeout", getEnvString("RDIFF_TIMEOUT", ""), "Request timeout, e.g. 30s or 500ms (env: RDIFF_TIMEOUT)")
	cmd.Flags().StringVar(&f.proxy, "proxy", getEnvString("RDIFF_PROXY", ""), "Proxy URL for HTTP requests (env: RDIFF_PROXY)")
	cmd.Flags().BoolVarP(&f.insecure, "insecure", "k", getEnvBool("RDIFF_INSECURE", false), "Disable SSL certificate validation (env: RDIFF_INSECURE)")
}

// settings loads the settings file and applies the request flags.
func (f *requestFlags) settings() (*config.Config, error) {
	if f.profile == "" {
		return nil, usageError(errors.New("a profile name is required (-p NAME)"))
	}
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	overrides := &config.Config{Proxy: f.proxy, Context: f.context}
	if f.timeout != "" {
		timeout, err := time.ParseDuration(f.timeout)
		if err != nil || timeout <= 0 {
			return nil, usageError(fmt.Errorf("invalid timeout value %q (use format like 30s, 1m, 500ms)", f.timeout))
		}
		overrides.Timeout = int(timeout.Milliseconds())
	}
	if f.insecure {
		overrides.ValidateSSL = config.BoolPtr(false)
	}
	return settings.Merge(overrides), nil
}

var runFlags requestFlags

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Diff the responses of a diff profile",
	Long: heredoc.Doc(`
		Send req1 and req2 of a diff profile, drop the headers and body keys
		listed under resp, and print a line diff of the two responses.

		Overrides given with -e apply to both requests.
	`),
	Example: heredoc.Doc(`
		rdiff run -p todo
		rdiff run -p todo -e a=100 -e %User-Agent=rdiff -e @title=hello
		rdiff run -p todo -c profiles/staging.yaml --exit-code
		rdiff run -p todo --watch
	`),
	Args: cobra.NoArgs,
	RunE: runCommand,
}

func init() {
	runFlags.register(runCmd, profile.DefaultDiffFile)
	runCmd.Flags().IntVar(&runFlags.context, "context", getEnvInt("RDIFF_CONTEXT", 0), "Unchanged lines shown around each change (env: RDIFF_CONTEXT)")
	runCmd.Flags().BoolVarP(&runFlags.watch, "watch", "w", false, "Re-run when the profile file changes")
	runCmd.Flags().BoolVar(&runFlags.exitCode, "exit-code", false, "Exit with status 1 when the responses differ")
}

func runCommand(cmd *cobra.Command, args []string) error {
	settings, err := runFlags.settings()
	if err != nil {
		return err
	}
	extra, err := extraargs.Parse(runFlags.extra)
	if err != nil {
		return err
	}
	formatter, err := newFormatter(cmd, settings)
	if err != nil {
		return err
	}
	opts, err := loadOptions(settings)
	if err != nil {
		return err
	}
	r := runner.NewRunner(settings.RunnerConfig())

	run := func(ctx context.Context) error {
		cfg, err := profile.LoadDiffConfig(runFlags.file, opts...)
		if err != nil {
			return configError(err)
		}
		p, err := cfg.Lookup(runFlags.profile, runFlags.file)
		if err != nil {
			return err
		}

		result, err := r.Diff(ctx, runFlags.profile, p, extra)
		if err != nil {
			return err
		}
		if err := formatter.FormatDiff(result); err != nil {
			return err
		}
		if runFlags.exitCode && result.Changed() {
			return &exitError{code: ExitDifferences}
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !runFlags.watch {
		return run(ctx)
	}
	return watchFile(ctx, cmd, runFlags.file, formatter, run)
}

// watchFile runs fn once and again after every write to path, until ctx is
// done. Failures of fn are reported and do not stop watching.
func watchFile(ctx context.Context, cmd *cobra.Command, path string, formatter output.Formatter, fn func(context.Context) error) error {
	report := func() {
		if err := fn(ctx); err != nil && exitCode(err) != ExitDifferences {
			formatter.FormatError(err)
		}
	}
	report()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	// editors replace files on save, so watch the directory
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "\nWatching %s for changes... (press Ctrl+C to stop)\n\n", path)

	trigger := make(chan struct{}, 1)
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			log.WithField("event", event.String()).Debug("profile file changed")
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})

		case <-trigger:
			fmt.Fprintf(cmd.ErrOrStderr(), "\nFile changed: %s\nRe-running...\n\n", path)
			report()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			formatter.FormatError(fmt.Errorf("watcher error: %w", err))
		}
	}
}
