package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/rdiff/packages/core/profile"
	"github.com/abdul-hamid-achik/rdiff/packages/core/runner"
	"github.com/abdul-hamid-achik/rdiff/packages/extraargs"
)

var xreqCmd = &cobra.Command{
	Use:   "xreq",
	Short: "Send single-request profiles and pretty-print the response",
	Long: heredoc.Doc(`
		Work with request profiles: one request per profile, stored in
		xreq.yaml by default. The response status, headers and body are printed
		with syntax highlighting.
	`),
}

var xreqRunFlags requestFlags

var xreqRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Send the request of a request profile",
	Example: heredoc.Doc(`
		rdiff xreq run -p todo
		rdiff xreq run -p todo -e a=1 -e %Authorization=token -e @title=hello
	`),
	Args: cobra.NoArgs,
	RunE: xreqRunCommand,
}

var xreqURLFlags requestFlags

var xreqURLCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the URL a request profile resolves to, without sending it",
	Example: heredoc.Doc(`
		rdiff xreq url -p todo -e a=1
	`),
	Args: cobra.NoArgs,
	RunE: xreqURLCommand,
}

func init() {
	xreqRunFlags.register(xreqRunCmd, profile.DefaultRequestFile)
	xreqRunCmd.Flags().BoolVarP(&xreqRunFlags.watch, "watch", "w", false, "Re-run when the profile file changes")
	xreqURLFlags.register(xreqURLCmd, profile.DefaultRequestFile)

	xreqCmd.AddCommand(xreqRunCmd)
	xreqCmd.AddCommand(xreqURLCmd)
	xreqCmd.AddCommand(newParseCmd(flavorRequest))
	xreqCmd.AddCommand(newValidateCmd(flavorRequest))
	xreqCmd.AddCommand(newListCmd(flavorRequest))
}

func loadRequestProfile(flags *requestFlags, opts []profile.LoadOption) (*profile.RequestProfile, error) {
	cfg, err := profile.LoadRequestConfig(flags.file, opts...)
	if err != nil {
		return nil, configError(err)
	}
	return cfg.Lookup(flags.profile, flags.file)
}

func xreqRunCommand(cmd *cobra.Command, args []string) error {
	settings, err := xreqRunFlags.settings()
	if err != nil {
		return err
	}
	extra, err := extraargs.Parse(xreqRunFlags.extra)
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
		p, err := loadRequestProfile(&xreqRunFlags, opts)
		if err != nil {
			return err
		}
		result, err := r.Request(ctx, xreqRunFlags.profile, p, extra)
		if err != nil {
			return err
		}
		return formatter.FormatRequest(result)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !xreqRunFlags.watch {
		return run(ctx)
	}
	return watchFile(ctx, cmd, xreqRunFlags.file, formatter, run)
}

func xreqURLCommand(cmd *cobra.Command, args []string) error {
	settings, err := xreqURLFlags.settings()
	if err != nil {
		return err
	}
	extra, err := extraargs.Parse(xreqURLFlags.extra)
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

	p, err := loadRequestProfile(&xreqURLFlags, opts)
	if err != nil {
		return err
	}
	url, err := p.GetURL(extra)
	if err != nil {
		return configError(err)
	}
	return formatter.FormatURL(xreqURLFlags.profile, url)
}
