package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/rdiff/packages/core/runner"
	"github.com/abdul-hamid-achik/rdiff/packages/prompt"
	"github.com/abdul-hamid-achik/rdiff/packages/wizard"
)

var parseCmd = newParseCmd(flavorDiff)

func newParseCmd(f flavor) *cobra.Command {
	var copyFlag bool

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Build a profile interactively and print it",
		Long: heredoc.Docf(`
			Ask for the request URLs and a profile name, then print the profile
			as a document that can be appended to %s.

			Answers starting with "curl " are read as curl commands, so a request
			copied from the browser's developer tools keeps its method, headers
			and body.
		`, f.defaultFile),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
				return usageError(errors.New("parse is interactive and needs a terminal on stdin"))
			}

			settings, err := loadSettings()
			if err != nil {
				return err
			}
			formatter, err := newFormatter(cmd, settings)
			if err != nil {
				return err
			}

			r := runner.NewRunner(settings.RunnerConfig())
			w := wizard.New(prompt.NewTerminal(prompt.WithOutput(cmd.ErrOrStderr())), wizard.SendPreflight(r.Client()))

			cfg, err := f.build(cmd.Context(), w)
			if err != nil {
				if errors.Is(err, prompt.ErrCancelled) {
					return &exitError{code: ExitUsageError}
				}
				return err
			}

			data, err := cfg.Marshal()
			if err != nil {
				return err
			}

			if copyFlag {
				if err := clipboard.WriteAll(string(data)); err != nil {
					log.WithError(err).Warn("could not copy to clipboard")
				} else {
					fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard")
				}
			}
			return formatter.FormatDocument(data)
		},
	}
	cmd.Flags().BoolVar(&copyFlag, "copy", false, "Also copy the document to the clipboard")
	return cmd
}
