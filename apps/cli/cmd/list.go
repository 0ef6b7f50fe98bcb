package cmd

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
)

var listCmd = newListCmd(flavorDiff)

func newListCmd(f flavor) *cobra.Command {
	return &cobra.Command{
		Use:   "list [file]",
		Short: "List the profiles of a file with the URLs they send to",
		Example: heredoc.Docf(`
			rdiff list
			rdiff list profiles.toml
			rdiff list --env-file .env %s
		`, f.defaultFile),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
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

			path := fileArg(args, f.defaultFile)
			cfg, err := f.load(path, opts...)
			if err != nil {
				return configError(err)
			}
			return formatter.FormatProfiles(path, f.summaries(cfg))
		},
	}
}
