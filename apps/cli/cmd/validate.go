package cmd

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/rdiff/packages/core/profile"
)

var validateCmd = newValidateCmd(flavorDiff)

func newValidateCmd(f flavor) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a profile file without sending any request",
		Long: heredoc.Docf(`
			Check every profile of a file against the document schema and the
			request rules. All problems are reported, not only the first.

			The file defaults to %s.
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
			count, errs := validateFile(f, path, opts)
			if err := formatter.FormatValidation(path, count, errs); err != nil {
				return err
			}
			if len(errs) > 0 {
				return &exitError{code: ExitConfigError}
			}
			return nil
		},
	}
}

// validateFile loads path with full validation. When that fails on the
// typed rules, the file is loaded again unchecked so every failing profile
// is reported instead of the first one.
func validateFile(f flavor, path string, opts []profile.LoadOption) (int, []error) {
	cfg, err := f.load(path, opts...)
	if err == nil {
		return len(cfg.Names()), nil
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return 0, joined.Unwrap()
	}

	unchecked, uerr := f.load(path, append(opts, profile.WithoutValidation())...)
	if uerr != nil {
		return 0, []error{err}
	}
	errs := unchecked.ValidateAll()
	if len(errs) == 0 {
		errs = []error{err}
	}
	return len(unchecked.Names()), errs
}
