package cmd

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/rdiff/packages/import/curl"
)

var importOutFileFlag string

var importCmd = &cobra.Command{
	Use:   "import <format> <source>",
	Short: "Convert requests from other tools into profiles",
	Long: heredoc.Doc(`
		Convert requests written for other tools into request profiles.

		Supported formats:
		  curl - a file of curl commands, one per line, with backslash
		         continuations and # comments
	`),
}

var importCurlCmd = &cobra.Command{
	Use:   "curl <file>",
	Short: "Import a file of curl commands as request profiles",
	Long: heredoc.Doc(`
		Read curl commands and print them as an xreq document. Profile names
		are derived from the method and URL path; repeated names get a numeric
		suffix.

		Query strings become params, -d data becomes a JSON or form body
		depending on the Content-Type, -G moves the data into params and -u
		becomes a Basic Authorization header.
	`),
	Example: heredoc.Doc(`
		rdiff import curl requests.sh
		rdiff import curl requests.sh --out-file xreq.yaml
	`),
	Args: cobra.ExactArgs(1),
	RunE: importCurlCommand,
}

func init() {
	importCurlCmd.Flags().StringVar(&importOutFileFlag, "out-file", "", "Write the document to a file instead of stdout")
	importCmd.AddCommand(importCurlCmd)
}

func importCurlCommand(cmd *cobra.Command, args []string) error {
	cfg, err := curl.ConvertFile(args[0])
	if err != nil {
		return configError(err)
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	if importOutFileFlag == "" {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		formatter, err := newFormatter(cmd, settings)
		if err != nil {
			return err
		}
		return formatter.FormatDocument(data)
	}

	if err := os.WriteFile(importOutFileFlag, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Imported %d profiles to %s\n", len(cfg.Names()), importOutFileFlag)
	return nil
}
