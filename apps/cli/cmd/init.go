package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/rdiff/packages/core/config"
	"github.com/abdul-hamid-achik/rdiff/packages/core/profile"
	"github.com/abdul-hamid-achik/rdiff/packages/http"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create example profile files",
	Long: heredoc.Doc(`
		Create example files in the current directory:

		  rdiff.yaml          a diff profile comparing two todos
		  xreq.yaml           a request profile fetching one todo
		  .rdiff.config.json  settings with the default values

		Response headers are compared in canonical form and sorted by name,
		so skip_headers entries must be spelled the same way, e.g.
		Content-Length rather than content-length.
	`),
	Example: heredoc.Doc(`
		rdiff init
		rdiff init --force
	`),
	Args: cobra.NoArgs,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

func exampleDiffConfig() *profile.DiffConfig {
	headers := http.Headers{{Name: "Accept", Value: profile.MediaJSON}}
	return profile.NewDiffConfig(map[string]*profile.DiffProfile{
		"todo": profile.NewDiffProfile(
			profile.NewRequestProfile("GET", "https://jsonplaceholder.typicode.com/todos/1", nil, headers, nil),
			profile.NewRequestProfile("GET", "https://jsonplaceholder.typicode.com/todos/2", nil, headers.Clone(), nil),
			profile.NewResponseProfile([]string{"Date", "Age", "Cf-Ray", "Report-To", "Nel", "Etag"}, []string{"id"}),
		),
	})
}

func exampleRequestConfig() *profile.RequestConfig {
	todo := profile.NewRequestProfile("GET", "https://jsonplaceholder.typicode.com/todos", map[string]any{"id": "1"}, nil, nil)
	post := profile.NewRequestProfile("POST", "https://jsonplaceholder.typicode.com/posts", nil,
		http.Headers{{Name: "Content-Type", Value: profile.MediaJSON}},
		map[string]any{"title": "foo", "body": "bar", "userId": "1"})

	return profile.NewRequestConfig(map[string]*profile.RequestProfile{
		"todo":        todo,
		"create_post": post,
	})
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	diffFile := filepath.Join(cwd, profile.DefaultDiffFile)
	requestFile := filepath.Join(cwd, profile.DefaultRequestFile)
	settingsFile := filepath.Join(cwd, ".rdiff.config.json")

	if !forceInit {
		for _, f := range []string{diffFile, requestFile, settingsFile} {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", f)
			}
		}
	}

	docs := []struct {
		path string
		cfg  profileFile
	}{
		{diffFile, exampleDiffConfig()},
		{requestFile, exampleRequestConfig()},
	}
	for _, doc := range docs {
		data, err := doc.cfg.Marshal()
		if err != nil {
			return err
		}
		if err := os.WriteFile(doc.path, data, 0644); err != nil {
			return fmt.Errorf("failed to create %s: %w", doc.path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", doc.path)
	}

	if err := config.DefaultConfig().SaveConfig(settingsFile); err != nil {
		return fmt.Errorf("failed to create settings file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", settingsFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\nTry 'rdiff run -p todo' or 'rdiff xreq run -p todo'.\n")
	return nil
}
