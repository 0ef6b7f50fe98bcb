package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/rdiff/packages/core/profile"
	"github.com/abdul-hamid-achik/rdiff/packages/errdefs"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"differences", &exitError{code: ExitDifferences}, ExitDifferences},
		{"profile not found", errdefs.NewProfileNotFoundError("todo", "rdiff.yaml"), ExitProfileNotFound},
		{"wrapped not found", configError(errdefs.NewProfileNotFoundError("todo", "rdiff.yaml")), ExitProfileNotFound},
		{"invalid override", errdefs.NewInvalidOverrideError("a", "missing '='"), ExitUsageError},
		{"transport", errdefs.NewRequestError("todo", "req2", errdefs.NewTransportError("GET", "http://x", false, errors.New("refused"))), ExitNetworkError},
		{"body decode", fmt.Errorf("reading: %w", errdefs.NewBodyDecodeError("application/json", errors.New("eof"))), ExitNetworkError},
		{"usage", usageError(errors.New("bad flag")), ExitUsageError},
		{"config", configError(errors.New("bad yaml")), ExitConfigError},
		{"unknown", errors.New("boom"), ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestExitError_Message(t *testing.T) {
	assert.Equal(t, "exit status 1", (&exitError{code: 1}).Error())
	assert.Equal(t, "bad", usageError(errors.New("bad")).Error())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateFile(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		path := writeFile(t, "rdiff.yaml", `
todo:
  req1:
    url: https://example.com/todos/1
  req2:
    url: https://example.com/todos/2
`)
		count, errs := validateFile(flavorDiff, path, nil)
		assert.Equal(t, 1, count)
		assert.Empty(t, errs)
	})

	t.Run("reports every failing profile", func(t *testing.T) {
		path := writeFile(t, "xreq.yaml", `
a:
  method: FETCH
  url: https://example.com
b:
  url: not a url
c:
  url: https://example.com
`)
		count, errs := validateFile(flavorRequest, path, nil)
		assert.Equal(t, 3, count)
		require.Len(t, errs, 2)

		var cve *errdefs.ConfigValidationError
		require.ErrorAs(t, errs[0], &cve)
		assert.Equal(t, "a", cve.Profile)
		require.ErrorAs(t, errs[1], &cve)
		assert.Equal(t, "b", cve.Profile)
	})

	t.Run("schema errors", func(t *testing.T) {
		path := writeFile(t, "xreq.yaml", `
a:
  url: https://example.com
  unknown: 1
`)
		_, errs := validateFile(flavorRequest, path, nil)
		assert.NotEmpty(t, errs)
	})

	t.Run("missing file", func(t *testing.T) {
		_, errs := validateFile(flavorDiff, filepath.Join(t.TempDir(), "nope.yaml"), nil)
		assert.Len(t, errs, 1)
	})
}

func TestFlavorSummaries(t *testing.T) {
	cfg := exampleDiffConfig()
	summaries := flavorDiff.summaries(cfg)
	require.Len(t, summaries, 1)
	assert.Equal(t, "todo", summaries[0].Name)
	assert.Equal(t, []string{
		"GET https://jsonplaceholder.typicode.com/todos/1",
		"GET https://jsonplaceholder.typicode.com/todos/2",
	}, summaries[0].URLs)

	summaries = flavorRequest.summaries(exampleRequestConfig())
	require.Len(t, summaries, 2)
	assert.Equal(t, "create_post", summaries[0].Name)
	assert.Equal(t, []string{"POST https://jsonplaceholder.typicode.com/posts"}, summaries[0].URLs)
	assert.Equal(t, []string{"GET https://jsonplaceholder.typicode.com/todos?id=1"}, summaries[1].URLs)
}

func TestExampleConfigs_RoundTrip(t *testing.T) {
	for _, f := range []struct {
		flavor flavor
		cfg    profileFile
	}{
		{flavorDiff, exampleDiffConfig()},
		{flavorRequest, exampleRequestConfig()},
	} {
		require.NoError(t, f.cfg.Validate())

		data, err := f.cfg.Marshal()
		require.NoError(t, err)

		path := writeFile(t, f.flavor.defaultFile, string(data))
		loaded, err := f.flavor.load(path)
		require.NoError(t, err)
		assert.Equal(t, f.cfg.Names(), loaded.Names())
	}
}

func TestFileArg(t *testing.T) {
	assert.Equal(t, profile.DefaultDiffFile, fileArg(nil, profile.DefaultDiffFile))
	assert.Equal(t, "x.toml", fileArg([]string{"x.toml"}, profile.DefaultDiffFile))
}
