package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 30000, cfg.Timeout)
	assert.True(t, cfg.GetFollowRedirects())
	assert.True(t, cfg.GetValidateSSL())
	assert.False(t, cfg.GetNoColor())
	assert.Equal(t, 3, cfg.Context)
	assert.Equal(t, 80, cfg.Width)
	assert.True(t, cfg.IsDefault())
}

func TestGetters_NilPointers(t *testing.T) {
	cfg := &Config{}

	assert.True(t, cfg.GetFollowRedirects())
	assert.True(t, cfg.GetValidateSSL())
	assert.False(t, cfg.GetNoColor())
	assert.Equal(t, time.Duration(0), cfg.GetTimeout())
}

func TestFindAndLoadConfig(t *testing.T) {
	t.Run("no file returns defaults", func(t *testing.T) {
		cfg, err := FindAndLoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.True(t, cfg.IsDefault())
	})

	t.Run("reads first matching file", func(t *testing.T) {
		dir := t.TempDir()
		content := `{"timeout": 5000, "validateSSL": false, "headers": {"User-Agent": "rdiff"}, "theme": "github"}`
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".rdiffrc"), []byte(content), 0644))

		cfg, err := FindAndLoadConfig(dir)
		require.NoError(t, err)

		assert.Equal(t, 5*time.Second, cfg.GetTimeout())
		assert.False(t, cfg.GetValidateSSL())
		assert.True(t, cfg.GetFollowRedirects())
		assert.Equal(t, "github", cfg.Theme)
		assert.Equal(t, []string{"User-Agent"}, cfg.HeaderNames())
		assert.Equal(t, 3, cfg.Context)
	})

	t.Run("invalid json", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "rdiff.config.json"), []byte(`{`), 0644))

		_, err := FindAndLoadConfig(dir)
		assert.Error(t, err)
	})

	t.Run("negative values", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "rdiff.config.json"), []byte(`{"context": -1}`), 0644))

		_, err := FindAndLoadConfig(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "context must not be negative")
	})
}

func TestLoadConfig_ExplicitPathMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	base.Headers = map[string]string{"Accept": "application/json"}

	merged := base.Merge(&Config{
		Timeout:         1000,
		FollowRedirects: BoolPtr(false),
		Headers:         map[string]string{"User-Agent": "rdiff"},
		Context:         5,
	})

	assert.Equal(t, 1000, merged.Timeout)
	assert.False(t, merged.GetFollowRedirects())
	assert.True(t, merged.GetValidateSSL())
	assert.Equal(t, 5, merged.Context)
	assert.Equal(t, 80, merged.Width)
	assert.Equal(t, []string{"Accept", "User-Agent"}, merged.HeaderNames())

	assert.Len(t, base.Headers, 1, "merge must not mutate the receiver")
	assert.Same(t, base, base.Merge(nil))
}

func TestRunnerConfig(t *testing.T) {
	cfg := DefaultConfig().Merge(&Config{ValidateSSL: BoolPtr(false), Proxy: "http://proxy:8080"})

	rc := cfg.RunnerConfig()
	assert.Equal(t, 30*time.Second, rc.Timeout)
	assert.True(t, rc.FollowRedirect)
	assert.True(t, rc.Insecure)
	assert.Equal(t, "http://proxy:8080", rc.Proxy)
	assert.Equal(t, 10, rc.MaxRedirects)
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rdiff.config.json")
	cfg := DefaultConfig()
	cfg.Theme = "dracula"

	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "dracula", loaded.Theme)
	assert.False(t, loaded.IsDefault())
}
