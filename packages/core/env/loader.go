package env

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// DefaultEnvFile is read when it exists and no --env-file is given.
const DefaultEnvFile = ".env"

// LoadVariables reads dotenv files in order; later files override earlier
// ones. Missing files are an error only when listed explicitly.
func LoadVariables(files ...string) (map[string]any, error) {
	if len(files) == 0 {
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			return map[string]any{}, nil
		}
		files = []string{DefaultEnvFile}
	}

	sources := make([]map[string]any, 0, len(files))
	for _, path := range files {
		vars, err := LoadDotEnv(path)
		if err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{"path": path, "count": len(vars)}).Debug("loaded env file")
		src := make(map[string]any, len(vars))
		for k, v := range vars {
			src[k] = v
		}
		sources = append(sources, src)
	}
	return MergeVariables(sources...), nil
}

func MergeVariables(sources ...map[string]any) map[string]any {
	result := make(map[string]any)
	for _, src := range sources {
		for k, v := range src {
			result[k] = v
		}
	}
	return result
}

// LoadSystemEnv returns process environment variables whose name starts
// with prefix, with the prefix removed.
func LoadSystemEnv(prefix string) map[string]any {
	result := make(map[string]any)
	for _, e := range os.Environ() {
		key, value, found := strings.Cut(e, "=")
		if !found {
			continue
		}
		if prefix == "" {
			result[key] = value
		} else if len(key) > len(prefix) && strings.HasPrefix(key, prefix) {
			result[key[len(prefix):]] = value
		}
	}
	return result
}
