package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DotEnvCandidates returns the env files consulted for appEnv, most specific first
func DotEnvCandidates(dir, appEnv string) []string {
	var names []string
	if appEnv != "" {
		names = append(names, ".env."+appEnv+".local", ".env."+appEnv)
	}
	names = append(names, ".env.local", ".env")

	paths := make([]string, 0, len(names))
	for _, n := range names {
		paths = append(paths, filepath.Join(dir, n))
	}
	return paths
}

// LoadDotEnv loads the existing candidates from dir. Variables already present in
// the process environment are never overwritten, and earlier files win over later ones.
// Returns the files actually loaded.
func LoadDotEnv(dir, appEnv string) []string {
	var loaded []string
	for _, f := range DotEnvCandidates(dir, appEnv) {
		if _, err := os.Stat(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}
