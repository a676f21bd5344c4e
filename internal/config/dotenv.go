package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const maxEnvSearchDepth = 6

// LoadDotEnv loads the nearest .env found walking up from the working directory.
// Variables already present in the environment win. It returns the loaded path,
// or "" when no file was found.
func LoadDotEnv() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	path := findEnvFile(dir)
	if path == "" {
		return "", nil
	}
	if err := godotenv.Load(path); err != nil {
		return path, err
	}
	return path, nil
}

func findEnvFile(dir string) string {
	for i := 0; i < maxEnvSearchDepth; i++ {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
