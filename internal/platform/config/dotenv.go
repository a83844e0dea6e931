package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads the env files that exist, in order, without overriding
// variables already set. It returns how many files were loaded.
func LoadDotEnv(files ...string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}
