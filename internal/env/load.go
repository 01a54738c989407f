// Package env reads process configuration from the environment, after an
// optional .env file has been loaded.
package env

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads a .env file from the working directory if there is one. It
// reports whether a file was loaded; a missing file is not an error.
func LoadEnv(files ...string) bool {
	return godotenv.Load(files...) == nil
}

// MustGetEnv returns the value of key or an error naming the missing variable.
func MustGetEnv(key string) (string, error) {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return "", fmt.Errorf("environment variable %s not set", key)
	}
	return val, nil
}

// GetEnv returns the value of key, or def when it is unset or empty.
func GetEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return def
}

// GetBool parses key as a boolean, falling back to def when it is unset or
// not a boolean.
func GetBool(key string, def bool) bool {
	b, err := strconv.ParseBool(GetEnv(key, ""))
	if err != nil {
		return def
	}
	return b
}

// GetDuration parses key as a time.Duration, falling back to def.
func GetDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(GetEnv(key, ""))
	if err != nil {
		return def
	}
	return d
}
