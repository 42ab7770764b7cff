package utils

import (
	"os"
	"strings"
)

// EnvOrDefault returns the trimmed env value, or def when unset/blank.
func EnvOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

// EnvBool reads a boolean flag from the environment ("true"/"1"/"yes").
func EnvBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}
