// Package env reads settings from a snapshot of environment variables.
package env

import (
	"strconv"
	"strings"
)

// Parse converts `KEY=value` pairs, as returned by os.Environ, into a map.
func Parse(environ []string) map[string]string {
	vars := make(map[string]string, len(environ))

	for _, pair := range environ {
		if key, val, ok := strings.Cut(pair, "="); ok && key != "" {
			vars[key] = val
		}
	}

	return vars
}

// GetBoolEnv returns the value converted to boolean type, or the fallback value if the variable is not present or not a boolean.
func GetBoolEnv(vars map[string]string, key string, fallback bool) bool {
	if strVal, ok := LookupEnv(vars, key); ok {
		if val, err := strconv.ParseBool(strVal); err == nil {
			return val
		}
	}

	return fallback
}

// GetStringEnv returns the value of the variable, or the fallback value if the variable is not present.
func GetStringEnv(vars map[string]string, key string, fallback string) string {
	if val, ok := LookupEnv(vars, key); ok {
		return val
	}

	return fallback
}

// LookupEnv returns the value of the variable with surrounding spaces trimmed. Empty values count as not present.
func LookupEnv(vars map[string]string, key string) (string, bool) {
	if key == "" {
		return "", false
	}

	val := strings.TrimSpace(vars[key])

	return val, val != ""
}
