// Package config provides shared configuration utilities.
package config

import (
	"os"
	"strconv"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt is GetEnv for integers. Unparsable values yield fallback and ok=false.
func GetEnvInt(key string, fallback int64) (value int64, ok bool) {
	raw, set := os.LookupEnv(key)
	if !set {
		return fallback, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback, false
	}
	return v, true
}

// GetEnvBool is GetEnv for on/off switches. Unparsable values yield fallback.
func GetEnvBool(key string, fallback bool) bool {
	raw, set := os.LookupEnv(key)
	if !set {
		return fallback
	}
	switch raw {
	case "on", "yes":
		return true
	case "off", "no":
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}
