package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the YAML file.
const (
	EnvSecretKey    = "SECRET_KEY"
	EnvDebug        = "DEBUG"
	EnvAllowedHosts = "ALLOWED_HOSTS"
	EnvBaseURL      = "BASE_URL"
	EnvDatabaseURL  = "DATABASE_URL"
	EnvRedisURL     = "REDIS_URL"
	EnvPort         = "PORT"
)

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables already set are left alone. A missing file is ignored.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *AppConfig, lookup func(string) (string, bool)) error {
	if v, ok := lookupTrimmed(lookup, EnvSecretKey); ok {
		cfg.SecretKey = v
	}
	if v, ok := lookupTrimmed(lookup, EnvDebug); ok {
		cfg.Debug = parseBool(v)
	}
	if v, ok := lookupTrimmed(lookup, EnvAllowedHosts); ok {
		cfg.AllowedHosts = splitList(v)
	}
	if v, ok := lookupTrimmed(lookup, EnvBaseURL); ok {
		cfg.BaseURL = v
	}
	if v, ok := lookupTrimmed(lookup, EnvDatabaseURL); ok {
		cfg.DatabaseURL = v
	}
	if v, ok := lookupTrimmed(lookup, EnvRedisURL); ok {
		cfg.RedisURL = v
	}
	if v, ok := lookupTrimmed(lookup, EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		cfg.Port = port
	}
	return nil
}

func lookupTrimmed(lookup func(string) (string, bool), key string) (string, bool) {
	v, ok := lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
