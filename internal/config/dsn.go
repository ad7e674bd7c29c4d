package config

import (
	"fmt"
	"strings"
)

// Database drivers selectable through database_url.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ParseDatabaseURL splits a database URL into its driver and the driver-specific target.
// For mysql and postgres the target is the full URL; for sqlite it is the file path or DSN.
func ParseDatabaseURL(raw string) (driver, target string, err error) {
	u := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(u, "mysql://"):
		return DriverMySQL, u, nil
	case strings.HasPrefix(u, "postgres://"), strings.HasPrefix(u, "postgresql://"):
		return DriverPostgres, u, nil
	case strings.HasPrefix(u, "sqlite://"):
		path := strings.TrimPrefix(u, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("database_url %q has no sqlite path", raw)
		}
		return DriverSQLite, path, nil
	case strings.HasPrefix(u, "file:"):
		return DriverSQLite, u, nil
	}
	return "", "", fmt.Errorf("unsupported database_url %q", raw)
}
