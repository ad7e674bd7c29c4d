package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/portfolio-space/core/internal/config"
)

// applyRuntimeSettings switches the process time zone when cfg.Timezone is set.
// Dates rendered on public pages and in feeds follow it.
func applyRuntimeSettings(cfg *config.AppConfig) error {
	name := strings.TrimSpace(cfg.Timezone)
	if name == "" {
		return nil
	}
	loc, err := loadZone(name)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", name, err)
	}
	time.Local = loc
	return os.Setenv("TZ", name)
}

// loadZone accepts an IANA name such as Africa/Nairobi, or a fixed "+03:00" offset.
func loadZone(name string) (*time.Location, error) {
	if loc, err := time.LoadLocation(name); err == nil {
		return loc, nil
	}
	if t, err := time.Parse("-07:00", name); err == nil {
		_, offset := t.Zone()
		return time.FixedZone(name, offset), nil
	}
	return nil, fmt.Errorf("want an IANA zone name or a UTC offset like +03:00")
}
