package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML config at configPath, then applies environment overrides.
// A missing file at the default path is not an error so env-only deployments work.
func Load(configPath string) (*AppConfig, error) {
	return load(configPath, os.LookupEnv)
}

func load(configPath string, lookup func(string) (string, bool)) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && path == DefaultConfigPath:
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return nil, err
	}
	normalize(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port:           defaultPort,
		BaseURL:        defaultBaseURL,
		DatabaseURL:    defaultDatabaseURL,
		AllowedOrigins: append([]string(nil), defaultAllowedOrigins...),
		Timezone:       defaultTimezone,
		Mail: MailConfig{
			Provider: defaultMailProvider,
			SMTP:     SMTPConfig{Port: defaultSMTPPort},
		},
		Storage: StorageConfig{
			Driver: defaultStorageDriver,
			S3:     S3Config{Region: defaultS3Region},
		},
	}
}

func validate(cfg *AppConfig) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	switch cfg.Storage.Driver {
	case StorageFS, StorageMemory:
	case StorageS3:
		if cfg.Storage.S3.Bucket == "" {
			return errors.New("storage.s3.bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", cfg.Storage.Driver)
	}
	switch cfg.Mail.Provider {
	case MailProviderSMTP, MailProviderResend:
	default:
		return fmt.Errorf("unknown mail.provider %q", cfg.Mail.Provider)
	}
	if _, _, err := ParseDatabaseURL(cfg.DatabaseURL); err != nil {
		return err
	}
	if !cfg.Debug && len(cfg.SecretKey) < minSecretKeyLength {
		return fmt.Errorf("secret_key must be at least %d characters when debug is off", minSecretKeyLength)
	}
	return nil
}

// IsDev reports whether debug mode is on.
func (c *AppConfig) IsDev() bool { return c.Debug }

// LogDir returns the resolved log directory.
func (c *AppConfig) LogDir() string {
	if c == nil {
		return ResolveRuntimePath("", "logs")
	}
	return ResolveRuntimePath(c.Paths.Logs, "logs")
}

// MediaDir returns the resolved media directory used by the fs storage driver.
func (c *AppConfig) MediaDir() string {
	if c == nil {
		return ResolveRuntimePath("", "media")
	}
	return ResolveRuntimePath(c.Paths.Media, "media")
}
