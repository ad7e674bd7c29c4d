package config

import "strings"

func normalize(cfg *AppConfig) {
	cfg.SecretKey = strings.TrimSpace(cfg.SecretKey)
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = defaultDatabaseURL
	}
	cfg.RedisURL = strings.TrimSpace(cfg.RedisURL)
	cfg.AllowedHosts = normalizeList(cfg.AllowedHosts, true)
	cfg.AllowedOrigins = normalizeList(cfg.AllowedOrigins, false)
	cfg.Timezone = strings.TrimSpace(cfg.Timezone)
	cfg.Paths.Logs = strings.TrimSpace(cfg.Paths.Logs)
	cfg.Paths.Media = strings.TrimSpace(cfg.Paths.Media)

	cfg.Mail.Provider = strings.ToLower(strings.TrimSpace(cfg.Mail.Provider))
	if cfg.Mail.Provider == "" {
		cfg.Mail.Provider = defaultMailProvider
	}
	if cfg.Mail.SMTP.Port == 0 {
		cfg.Mail.SMTP.Port = defaultSMTPPort
	}
	cfg.Mail.ContactEmail = strings.TrimSpace(cfg.Mail.ContactEmail)

	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = defaultStorageDriver
	}
	if strings.TrimSpace(cfg.Storage.S3.Region) == "" {
		cfg.Storage.S3.Region = defaultS3Region
	}
	cfg.Admin.Username = strings.TrimSpace(cfg.Admin.Username)
}

func normalizeList(items []string, lower bool) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if lower {
			trimmed = strings.ToLower(trimmed)
		}
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
