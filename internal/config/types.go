package config

// AppConfig holds runtime startup configuration loaded from YAML and the environment.
type AppConfig struct {
	Port           int                `yaml:"port"`
	SecretKey      string             `yaml:"secret_key"`
	Debug          bool               `yaml:"debug"`
	AllowedHosts   []string           `yaml:"allowed_hosts"`
	BaseURL        string             `yaml:"base_url"`
	DatabaseURL    string             `yaml:"database_url"`
	RedisURL       string             `yaml:"redis_url"`
	AllowedOrigins []string           `yaml:"allowed_origins"`
	Timezone       string             `yaml:"timezone"`
	Paths          RuntimePathsConfig `yaml:"paths"`
	Mail           MailConfig         `yaml:"mail"`
	Storage        StorageConfig      `yaml:"storage"`
	Admin          AdminBootstrap     `yaml:"admin"`
}

type RuntimePathsConfig struct {
	Logs  string `yaml:"logs"`
	Media string `yaml:"media"`
}

// MailConfig configures contact notifications.
type MailConfig struct {
	Enable       bool         `yaml:"enable"`
	Provider     string       `yaml:"provider"` // smtp | resend
	From         string       `yaml:"from"`
	ContactEmail string       `yaml:"contact_email"`
	SMTP         SMTPConfig   `yaml:"smtp"`
	Resend       ResendConfig `yaml:"resend"`
}

type SMTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
}

type ResendConfig struct {
	APIKey string `yaml:"api_key"`
}

// StorageConfig selects the media blob backend.
type StorageConfig struct {
	Driver string   `yaml:"driver"` // fs | s3 | memory
	S3     S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PathStyle       bool   `yaml:"path_style"`
}

// AdminBootstrap seeds the first staff account when none exists.
type AdminBootstrap struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}
