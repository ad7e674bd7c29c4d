package config

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort          = 8000
	defaultBaseURL       = "http://localhost:8000"
	defaultDatabaseURL   = "sqlite://portfolio.db"
	defaultTimezone      = "Africa/Kampala"
	defaultStorageDriver = StorageFS
	defaultMailProvider  = MailProviderSMTP
	defaultSMTPPort      = 587
	defaultS3Region      = "us-east-1"
	minSecretKeyLength   = 8
)

var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}

// Mail providers.
const (
	MailProviderSMTP   = "smtp"
	MailProviderResend = "resend"
)

// Storage drivers.
const (
	StorageFS     = "fs"
	StorageS3     = "s3"
	StorageMemory = "memory"
)
