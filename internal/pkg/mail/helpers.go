package mail

import (
	"github.com/portfolio-space/core/internal/config"
)

// BuildMailConfig constructs a mail.Config from the application config.
func BuildMailConfig(cfg *config.AppConfig) Config {
	if cfg == nil {
		return Config{}
	}
	mc := Config{
		Enable: cfg.Mail.Enable,
		From:   cfg.Mail.From,
		Host:   cfg.Mail.SMTP.Host,
		Port:   cfg.Mail.SMTP.Port,
		User:   cfg.Mail.SMTP.User,
		Pass:   cfg.Mail.SMTP.Pass,
	}
	if cfg.Mail.Provider == config.MailProviderResend && cfg.Mail.Resend.APIKey != "" {
		mc.UseResend = true
		mc.ResendKey = cfg.Mail.Resend.APIKey
	}
	return mc
}
