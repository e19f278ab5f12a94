package config

import (
	"os"
	"sync"
)

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

var (
	smtpConfig *SMTPConfig
	smtpOnce   sync.Once
)

func LoadSMTPConfig() *SMTPConfig {
	smtpOnce.Do(func() {
		cfg := &SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     os.Getenv("SMTP_PORT"),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		}
		if cfg.Port == "" {
			cfg.Port = "587"
		}
		if cfg.From == "" {
			cfg.From = cfg.User
		}
		smtpConfig = cfg
	})
	return smtpConfig
}

// Configured reports whether enough is set to attempt delivery. Email is
// best-effort everywhere, so an unconfigured SMTP is not an error.
func (c *SMTPConfig) Configured() bool {
	return c.Host != "" && c.From != ""
}
