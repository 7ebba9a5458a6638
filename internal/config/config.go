package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the contact gateway.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	CORS      CORSConfig      `yaml:"cors"`
	Mail      MailConfig      `yaml:"mail"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Contact   ContactConfig   `yaml:"contact"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// GetHost returns the server host, with container detection
func (c ServerConfig) GetHost() string {
	// On ECS/container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	// Allow override via environment
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// CORSConfig holds the browser origin allow-list.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// MailConfig holds notification delivery configuration.
// Provider selects the transport: "ses", "smtp" or "log".
type MailConfig struct {
	Provider       string     `yaml:"provider"`
	From           string     `yaml:"from"`
	FromName       string     `yaml:"from_name"`
	To             string     `yaml:"to"`
	TimeoutSeconds int        `yaml:"timeout_seconds"`
	SES            SESConfig  `yaml:"ses"`
	SMTP           SMTPConfig `yaml:"smtp"`
}

// Timeout returns the configured send timeout as a duration
func (c MailConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SESConfig holds AWS SES API configuration
type SESConfig struct {
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

// SMTPConfig holds SMTP relay configuration.
// Encryption is one of "starttls", "tls" or "none".
type SMTPConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	Encryption string `yaml:"encryption"`
}

// RateLimitConfig holds submission cool-down configuration.
// Backend selects the store: "memory", "redis" or "file".
type RateLimitConfig struct {
	Backend       string `yaml:"backend"`
	WindowSeconds int    `yaml:"window_seconds"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	Dir           string `yaml:"dir"`
}

// Window returns the cool-down window as a duration
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// ContactConfig holds form validation and notification template settings.
type ContactConfig struct {
	BlockedDomains   []string `yaml:"blocked_domains"`
	SubjectTemplate  string   `yaml:"subject_template"`
	BodyTemplateFile string   `yaml:"body_template_file"`
}

// DefaultBlockedDomains is the consumer email provider block-list used
// when no override is configured.
var DefaultBlockedDomains = []string{
	"gmail.com",
	"yahoo.com",
	"hotmail.com",
	"outlook.com",
	"aol.com",
	"mail.com",
	"protonmail.com",
	"icloud.com",
}

// Load reads and parses the configuration file. A missing file is not an
// error: the gateway can run on defaults plus environment overrides,
// which is how it deploys next to the static site.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{
			"http://localhost:5173",
			"http://localhost:3000",
			"https://metics.io",
			"https://www.metics.io",
		}
	}
	if cfg.Mail.Provider == "" {
		cfg.Mail.Provider = "smtp"
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = "noreply@oxmics.com"
	}
	if cfg.Mail.FromName == "" {
		cfg.Mail.FromName = "Metics Website"
	}
	if cfg.Mail.To == "" {
		cfg.Mail.To = "shabeeh@oxmics.com"
	}
	if cfg.Mail.TimeoutSeconds == 0 {
		cfg.Mail.TimeoutSeconds = 15
	}
	if cfg.Mail.SES.Region == "" {
		cfg.Mail.SES.Region = "us-west-2"
	}
	if cfg.Mail.SMTP.Port == 0 {
		cfg.Mail.SMTP.Port = 587
	}
	if cfg.Mail.SMTP.Encryption == "" {
		cfg.Mail.SMTP.Encryption = "starttls"
	}
	if cfg.RateLimit.Backend == "" {
		cfg.RateLimit.Backend = "memory"
	}
	if cfg.RateLimit.WindowSeconds == 0 {
		cfg.RateLimit.WindowSeconds = 30
	}
	if cfg.RateLimit.RedisAddr == "" {
		cfg.RateLimit.RedisAddr = "localhost:6379"
	}
	if cfg.RateLimit.Dir == "" {
		cfg.RateLimit.Dir = filepath.Join(os.TempDir(), "metics_rate_limit")
	}
	if len(cfg.Contact.BlockedDomains) == 0 {
		cfg.Contact.BlockedDomains = append([]string(nil), DefaultBlockedDomains...)
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars in production.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("MAIL_PROVIDER"); v != "" {
		cfg.Mail.Provider = v
	}
	if v := os.Getenv("MAIL_FROM"); v != "" {
		cfg.Mail.From = v
	}
	if v := os.Getenv("MAIL_FROM_NAME"); v != "" {
		cfg.Mail.FromName = v
	}
	if v := os.Getenv("MAIL_TO"); v != "" {
		cfg.Mail.To = v
	}
	if v := os.Getenv("AWS_SES_ACCESS_KEY"); v != "" {
		cfg.Mail.SES.AccessKey = v
	}
	if v := os.Getenv("AWS_SES_SECRET_KEY"); v != "" {
		cfg.Mail.SES.SecretKey = v
	}
	if v := os.Getenv("AWS_SES_REGION"); v != "" {
		cfg.Mail.SES.Region = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.Mail.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Mail.SMTP.Port = port
		}
	}
	if v := os.Getenv("SMTP_USERNAME"); v != "" {
		cfg.Mail.SMTP.Username = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Mail.SMTP.Password = v
	}
	if v := os.Getenv("SMTP_ENCRYPTION"); v != "" {
		cfg.Mail.SMTP.Encryption = v
	}
	if v := os.Getenv("RATE_LIMIT_BACKEND"); v != "" {
		cfg.RateLimit.Backend = v
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.RateLimit.WindowSeconds = secs
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RateLimit.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RateLimit.RedisPassword = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORS.AllowedOrigins = splitAndTrim(v)
	}
	if v := os.Getenv("CONTACT_BLOCKED_DOMAINS"); v != "" {
		cfg.Contact.BlockedDomains = splitAndTrim(v)
	}

	return cfg, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
