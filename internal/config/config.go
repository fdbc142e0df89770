package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Transport selects how notification email leaves the process.
const (
	TransportAPI  = "api"
	TransportSMTP = "smtp"
)

type Config struct {
	Port    string
	BaseURL string

	DatabaseURL        string
	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseServiceKey string
	StorageBucket      string

	MailTransport string
	BrevoAPIKey   string
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPass      string
	MailFrom      string
	MailFromName  string
	NotifyEmail   string
	NotifyName    string

	AdminEmail string
	AuthSecret string

	AMQPURL       string // optional, disables the sync worker when empty
	CRMWebhookURL string
	CRMToken      string

	CORSOrigins []string

	LogLevel  string
	LogFormat string
}

// Load reads .env plus the environment and verifies every required value up
// front: a missing credential aborts startup instead of failing at first use.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		BaseURL:            getEnv("BASE_URL", "http://localhost:8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:    os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),
		StorageBucket:      getEnv("STORAGE_BUCKET", "brief-attachments"),
		MailTransport:      getEnv("MAIL_TRANSPORT", TransportAPI),
		BrevoAPIKey:        os.Getenv("BREVO_API_KEY"),
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPPort:           getEnvInt("SMTP_PORT", 587),
		SMTPUser:           os.Getenv("SMTP_USER"),
		SMTPPass:           os.Getenv("SMTP_PASS"),
		MailFrom:           os.Getenv("MAIL_FROM"),
		MailFromName:       getEnv("MAIL_FROM_NAME", "Brief Bot"),
		NotifyEmail:        os.Getenv("NOTIFY_EMAIL"),
		NotifyName:         getEnv("NOTIFY_NAME", ""),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		AuthSecret:         os.Getenv("AUTH_SECRET"),
		AMQPURL:            os.Getenv("AMQP_URL"),
		CRMWebhookURL:      os.Getenv("CRM_WEBHOOK_URL"),
		CRMToken:           os.Getenv("CRM_TOKEN"),
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "*")),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "console"),
	}

	if cfg.NotifyEmail == "" {
		cfg.NotifyEmail = cfg.AdminEmail
	}

	var missing []string
	require := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}

	require("DATABASE_URL", cfg.DatabaseURL)
	require("SUPABASE_URL", cfg.SupabaseURL)
	require("SUPABASE_ANON_KEY", cfg.SupabaseAnonKey)
	require("SUPABASE_SERVICE_KEY", cfg.SupabaseServiceKey)
	require("MAIL_FROM", cfg.MailFrom)
	require("ADMIN_EMAIL", cfg.AdminEmail)
	require("AUTH_SECRET", cfg.AuthSecret)

	switch cfg.MailTransport {
	case TransportAPI:
		require("BREVO_API_KEY", cfg.BrevoAPIKey)
	case TransportSMTP:
		require("SMTP_HOST", cfg.SMTPHost)
		require("SMTP_USER", cfg.SMTPUser)
		require("SMTP_PASS", cfg.SMTPPass)
	default:
		return nil, fmt.Errorf("MAIL_TRANSPORT must be %q or %q, got %q", TransportAPI, TransportSMTP, cfg.MailTransport)
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
