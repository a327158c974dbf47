package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	DatabaseURL          string
	JWTSecret            string
	JWTIssuer            string
	TokenTTLSeconds      int64
	CorsOrigins          []string
	PrayerRecipient      string
	SMTPHost             string
	SMTPPort             int
	SMTPUser             string
	SMTPPassword         string
	SMTPFrom             string
	MetricsDiskPath      string
	MetricsSampleSeconds int
}

func Load() Config {
	return Config{
		DatabaseURL:          mustEnv("DATABASE_URL"),
		JWTSecret:            mustEnv("JWT_SECRET"),
		JWTIssuer:            envOr("JWT_ISSUER", "championsite"),
		TokenTTLSeconds:      ParseTTL(envOr("JWT_EXPIRES_IN", "7d")),
		CorsOrigins:          parseCSV(envOr("CORS_ORIGINS", "")),
		PrayerRecipient:      envOr("PRAYER_REQUEST_EMAIL", ""),
		SMTPHost:             envOr("SMTP_HOST", ""),
		SMTPPort:             envOrInt("SMTP_PORT", 587),
		SMTPUser:             envOr("SMTP_USER", ""),
		SMTPPassword:         envOr("SMTP_PASSWORD", ""),
		SMTPFrom:             envOr("SMTP_FROM", ""),
		MetricsDiskPath:      envOr("METRICS_DISK_PATH", "storage"),
		MetricsSampleSeconds: envOrInt("METRICS_SAMPLE_INTERVAL", 5),
	}
}

// MailConfigured reports whether the prayer-request relay can send mail.
func (c Config) MailConfigured() bool {
	return c.SMTPHost != "" && c.SMTPFrom != "" && c.PrayerRecipient != ""
}

const defaultTTLSeconds = 7 * 24 * 60 * 60

var ttlPattern = regexp.MustCompile(`^(\d+)([smhd])?$`)

// ParseTTL normalizes a token lifetime given either as raw seconds ("604800")
// or a short duration string ("7d", "24h", "30m"). Unparsable input falls back
// to seven days.
func ParseTTL(raw string) int64 {
	match := ttlPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return defaultTTLSeconds
	}
	value, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil || value <= 0 {
		return defaultTTLSeconds
	}
	switch match[2] {
	case "m":
		return value * 60
	case "h":
		return value * 60 * 60
	case "d":
		return value * 60 * 60 * 24
	default:
		return value
	}
}

func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		panic("missing env var: " + key)
	}
	return value
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
