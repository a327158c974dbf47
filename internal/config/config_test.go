package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTTL(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"7d", 7 * 24 * 60 * 60},
		{"24h", 24 * 60 * 60},
		{"30m", 30 * 60},
		{"45s", 45},
		{"604800", 604800},
		{" 1d ", 24 * 60 * 60},
		{"", defaultTTLSeconds},
		{"soon", defaultTTLSeconds},
		{"0", defaultTTLSeconds},
		{"-5d", defaultTTLSeconds},
		{"7 d", defaultTTLSeconds},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTTL(tt.in))
		})
	}
}

func TestMailConfigured(t *testing.T) {
	cfg := Config{SMTPHost: "smtp.example.org", SMTPFrom: "noreply@example.org", PrayerRecipient: "prayer@example.org"}
	assert.True(t, cfg.MailConfigured())

	assert.False(t, Config{SMTPFrom: "a@b.c", PrayerRecipient: "d@e.f"}.MailConfigured())
	assert.False(t, Config{SMTPHost: "smtp.example.org", PrayerRecipient: "d@e.f"}.MailConfigured())
	assert.False(t, Config{SMTPHost: "smtp.example.org", SMTPFrom: "a@b.c"}.MailConfigured())
	assert.False(t, Config{}.MailConfigured())
}

func TestParseCSV(t *testing.T) {
	assert.Nil(t, parseCSV(""))
	assert.Nil(t, parseCSV("   "))
	assert.Equal(t, []string{"https://a.org"}, parseCSV("https://a.org"))
	assert.Equal(t, []string{"https://a.org", "https://b.org"}, parseCSV(" https://a.org , https://b.org ,"))
}
