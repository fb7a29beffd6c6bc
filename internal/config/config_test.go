package config

import (
	"os"
	"testing"
)

func TestNewReadsEnvironmentAtCallTime(t *testing.T) {
	// Values set just before New, as godotenv does in main, must be seen.
	t.Setenv("MONGO_URI", "mongodb://localhost:27017/portal")
	t.Setenv("PORT", "9999")
	t.Setenv("JWT_SECRET", "file-secret")

	cfg := New()

	if cfg.MongoURI != "mongodb://localhost:27017/portal" {
		t.Errorf("got MongoURI %q, want the value set before New", cfg.MongoURI)
	}
	if cfg.Port != "9999" {
		t.Errorf("got Port %q, want %q", cfg.Port, "9999")
	}
	if cfg.JWTSecret != "file-secret" {
		t.Errorf("got JWTSecret %q, want %q", cfg.JWTSecret, "file-secret")
	}
}

func TestNewFallbacks(t *testing.T) {
	for _, key := range []string{"PORT", "PORTAL_MONGO_DB", "RABBITMQ_EXCHANGE", "TOKEN_EXPIRY_TIME"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := New()

	if cfg.Port != "7700" {
		t.Errorf("got default Port %q, want %q", cfg.Port, "7700")
	}
	if cfg.MongoDatabase != "escape_portal" {
		t.Errorf("got default MongoDatabase %q, want %q", cfg.MongoDatabase, "escape_portal")
	}
	if cfg.RabbitExchange != "portal.events" {
		t.Errorf("got default RabbitExchange %q, want %q", cfg.RabbitExchange, "portal.events")
	}
	if cfg.JWTExpiryHours != 24 {
		t.Errorf("got default expiry %d, want 24", cfg.JWTExpiryHours)
	}
}
