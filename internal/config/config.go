// Package config loads terminal configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

// DefaultAdminPIN is hashed at startup when no ADMIN_PIN_HASH is
// configured. Change the PIN on any real terminal.
const DefaultAdminPIN = "1234"

// Config holds all configuration for the POS terminal.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// DBPath is the SQLite database file.
	DBPath string

	// AdminPINHash is the bcrypt hash of the admin PIN. Empty means the
	// default PIN is hashed at startup.
	AdminPINHash string

	// JWTSecret signs admin session tokens.
	JWTSecret string

	// JWTTTL is how long an admin unlock lasts.
	JWTTTL time.Duration

	// ReceiptWidth is the printable column count of the receipt printer.
	ReceiptWidth int
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() *Config {
	return &Config{
		Addr:         getEnv("POS_ADDR", ":8080"),
		DBPath:       getEnv("DB_PATH", "./data/hotelpos.db"),
		AdminPINHash: getEnv("ADMIN_PIN_HASH", ""),
		JWTSecret:    getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTTTL:       getDuration("JWT_TTL", 12*time.Hour),
		ReceiptWidth: getInt("RECEIPT_WIDTH", 42),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
