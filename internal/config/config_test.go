package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.DBPath == "" {
		t.Error("DBPath not defaulted")
	}
	if cfg.JWTTTL != 12*time.Hour {
		t.Errorf("JWTTTL = %v, want 12h", cfg.JWTTTL)
	}
	if cfg.ReceiptWidth != 42 {
		t.Errorf("ReceiptWidth = %d, want 42", cfg.ReceiptWidth)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("POS_ADDR", ":9090")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("RECEIPT_WIDTH", "32")

	cfg := Load()
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Addr)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.JWTTTL != 30*time.Minute {
		t.Errorf("JWTTTL = %v, want 30m", cfg.JWTTTL)
	}
	if cfg.ReceiptWidth != 32 {
		t.Errorf("ReceiptWidth = %d, want 32", cfg.ReceiptWidth)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("JWT_TTL", "not-a-duration")
	t.Setenv("RECEIPT_WIDTH", "wide")

	cfg := Load()
	if cfg.JWTTTL != 12*time.Hour {
		t.Errorf("Malformed JWT_TTL not ignored: %v", cfg.JWTTTL)
	}
	if cfg.ReceiptWidth != 42 {
		t.Errorf("Malformed RECEIPT_WIDTH not ignored: %d", cfg.ReceiptWidth)
	}
}
