package game

import (
	"flag"
	"io"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("game", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8090 {
		t.Fatalf("expected default port 8090, got %d", cfg.Port)
	}
	if cfg.Addr != "" {
		t.Fatalf("expected empty addr, got %q", cfg.Addr)
	}
	if cfg.DefaultCap != 9 {
		t.Fatalf("expected default cap 9, got %d", cfg.DefaultCap)
	}
	if !cfg.MetricsEnabled {
		t.Fatal("expected metrics enabled by default")
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("game", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-port", "9001", "-addr", "127.0.0.1:9999", "-cap", "5", "-metrics=false"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9001 {
		t.Fatalf("expected port 9001, got %d", cfg.Port)
	}
	if cfg.Addr != "127.0.0.1:9999" {
		t.Fatalf("expected addr override, got %q", cfg.Addr)
	}
	if cfg.DefaultCap != 5 {
		t.Fatalf("expected cap 5, got %d", cfg.DefaultCap)
	}
	if cfg.MetricsEnabled {
		t.Fatal("expected metrics disabled")
	}
}

func TestParseConfigClampsCapFromEnv(t *testing.T) {
	t.Setenv("ABACUS_DEFAULT_CAP", "42")

	cfg, err := ParseConfig(flag.NewFlagSet("game", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DefaultCap != 9 {
		t.Fatalf("expected clamped cap 9, got %d", cfg.DefaultCap)
	}
}

func TestServerConfig(t *testing.T) {
	cfg := Config{Port: 1, Addr: "127.0.0.1:0", DefaultCap: 4, MetricsEnabled: false}
	got := cfg.ServerConfig()
	if got.Addr != cfg.Addr || got.Port != 1 || got.API.DefaultCap != 4 {
		t.Fatalf("server config = %+v", got)
	}
	if got.API.Metrics != nil {
		t.Fatal("expected nil metrics when disabled")
	}
	if cfg.MetricsEnabled = true; cfg.ServerConfig().API.Metrics == nil {
		t.Fatal("expected metrics when enabled")
	}
}

func TestParseConfigRejectsUnknownFlag(t *testing.T) {
	fs := flag.NewFlagSet("game", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if _, err := ParseConfig(fs, []string{"-nope"}); err == nil {
		t.Fatal("expected unknown flag error")
	}
}
