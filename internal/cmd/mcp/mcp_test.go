package mcp

import (
	"flag"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "localhost:8091" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport stdio, got %q", cfg.Transport)
	}
	if cfg.DefaultCap != 9 {
		t.Fatalf("expected default cap 9, got %d", cfg.DefaultCap)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("ABACUS_MCP_HTTP_ADDR", "env-http")
	t.Setenv("ABACUS_MCP_ALLOWED_HOSTS", "abacus.example,tutor.example")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	args := []string{"-http-addr", "flag-http", "-transport", " HTTP ", "-cap", "0"}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "flag-http" {
		t.Fatalf("expected flag http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected transport http, got %q", cfg.Transport)
	}
	if cfg.DefaultCap != 1 {
		t.Fatalf("expected clamped cap 1, got %d", cfg.DefaultCap)
	}
	if diff := cmp.Diff([]string{"abacus.example", "tutor.example"}, cfg.AllowedHosts); diff != "" {
		t.Fatalf("allowed hosts mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfigRejectsUnknownTransport(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-transport", "websocket"}); err == nil {
		t.Fatal("expected error for unknown transport")
	}
}

func TestServiceConfig(t *testing.T) {
	cfg := Config{Transport: "http", HTTPAddr: "localhost:1", DefaultCap: 4, AllowedHosts: []string{"a"}}
	svc := cfg.ServiceConfig()
	if svc.Transport != "http" || svc.HTTPAddr != "localhost:1" || svc.Deps.DefaultCap != 4 {
		t.Fatalf("service config = %+v", svc)
	}
	if svc.Logger == nil {
		t.Fatal("expected logger")
	}
}
