// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/louisbranch/abacus/internal/abacus/placevalue"
	entrypoint "github.com/louisbranch/abacus/internal/platform/cmd"
	"github.com/louisbranch/abacus/internal/services/mcp/domain"
	mcpservice "github.com/louisbranch/abacus/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	HTTPAddr     string   `env:"ABACUS_MCP_HTTP_ADDR"     envDefault:"localhost:8091"`
	Transport    string   `env:"ABACUS_MCP_TRANSPORT"     envDefault:"stdio"`
	AllowedHosts []string `env:"ABACUS_MCP_ALLOWED_HOSTS" envSeparator:","`
	DefaultCap   int      `env:"ABACUS_DEFAULT_CAP"       envDefault:"9"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.IntVar(&cfg.DefaultCap, "cap", cfg.DefaultCap, "Default beads per rod (1-9)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	cfg.Transport = strings.ToLower(strings.TrimSpace(cfg.Transport))
	switch cfg.Transport {
	case mcpservice.TransportStdio, mcpservice.TransportHTTP:
	default:
		return Config{}, fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
	cfg.DefaultCap = placevalue.ClampCap(cfg.DefaultCap)
	return cfg, nil
}

// ServiceConfig translates command configuration into service configuration.
func (c Config) ServiceConfig() mcpservice.Config {
	return mcpservice.Config{
		Transport:    c.Transport,
		HTTPAddr:     c.HTTPAddr,
		AllowedHosts: c.AllowedHosts,
		Deps:         domain.Deps{DefaultCap: c.DefaultCap},
		Logger:       log.Default(),
	}
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return mcpservice.Run(ctx, cfg.ServiceConfig())
	})
}
