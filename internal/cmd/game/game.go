// Package game parses game command flags and starts the HTTP API.
package game

import (
	"context"
	"flag"
	"log"

	"github.com/louisbranch/abacus/internal/abacus/placevalue"
	entrypoint "github.com/louisbranch/abacus/internal/platform/cmd"
	"github.com/louisbranch/abacus/internal/platform/telemetry/metrics"
	httpapi "github.com/louisbranch/abacus/internal/services/game/api/http"
	server "github.com/louisbranch/abacus/internal/services/game/app"
)

// Config holds game command configuration.
type Config struct {
	Port           int    `env:"ABACUS_GAME_PORT" envDefault:"8090"`
	Addr           string `env:"ABACUS_GAME_ADDR"`
	DefaultCap     int    `env:"ABACUS_DEFAULT_CAP" envDefault:"9"`
	MetricsEnabled bool   `env:"ABACUS_METRICS_ENABLED" envDefault:"true"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The game server port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The game server listen address (overrides -port)")
	fs.IntVar(&cfg.DefaultCap, "cap", cfg.DefaultCap, "Default beads per rod (1-9)")
	fs.BoolVar(&cfg.MetricsEnabled, "metrics", cfg.MetricsEnabled, "Serve Prometheus metrics at /metrics")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.DefaultCap = placevalue.ClampCap(cfg.DefaultCap)
	return cfg, nil
}

// ServerConfig translates command configuration into server configuration.
func (c Config) ServerConfig() server.Config {
	opts := httpapi.Options{
		DefaultCap: c.DefaultCap,
		Logger:     log.Default(),
	}
	if c.MetricsEnabled {
		opts.Metrics = metrics.New()
	}
	return server.Config{Addr: c.Addr, Port: c.Port, API: opts}
}

// Run starts the game API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceGame, func(ctx context.Context) error {
		return server.Run(ctx, cfg.ServerConfig())
	})
}
