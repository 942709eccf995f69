// Package scenario parses scenario command flags and runs a drill script.
package scenario

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"time"

	entrypoint "github.com/louisbranch/abacus/internal/platform/cmd"
	"github.com/louisbranch/abacus/internal/platform/timeouts"
	"github.com/louisbranch/abacus/internal/tools/scenario"
)

// Config holds scenario command configuration.
type Config struct {
	Scenario   string        `env:"ABACUS_SCENARIO_FILE"`
	Assertions bool          `env:"ABACUS_SCENARIO_ASSERT"   envDefault:"true"`
	Verbose    bool          `env:"ABACUS_SCENARIO_VERBOSE"`
	Seed       int64         `env:"ABACUS_SCENARIO_SEED"`
	DefaultCap int           `env:"ABACUS_DEFAULT_CAP"       envDefault:"9"`
	Timeout    time.Duration `env:"ABACUS_SCENARIO_TIMEOUT"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = timeouts.ScenarioStep
	}

	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario lua file")
	fs.BoolVar(&cfg.Assertions, "assert", cfg.Assertions, "enable assertions (disable to log expectations)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed for tasks without an explicit seed")
	fs.IntVar(&cfg.DefaultCap, "cap", cfg.DefaultCap, "default beads per rod (1-9)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout per step")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the scenario command.
func Run(ctx context.Context, cfg Config, errOut io.Writer) error {
	if errOut == nil {
		errOut = io.Discard
	}
	if cfg.Scenario == "" {
		return errors.New("scenario path is required")
	}

	mode := scenario.AssertionStrict
	if !cfg.Assertions {
		mode = scenario.AssertionLogOnly
	}

	logger := log.New(errOut, "", 0)
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceScenario, func(ctx context.Context) error {
		return scenario.RunFile(ctx, scenario.Config{
			Seed:       cfg.Seed,
			DefaultCap: cfg.DefaultCap,
			Timeout:    cfg.Timeout,
			Assertions: mode,
			Verbose:    cfg.Verbose,
			Logger:     logger,
		}, cfg.Scenario)
	})
}
