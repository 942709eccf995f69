// Package scenario runs Lua-scripted abacus drills against the engine.
//
// A script builds a Scenario through the Scenario.new DSL; the Runner then
// replays its steps in process against the placevalue and task packages,
// tracking one answer board and the current task.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/louisbranch/abacus/internal/abacus/placevalue"
	"github.com/louisbranch/abacus/internal/abacus/task"
	"github.com/louisbranch/abacus/internal/platform/otel"
	"github.com/louisbranch/abacus/internal/platform/timeouts"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Config controls scenario execution.
type Config struct {
	// Seed fixes the task sequence for steps that omit their own seed.
	Seed       int64
	DefaultCap int
	Timeout    time.Duration
	Assertions AssertionMode
	Verbose    bool
	Logger     *log.Logger
}

// DefaultConfig returns default runner configuration.
func DefaultConfig() Config {
	return Config{
		DefaultCap: placevalue.DefaultCap,
		Timeout:    timeouts.ScenarioStep,
		Assertions: AssertionStrict,
	}
}

// Runner executes scenarios in process.
type Runner struct {
	seed       int64
	defaultCap int
	assertions Assertions
	logger     *log.Logger
	verbose    bool
	timeout    time.Duration
	tracer     trace.Tracer
}

// NewRunner prepares a scenario runner. Zero config values select defaults.
func NewRunner(cfg Config) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = timeouts.ScenarioStep
	}
	defaultCap := cfg.DefaultCap
	if defaultCap == 0 {
		defaultCap = placevalue.DefaultCap
	}

	return &Runner{
		seed:       cfg.Seed,
		defaultCap: placevalue.ClampCap(defaultCap),
		assertions: Assertions{Mode: cfg.Assertions, Logger: logger},
		logger:     logger,
		verbose:    cfg.Verbose,
		timeout:    timeout,
		tracer:     otel.Tracer("tools/scenario"),
	}
}

// RunFile loads and executes a scenario file.
func RunFile(ctx context.Context, cfg Config, path string) error {
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		return err
	}
	return NewRunner(cfg).RunScenario(ctx, scenario)
}

// scenarioState is the drill state threaded through the steps.
type scenarioState struct {
	generator *task.Generator
	maxPerRod int
	current   *task.Task
	board     placevalue.RodCount
	answer    float64
	inputs    []float64
	// lastEncode is nil until an encode step runs.
	lastEncode *placevalue.EncodeResult
}

// RunScenario executes the scenario steps in order.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) error {
	if scenario == nil {
		return errors.New("scenario is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := r.tracer.Start(ctx, "scenario.run")
	defer span.End()
	span.SetAttributes(attribute.String("scenario.name", scenario.Name), attribute.Int("scenario.steps", len(scenario.Steps)))

	r.logf("scenario start: %s (%d steps)", scenario.Name, len(scenario.Steps))
	state := &scenarioState{
		generator: task.NewGenerator(r.seed),
		maxPerRod: r.defaultCap,
	}

	for index, step := range scenario.Steps {
		stepNumber := index + 1
		r.logf("step %d/%d start: %s", stepNumber, len(scenario.Steps), step.Kind)
		stepStart := time.Now()
		stepCtx, cancel := context.WithTimeout(ctx, r.timeout)
		err := r.runStep(stepCtx, state, step)
		cancel()
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", stepNumber, step.Kind, err)
		}
		r.logf("step %d/%d done: %s (%s)", stepNumber, len(scenario.Steps), step.Kind, time.Since(stepStart))
	}
	r.logf("scenario done: %s", scenario.Name)
	return nil
}

func (r *Runner) logf(format string, args ...any) {
	if !r.verbose || r.logger == nil {
		return
	}
	r.logger.Printf(format, args...)
}

func (r *Runner) failf(format string, args ...any) error {
	return r.assertions.Failf(format, args...)
}

func (r *Runner) assertf(format string, args ...any) error {
	return r.assertions.Assertf(format, args...)
}
