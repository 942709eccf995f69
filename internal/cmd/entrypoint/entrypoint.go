// Package entrypoint supervises the game and MCP servers in one container.
package entrypoint

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"syscall"
	"time"

	platformcmd "github.com/louisbranch/abacus/internal/platform/cmd"
	"github.com/louisbranch/abacus/internal/platform/discovery"
	"github.com/louisbranch/abacus/internal/platform/timeouts"
)

// Config holds container entrypoint configuration.
type Config struct {
	GameBin         string        `env:"ABACUS_GAME_BIN"         envDefault:"/app/game"`
	MCPBin          string        `env:"ABACUS_MCP_BIN"          envDefault:"/app/mcp"`
	Host            string        `env:"ABACUS_BIND_HOST"        envDefault:"0.0.0.0"`
	ShutdownTimeout time.Duration `env:"ABACUS_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Host, "host", cfg.Host, "Bind host for both servers")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = timeouts.Shutdown
	}
	return cfg, nil
}

// Children returns the commands for the game API and the MCP HTTP bridge.
func (c Config) Children() []Child {
	return []Child{
		{Name: discovery.ServiceGame, Path: c.GameBin, Args: []string{
			"-addr=" + discovery.ListenAddr(c.Host, discovery.ServiceGame),
		}},
		{Name: discovery.ServiceMCP, Path: c.MCPBin, Args: []string{
			"-transport=http",
			"-http-addr=" + discovery.ListenAddr(c.Host, discovery.ServiceMCP),
		}},
	}
}

// Child describes a managed child command.
type Child struct {
	Name string
	Path string
	Args []string
	Env  []string
}

type process struct {
	name string
	cmd  *exec.Cmd
}

type processExit struct {
	name string
	err  error
}

// Supervise starts every child and blocks until ctx ends or one child exits.
// The survivors receive SIGTERM and are killed after timeout. A cancelled
// ctx yields nil; otherwise the first exit is returned as an error.
func Supervise(ctx context.Context, children []Child, timeout time.Duration) error {
	if len(children) == 0 {
		return errors.New("at least one child is required")
	}
	running := make([]*process, 0, len(children))
	for _, child := range children {
		p, err := start(child)
		if err != nil {
			terminate(running)
			waitAll(running, timeout)
			return err
		}
		running = append(running, p)
	}

	exits := make(chan processExit, len(running))
	for _, p := range running {
		go func(p *process) {
			exits <- processExit{name: p.name, err: p.cmd.Wait()}
		}(p)
	}

	select {
	case <-ctx.Done():
		log.Printf("shutdown signal received")
		terminate(running)
		drain(exits, len(running), timeout, running)
		return nil
	case exit := <-exits:
		log.Printf("%s exited: %v", exit.name, exit.err)
		terminate(running)
		drain(exits, len(running)-1, timeout, running)
		if exit.err == nil {
			return fmt.Errorf("%s exited", exit.name)
		}
		return fmt.Errorf("%s exited: %w", exit.name, exit.err)
	}
}

func start(child Child) (*process, error) {
	cmd := exec.Command(child.Path, child.Args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if len(child.Env) > 0 {
		cmd.Env = append(os.Environ(), child.Env...)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", child.Name, err)
	}
	return &process{name: child.Name, cmd: cmd}, nil
}

func terminate(running []*process) {
	for _, p := range running {
		if p.cmd.Process == nil {
			continue
		}
		_ = p.cmd.Process.Signal(syscall.SIGTERM)
	}
}

// waitAll reaps processes that were started before a later start failed.
func waitAll(running []*process, timeout time.Duration) {
	exits := make(chan processExit, len(running))
	for _, p := range running {
		go func(p *process) {
			exits <- processExit{name: p.name, err: p.cmd.Wait()}
		}(p)
	}
	drain(exits, len(running), timeout, running)
}

func drain(exits <-chan processExit, remaining int, timeout time.Duration, running []*process) {
	if remaining <= 0 {
		return
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for remaining > 0 {
		select {
		case <-exits:
			remaining--
		case <-timer.C:
			for _, p := range running {
				if p.cmd.Process != nil {
					_ = p.cmd.Process.Kill()
				}
			}
			return
		}
	}
}

// ExitCode derives a process exit code from a Supervise error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}
