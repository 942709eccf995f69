// Package main runs the game API and the MCP HTTP bridge in one container.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/abacus/internal/cmd/entrypoint"
	"github.com/louisbranch/abacus/internal/platform/config"
)

func main() {
	cfg, err := entrypoint.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[ENTRYPOINT] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := entrypoint.Supervise(ctx, cfg.Children(), cfg.ShutdownTimeout); err != nil {
		log.Print(err)
		os.Exit(entrypoint.ExitCode(err))
	}
}
