package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/louisbranch/abacus/internal/platform/timeouts"
	httpapi "github.com/louisbranch/abacus/internal/services/game/api/http"
	"golang.org/x/sync/errgroup"
)

// Config configures the game server.
type Config struct {
	// Addr is the listen address. When empty, Port is used on all interfaces.
	Addr string
	Port int
	API  httpapi.Options
}

// Server hosts the abacus game API.
type Server struct {
	listener   net.Listener
	httpServer *http.Server
	logger     *log.Logger
}

// New creates a configured game server bound to its listen address.
func New(cfg Config) (*Server, error) {
	addr := cfg.Addr
	if addr == "" {
		addr = fmt.Sprintf(":%d", cfg.Port)
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	logger := cfg.API.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Server{
		listener: listener,
		httpServer: &http.Server{
			Handler:           httpapi.New(cfg.API),
			ReadHeaderTimeout: timeouts.ReadHeader,
			WriteTimeout:      timeouts.Request,
		},
		logger: logger,
	}, nil
}

// Addr returns the listener address for the game server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a game server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	srv, err := New(cfg)
	if err != nil {
		return err
	}
	return srv.Serve(ctx)
}

// Serve starts the game server and blocks until it stops or the context ends.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s.logger.Printf("game server listening at %v", s.listener.Addr())
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		return nil
	})
	return g.Wait()
}
