package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/louisbranch/abacus/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName = "abacus-mcp"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Transport kinds accepted by Run.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config configures the MCP service.
type Config struct {
	// Transport is TransportStdio or TransportHTTP. Empty selects stdio.
	Transport string
	// HTTPAddr is the listen address for the HTTP transport.
	HTTPAddr string
	// AllowedHosts extends the loopback-only Host/Origin allowlist.
	AllowedHosts []string
	Deps         domain.Deps
	Logger       *log.Logger
}

// Server owns the MCP server with every abacus tool and resource registered.
type Server struct {
	mcpServer *mcp.Server
	logger    *log.Logger
}

// New creates an MCP server with the abacus tools and resources registered.
func New(deps domain.Deps, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		CompletionHandler:  completionHandler,
		SubscribeHandler:   resourceSubscribeHandler,
		UnsubscribeHandler: resourceUnsubscribeHandler,
	})

	registrar := mcpServerRegistrationAdapter{server: mcpServer}
	for _, module := range newMCPRegistrationModules(deps) {
		if err := module.register(registrar); err != nil {
			return nil, fmt.Errorf("register %s: %w", module.name, err)
		}
	}
	return &Server{mcpServer: mcpServer, logger: logger}, nil
}

// completionHandler returns empty completions; no prompt or template
// argument has a useful completion set yet.
func completionHandler(_ context.Context, _ *mcp.CompleteRequest) (*mcp.CompleteResult, error) {
	return &mcp.CompleteResult{
		Completion: mcp.CompletionResultDetails{
			Values: []string{},
		},
	}, nil
}

// resourceSubscribeHandler accepts resource subscriptions with a valid URI.
// Abacus resources are static per locale, so no update is ever sent.
func resourceSubscribeHandler(_ context.Context, req *mcp.SubscribeRequest) error {
	if req == nil || req.Params == nil || strings.TrimSpace(req.Params.URI) == "" {
		return fmt.Errorf("resource uri is required")
	}
	return nil
}

// resourceUnsubscribeHandler accepts resource unsubscriptions with a valid URI.
func resourceUnsubscribeHandler(_ context.Context, req *mcp.UnsubscribeRequest) error {
	if req == nil || req.Params == nil || strings.TrimSpace(req.Params.URI) == "" {
		return fmt.Errorf("resource uri is required")
	}
	return nil
}
