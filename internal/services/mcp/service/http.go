package service

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/louisbranch/abacus/internal/services/shared/httpx"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// httpHandler mounts the streamable MCP endpoint at /mcp and a health check
// at /mcp/health, both behind Host/Origin validation.
func (s *Server) httpHandler(allowedHosts []string) http.Handler {
	guard := hostGuard{allowed: parseAllowedHosts(allowedHosts)}
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcpServer
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp", guard.wrap(streamable))
	mux.Handle("GET /mcp/health", guard.wrap(http.HandlerFunc(handleHealth)))
	return httpx.Chain(mux,
		httpx.RequestID("mcp"),
		httpx.RecoverPanic(s.logger),
		httpx.LogRequests(s.logger),
	)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// hostGuard rejects requests whose Host or Origin is neither loopback nor
// explicitly allowed, which blocks DNS rebinding against a local server.
type hostGuard struct {
	allowed map[string]struct{}
}

func (g hostGuard) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := g.validate(r); err != nil {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (g hostGuard) validate(r *http.Request) error {
	if r == nil {
		return fmt.Errorf("invalid request")
	}
	if !g.isAllowedHost(r.Host) {
		return fmt.Errorf("invalid host")
	}

	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return nil
	}
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("invalid origin")
	}
	if !g.isAllowedHost(parsed.Host) {
		return fmt.Errorf("invalid origin")
	}
	return nil
}

func (g hostGuard) isAllowedHost(host string) bool {
	resolved, ok := normalizeHost(host)
	if !ok {
		return false
	}
	if isLoopbackHost(resolved) {
		return true
	}
	_, ok = g.allowed[strings.ToLower(resolved)]
	return ok
}

func isLoopbackHost(host string) bool {
	switch strings.ToLower(strings.TrimSpace(host)) {
	case "localhost", "127.0.0.1", "::1":
		return true
	default:
		return false
	}
}

func parseAllowedHosts(hosts []string) map[string]struct{} {
	result := make(map[string]struct{}, len(hosts))
	for _, entry := range hosts {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		result[strings.ToLower(trimmed)] = struct{}{}
	}
	return result
}

// normalizeHost extracts the hostname from a Host or Origin authority.
func normalizeHost(host string) (string, bool) {
	host = strings.TrimSpace(host)
	if host == "" {
		return "", false
	}
	if strings.HasPrefix(host, "[") {
		if splitHost, _, err := net.SplitHostPort(host); err == nil {
			return splitHost, true
		}
		if strings.HasSuffix(host, "]") {
			return strings.TrimSuffix(strings.TrimPrefix(host, "["), "]"), true
		}
		return "", false
	}
	if strings.Count(host, ":") > 1 {
		return host, true
	}
	if strings.Contains(host, ":") {
		splitHost, _, err := net.SplitHostPort(host)
		if err != nil {
			return "", false
		}
		return splitHost, true
	}
	return host, true
}
