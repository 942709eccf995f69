// Package discovery centralizes the default ports of abacus services.
package discovery

import (
	"net"
	"strconv"
	"strings"
)

const (
	// ServiceGame is the HTTP game API identity.
	ServiceGame = "game"
	// ServiceMCP is the MCP streamable HTTP identity.
	ServiceMCP = "mcp"
)

var httpPorts = map[string]int{
	ServiceGame: 8090,
	ServiceMCP:  8091,
}

// DefaultHTTPPort returns the conventional port for a service, or 0.
func DefaultHTTPPort(service string) int {
	return httpPorts[strings.TrimSpace(service)]
}

// DefaultHTTPAddr returns the in-network address, e.g. "game:8090".
func DefaultHTTPAddr(service string) string {
	service = strings.TrimSpace(service)
	return ListenAddr(service, service)
}

// ListenAddr joins host with the service's conventional port.
func ListenAddr(host, service string) string {
	port := DefaultHTTPPort(service)
	if port <= 0 {
		return ""
	}
	return net.JoinHostPort(strings.TrimSpace(host), strconv.Itoa(port))
}

// OrDefaultHTTPAddr returns value when set, otherwise the service convention.
func OrDefaultHTTPAddr(value, service string) string {
	value = strings.TrimSpace(value)
	if value != "" {
		return value
	}
	return DefaultHTTPAddr(service)
}
