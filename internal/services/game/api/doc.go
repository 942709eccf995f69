// Package api contains service API implementations.
//
// Subpackages:
//   - http: JSON API over the place-value codec and the task engine
//
// MCP tools expose the same operations through internal/services/mcp.
package api
