// Package domain exposes abacus operations as MCP tools and resources.
//
// Each tool is a pair: a constructor returning the *mcp.Tool schema and a
// handler factory closing over shared Deps. Handlers are pure calls into the
// placevalue and task packages, so the MCP surface stays stateless; a task is
// addressed by its mode and seed rather than by stored identity.
package domain
