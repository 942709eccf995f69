// Package server runs the abacus game HTTP API.
//
// It binds the listener, serves the JSON API until the context ends, and
// drains in-flight requests within timeouts.Shutdown.
package server
