// Package telemetry groups the operational observability of abacus services.
//
// Tracing lives in internal/platform/otel. Counters describing engine
// activity (tasks generated, answers verified, overflowing encodes) live in
// telemetry/metrics and are exposed in Prometheus format.
package telemetry
