// Package metrics provides Prometheus counters for engine activity.
//
// # Metrics
//
//   - abacus_tasks_generated_total{mode}
//   - abacus_verifications_total{mode,result}
//   - abacus_encode_overflow_total
//   - abacus_http_requests_total{route,code}
//
// A nil *Collectors is valid and records nothing, so callers that run with
// metrics disabled need no branching.
package metrics
