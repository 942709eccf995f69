// Package httpapi serves the abacus engine as a JSON HTTP API.
//
// Every request is independent: the server holds no per-learner state.
// Task verification by reference regenerates the task from its mode and
// seed, so a client only needs to remember the pair it was handed. A
// task reference wins over an expected value sent alongside it.
//
// Routes:
//
//	GET  /v1/place-values?lang=
//	POST /v1/encode
//	POST /v1/decode
//	POST /v1/tasks
//	POST /v1/verify
//	POST /v1/beads/{op}        op is a placevalue.Operation, e.g. toggle_upper
//	GET  /healthz
//	GET  /metrics
//
// Errors render as {"error":{"code":"...","message":"..."}} with the
// message localized for the request locale.
package httpapi
