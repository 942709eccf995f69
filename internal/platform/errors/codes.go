// Package errors provides structured error handling with i18n support.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Request errors
	CodeInvalidArgument  Code = "INVALID_ARGUMENT"
	CodeRequestMalformed Code = "REQUEST_MALFORMED"

	// Engine errors
	CodeTaskInvalidMode          Code = "TASK_INVALID_MODE"
	CodeRodCountInvalidLength    Code = "ROD_COUNT_INVALID_LENGTH"
	CodeBeadOperationUnsupported Code = "BEAD_OPERATION_UNSUPPORTED"

	// Random/seed errors
	CodeSeedOutOfRange Code = "SEED_OUT_OF_RANGE"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidArgument,
		CodeRequestMalformed,
		CodeTaskInvalidMode,
		CodeRodCountInvalidLength,
		CodeSeedOutOfRange:
		return http.StatusBadRequest
	case CodeBeadOperationUnsupported:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
