// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Action errors
	CodeActionTypeRequired Code = "ACTION_TYPE_REQUIRED"
	CodePayloadInvalid     Code = "PAYLOAD_INVALID"
	CodeStateInvalid       Code = "STATE_INVALID"

	// Combat errors
	CodeCombatEndInvalid Code = "COMBAT_END_INVALID"

	// Session errors
	CodeNothingToUndo       Code = "NOTHING_TO_UNDO"
	CodeSessionIDRequired   Code = "SESSION_ID_REQUIRED"
	CodeSaveSessionMismatch Code = "SAVE_SESSION_MISMATCH"
	CodeSaveIDRequired      Code = "SAVE_ID_REQUIRED"

	// Storage errors
	CodeNotFound         Code = "NOT_FOUND"
	CodeStoreUnavailable Code = "STORE_UNAVAILABLE"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeActionTypeRequired,
		CodePayloadInvalid,
		CodeStateInvalid,
		CodeSessionIDRequired,
		CodeSaveIDRequired:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeCombatEndInvalid,
		CodeNothingToUndo,
		CodeSaveSessionMismatch:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	case CodeStoreUnavailable:
		return codes.Unavailable

	default:
		return codes.Internal
	}
}

// MessageKey is the catalog key of the user-facing message for c.
func (c Code) MessageKey() string {
	return "errors." + string(c)
}
