package skyflow

import (
	"fmt"
	"net/http"
)

// ErrorCode classifies every error returned by the SDK.
//
// The set is closed: callers can switch over it exhaustively.
type ErrorCode string

const (
	// CodeInvalidInput reports malformed caller data. It is always returned
	// before any network call is made.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeAPIError reports a non-2xx response from the vault. Status holds
	// the HTTP status code.
	CodeAPIError ErrorCode = "API_ERROR"

	// CodeResponseNotJSON reports a response body that could not be parsed.
	CodeResponseNotJSON ErrorCode = "RESPONSE_NOT_JSON"

	// CodeRequestFailed reports a transport failure (connection refused,
	// context cancelled, ...). No response was received.
	CodeRequestFailed ErrorCode = "REQUEST_FAILED"

	// CodePartialSuccess reports a batch in which some record groups
	// succeeded and some failed. Data carries both.
	CodePartialSuccess ErrorCode = "PARTIAL_SUCCESS"

	// CodeBatchFailure reports a batch in which every record group failed.
	// Data carries the error ledger and no records.
	CodeBatchFailure ErrorCode = "BATCH_FAILURE"
)

// Error represents a Skyflow SDK error.
//
// Use errors.As to inspect it:
//
//	resp, err := client.GetByID(ctx, data)
//	var skyErr *skyflow.Error
//	if errors.As(err, &skyErr) && skyErr.Code == skyflow.CodePartialSuccess {
//	    retry(skyErr.Data.Errors)
//	    use(skyErr.Data.Records)
//	}
type Error struct {
	// Code is the error class.
	Code ErrorCode

	// Reason identifies the message template the error was built from.
	Reason Message

	// Message is the rendered, human readable description.
	Message string

	// Status is the HTTP status associated with the error. Invalid input is
	// reported as 400 and batch outcomes as 500, mirroring the vault.
	Status int

	// Data holds the batch payload for CodePartialSuccess and
	// CodeBatchFailure. It is nil for every other code.
	Data *BatchResponse

	// Cause is the underlying error, if any.
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("skyflow: %s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("skyflow: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Code. It makes the
// sentinel values below usable with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinel errors, matched by code.
var (
	ErrInvalidInput    = &Error{Code: CodeInvalidInput, Message: "invalid input", Status: http.StatusBadRequest}
	ErrAPI             = &Error{Code: CodeAPIError, Message: "api error"}
	ErrResponseNotJSON = &Error{Code: CodeResponseNotJSON, Message: "response is not json"}
	ErrRequestFailed   = &Error{Code: CodeRequestFailed, Message: "request failed"}
	ErrPartialSuccess  = &Error{Code: CodePartialSuccess, Message: MsgPartialSuccess.Format(), Status: http.StatusInternalServerError}
	ErrBatchFailure    = &Error{Code: CodeBatchFailure, Message: MsgBatchFailure.Format(), Status: http.StatusInternalServerError}
)

// newError builds an *Error from a catalog message.
func newError(code ErrorCode, status int, reason Message, cause error, args ...any) *Error {
	return &Error{
		Code:    code,
		Reason:  reason,
		Message: reason.Format(args...),
		Status:  status,
		Cause:   cause,
	}
}

// invalidInput builds a CodeInvalidInput error.
func invalidInput(reason Message, cause error, args ...any) *Error {
	return newError(CodeInvalidInput, http.StatusBadRequest, reason, cause, args...)
}

// typeName renders the dynamic type of v for type-mismatch messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
