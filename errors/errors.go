package errors

import (
	"encoding/json"
	goerrors "errors"
)

// ErrorCode represents a specific error code.
type ErrorCode string

const (
	// GenericErrorCode is used for errors that carry no taxonomy of their own.
	GenericErrorCode ErrorCode = "0"
)

// ErrorResponse represents an error response structure.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface for ErrorResponse.
func (e *ErrorResponse) Error() string {
	errorJSON, _ := json.Marshal(e)
	return string(errorJSON)
}

// Is reports whether target carries the same error code, so wrapped sentinels
// and freshly built responses match with errors.Is.
func (e *ErrorResponse) Is(target error) bool {
	t, ok := target.(*ErrorResponse)
	if !ok || t == nil {
		return false
	}
	return e.Code == t.Code
}

// WithDetails returns a copy of the response with different details and the same code.
func (e *ErrorResponse) WithDetails(details string) *ErrorResponse {
	return &ErrorResponse{Code: e.Code, Details: details}
}

// IsErrorResponse returns true if the given error is an ErrorResponse
func IsErrorResponse(err error) bool {
	_, ok := err.(*ErrorResponse)
	return ok
}

// CreateErrorResponseFromError creates an ErrorResponse from a generic error.
// Wrapped responses are unwrapped so the original code is kept.
func CreateErrorResponseFromError(err error) error {
	if err == nil {
		return nil
	}
	if errResp, ok := err.(*ErrorResponse); ok {
		return errResp
	}
	var errResp *ErrorResponse
	if goerrors.As(err, &errResp) {
		return &ErrorResponse{Code: errResp.Code, Details: err.Error()}
	}
	return &ErrorResponse{
		Code:    GenericErrorCode,
		Details: err.Error(),
	}
}

// CodeOf returns the error code carried by err, or GenericErrorCode.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	return CreateErrorResponseFromError(err).(*ErrorResponse).Code
}

// DetailsOf returns the details of the first ErrorResponse in err's chain, or
// err's message when there is none.
func DetailsOf(err error) string {
	if err == nil {
		return ""
	}
	var errResp *ErrorResponse
	if goerrors.As(err, &errResp) && errResp.Details != "" {
		return errResp.Details
	}
	return err.Error()
}
