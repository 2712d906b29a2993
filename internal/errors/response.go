package errors

import "net/http"

// ErrorResponse is the body of every failed API call:
// {"error": {"code", "message", "details", "trace_id"}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	TraceID string   `json:"trace_id"`
}

// ErrorOption customises a response built by NewErrorResponse.
type ErrorOption func(*ErrorResponse)

// WithDetails replaces the detail lines of the response.
func WithDetails(details ...string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Details = details
	}
}

// WithMessage replaces the catalogue message of the code.
func WithMessage(message string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Message = message
	}
}

// NewErrorResponse builds a response for code with its catalogue message.
func NewErrorResponse(code ErrorCode, traceID string, opts ...ErrorOption) *ErrorResponse {
	response := &ErrorResponse{
		Error: ErrorDetail{
			Code:    string(code),
			Message: GetErrorMessage(code),
			TraceID: traceID,
		},
	}

	for _, opt := range opts {
		opt(response)
	}

	return response
}

// NewValidationErrorFromList builds a VALIDATION_001 response with one detail
// line per invalid field.
func NewValidationErrorFromList(details []string, traceID string) *ErrorResponse {
	return NewErrorResponse(ValidationGeneral, traceID, WithDetails(details...))
}

// WrapSystemError hides err behind SYSTEM_001. The error is handed back so the
// caller can log it.
func WrapSystemError(err error, traceID string) (*ErrorResponse, error) {
	return NewErrorResponse(SystemInternalError, traceID), err
}

// GetHTTPStatus maps an error code to its HTTP status. Unknown codes are 500.
func GetHTTPStatus(code ErrorCode) int {
	switch code {
	case ValidationGeneral, ValidationRequiredField, ValidationInvalidFormat,
		ValidationOutOfRange, ValidationInvalidEmail, ValidationInvalidID,
		ValidationInvalidDate, TransactionInvalidAmount, TransactionInvalidType,
		TransactionInvalidScope, SavingsInvalidAmount, FamilyInvalidInviteCode,
		AdminTableNotAllowed, AdminUnknownColumn, AuthWeakPassword:
		return http.StatusBadRequest

	case AuthInvalidCredentials, AuthMissingToken, AuthExpiredToken,
		AuthInvalidTokenFormat, AuthInvalidRefreshToken:
		return http.StatusUnauthorized

	case AuthInsufficientPermission, AuthAccountLocked, AdminNotConfigured:
		return http.StatusForbidden

	case TransactionNotFound, SavingsNotFound, FamilyNotFound,
		FamilyInviteNotFound, FamilyNotMember, AdminRowNotFound, SystemRouteNotFound:
		return http.StatusNotFound

	case AuthEmailAlreadyRegistered, FamilyAlreadyMember:
		return http.StatusConflict

	case TransactionValidationFailed, SavingsValidationFailed:
		return http.StatusUnprocessableEntity

	case SystemRateLimitExceeded:
		return http.StatusTooManyRequests

	case SystemServiceUnavailable:
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}

// GetHTTPStatus returns the status for the response's code.
func (er *ErrorResponse) GetHTTPStatus() int {
	return GetHTTPStatus(ErrorCode(er.Error.Code))
}
