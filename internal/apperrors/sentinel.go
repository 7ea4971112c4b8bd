package apperrors

import (
	"errors"
	"net/http"
)

// Sentinel errors usable with errors.Is across layers.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNewsKeyMissing      = errors.New("news api key is not configured")
	ErrLLMKeyMissing       = errors.New("llm api key is not configured")
	ErrUpstreamStatus      = errors.New("upstream returned non-success status")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrUpstreamTimeout     = errors.New("upstream request timed out")
	ErrMalformedResponse   = errors.New("malformed upstream response")
	ErrCircuitOpen         = errors.New("circuit breaker is open")
)

func hasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsValidationError reports whether err represents bad caller input.
func IsValidationError(err error) bool {
	return hasCode(err, ErrCodeValidation) || errors.Is(err, ErrInvalidInput)
}

// IsConfigurationError reports whether err represents a missing credential or setting.
func IsConfigurationError(err error) bool {
	return hasCode(err, ErrCodeConfiguration) ||
		errors.Is(err, ErrNewsKeyMissing) ||
		errors.Is(err, ErrLLMKeyMissing)
}

// IsUpstreamError reports whether err came from a third-party API.
// Parse and timeout failures count as upstream failures.
func IsUpstreamError(err error) bool {
	return hasCode(err, ErrCodeExternalAPI) ||
		hasCode(err, ErrCodeParse) ||
		hasCode(err, ErrCodeTimeout) ||
		errors.Is(err, ErrUpstreamStatus) ||
		errors.Is(err, ErrUpstreamUnavailable) ||
		errors.Is(err, ErrUpstreamTimeout) ||
		errors.Is(err, ErrMalformedResponse) ||
		errors.Is(err, ErrCircuitOpen)
}

// IsParseError reports whether err represents a malformed upstream body.
func IsParseError(err error) bool {
	return hasCode(err, ErrCodeParse) || errors.Is(err, ErrMalformedResponse)
}

// IsRetryableError reports whether a caller may reasonably retry the operation.
func IsRetryableError(err error) bool {
	return errors.Is(err, ErrUpstreamTimeout) ||
		errors.Is(err, ErrUpstreamUnavailable) ||
		errors.Is(err, ErrCircuitOpen)
}

// HTTPStatusCode maps an error to the status the proxy endpoints respond with.
// Everything except caller input errors is reported as 500.
func HTTPStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if IsValidationError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// HTTPErrorResponse is the body every proxy endpoint returns on failure.
type HTTPErrorResponse struct {
	Error string `json:"error"`
}
