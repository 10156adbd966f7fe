package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthenticated covers missing, garbled, expired and forged credentials.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrNotFoundOrForbidden is returned both when a resource does not exist
	// and when the caller has no membership path to it.
	ErrNotFoundOrForbidden = errors.New("resource not found")
	// ErrUpstreamUnavailable is returned when the data store or cache failed
	// for infrastructural reasons. It is the only retryable kind.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email address is already registered")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidStatus is returned for task statuses outside the allowed set.
	ErrInvalidStatus = errors.New("invalid task status")
	// ErrInvalidRequest is returned for bodies that cannot be decoded.
	ErrInvalidRequest = errors.New("invalid request body")
	// ErrUserNotFound is returned when inviting an email with no account.
	ErrUserNotFound = errors.New("user not found")
	// ErrAlreadyMember is returned when adding a user who is already in the team.
	ErrAlreadyMember = errors.New("user is already a member of this team")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Wrapped errors are
// matched with errors.Is; anything unknown becomes a 500 without detail.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthenticated.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrNotFoundOrForbidden):
		return NewHTTPError(http.StatusNotFound, ErrNotFoundOrForbidden.Error(), "NOT_FOUND")
	case errors.Is(err, ErrUpstreamUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, ErrUpstreamUnavailable.Error(), "UPSTREAM_UNAVAILABLE")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, ErrEmailTaken.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidStatus.Error(), "INVALID_STATUS")
	case errors.Is(err, ErrInvalidRequest):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidRequest.Error(), "INVALID_REQUEST")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrAlreadyMember):
		return NewHTTPError(http.StatusConflict, ErrAlreadyMember.Error(), "ALREADY_MEMBER")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
