package blogsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/inkpothq/inkpot/pkg/httpx"
)

// APIError is the error payload shape shared by the server and the
// client. Handlers call WriteError to emit it; the client parses it
// back into the same type.
type APIError struct {
	// StatusCode is the HTTP status for this error.
	StatusCode int `json:"-"`

	// Code is a stable machine-readable error code.
	Code string `json:"error"`

	// Message is a human-readable description.
	Message string `json:"message,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}

var (
	// ErrUserExists is returned when registration collides with an
	// existing username or email.
	ErrUserExists = &APIError{
		StatusCode: http.StatusConflict,
		Code:       "user_exists",
		Message:    "User already exists!",
	}

	// ErrUserNotFound is returned when login names an unknown user.
	ErrUserNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       "user_not_found",
		Message:    "User not found!",
	}

	// ErrWrongCredentials is returned when the password does not match.
	ErrWrongCredentials = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       "invalid_credentials",
		Message:    "Wrong username or password!",
	}

	// ErrInvalidRequest is returned when the body cannot be parsed or
	// required fields are missing.
	ErrInvalidRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       "invalid_request",
		Message:    "The request is malformed or missing required fields",
	}

	// ErrNotLoggedIn is returned when a protected endpoint is hit
	// without a session token.
	ErrNotLoggedIn = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       "unauthorized",
		Message:    "Not logged in",
	}

	// ErrInvalidSession is returned when the session token fails
	// verification.
	ErrInvalidSession = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       "forbidden",
		Message:    "Session token is not valid",
	}

	// ErrNotPostOwner is returned when mutating a post that does not
	// exist or belongs to someone else.
	ErrNotPostOwner = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       "forbidden",
		Message:    "You can only manage your own posts!",
	}

	// ErrPostNotFound is returned for reads of a missing post.
	ErrPostNotFound = &APIError{
		StatusCode: http.StatusNotFound,
		Code:       "post_not_found",
		Message:    "Post not found!",
	}

	// ErrServerError is the catch-all for unexpected failures.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       "server_error",
		Message:    "Internal server error",
	}
)

// parseErrorResponse turns a non-2xx response body into a typed *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       "server_error",
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
