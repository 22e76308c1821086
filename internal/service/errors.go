package service

import "fmt"

var (
	// ErrInvalidCredentials is returned for both an unknown identity and a
	// wrong password. The two cases must stay indistinguishable to callers
	// to prevent username enumeration.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// ErrUnauthenticated is returned when a token is missing, malformed,
	// carries a bad signature, or is expired. The sub-reason is logged for
	// diagnostics but never changes external behavior.
	ErrUnauthenticated = fmt.Errorf("authentication required")
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	StatusCode int
	Wrapped    error
}

func (e HTTPError) Error() string {
	return e.Wrapped.Error()
}

func (e HTTPError) Unwrap() error {
	return e.Wrapped
}

func httpError(statusCode int, err error) HTTPError {
	return HTTPError{
		StatusCode: statusCode,
		Wrapped:    err,
	}
}
