// Package client is the Go client for the CropGuard API. Every failure it
// returns is one of four typed errors so callers can branch on the class of
// fault instead of string-matching messages.
package client

import "fmt"

// ValidationError means the submission itself was bad. Retrying without
// changing the input will fail again.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Detail)
	}
	return "validation failed: " + e.Detail
}

// PermissionError means access was denied, either by the server (401/403) or
// by the device refusing camera access.
type PermissionError struct {
	Detail string
}

func (e *PermissionError) Error() string {
	return "permission denied: " + e.Detail
}

// NetworkError means the request never completed: DNS failure, refused
// connection, timeout. The submission may be retried as-is.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError means the server answered with a failure status.
type ServerError struct {
	StatusCode int
	Detail     string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (status %d): %s", e.StatusCode, e.Detail)
}
