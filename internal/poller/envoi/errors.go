// internal/poller/envoi/errors.go
package envoi

import "fmt"

// RetriesExhaustedError means the API could not be reached on any attempt.
// It is the distinguished condition that requests a process restart.
type RetriesExhaustedError struct {
	Attempts int
	Err      error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("envoi: max retries exceeded after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RetriesExhaustedError) Unwrap() error { return e.Err }

// StatusError is a non-2xx HTTP answer.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("envoi: http status %d", e.StatusCode)
}
