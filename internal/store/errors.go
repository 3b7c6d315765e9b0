package store

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrMessageNotFound = errors.New("message not found")
)

// ValidationError is a store constraint violation reformatted for clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// formatError rewrites integrity-constraint violations into ValidationError,
// dropping the driver prefix and internal identifiers so storage-layer names
// do not leak to clients. Other errors pass through untouched.
func formatError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	// Class 23: integrity constraint violation.
	if !strings.HasPrefix(string(pqErr.Code), "23") {
		return err
	}

	msg := pqErr.Message
	if pqErr.Detail != "" {
		msg = pqErr.Detail
	}
	msg = strings.TrimPrefix(msg, "pq: ")
	msg = strings.TrimPrefix(msg, "ERROR: ")

	return &ValidationError{Message: msg}
}
