package view

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidID is returned when an identifier fails to parse.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrDuplicate is reported by a RelationStore when an insert hits a
	// unique constraint. The toggle engine treats it as convergence, not
	// as a failure.
	ErrDuplicate = errors.New("duplicate relation")

	// ErrQueryTimeout is returned when a pipeline execution exceeds its
	// context deadline. No partial result is returned.
	ErrQueryTimeout = errors.New("query timed out")
)

// ConfigError reports a malformed pipeline or join specification. It is
// detected at build time, before any store access.
type ConfigError struct {
	Reason string
}

func (e ConfigError) Error() string {
	return "invalid pipeline configuration: " + e.Reason
}

func (e ConfigError) Is(target error) bool {
	_, ok := target.(ConfigError)
	if ok {
		return true
	}
	_, ok = target.(*ConfigError)
	return ok
}

// QueryError wraps a store failure during pipeline execution.
type QueryError struct {
	Collection string
	Err        error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query on %s failed: %v", e.Collection, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// ToggleError reports a failed toggle operation. State is unchanged from
// the caller's perspective; the operation may be retried safely.
type ToggleError struct {
	Op  string
	Err error
}

func (e *ToggleError) Error() string {
	return fmt.Sprintf("toggle %s failed: %v", e.Op, e.Err)
}

func (e *ToggleError) Unwrap() error { return e.Err }
