package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the requested item id does not exist.
	ErrNotFound = errors.New("item not found")

	// ErrTooManyDuplicates is the safety bound on filename collision
	// resolution: past 1000 suffixed candidates the placement fails
	// instead of looping.
	ErrTooManyDuplicates = errors.New("too many duplicate filenames at destination")
)

// ValidationError rejects a malformed analysis record or correction before
// anything is written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// QueryParseError reports a malformed advanced-search expression. The query
// is not executed.
type QueryParseError struct {
	Token  string
	Reason string
}

func (e *QueryParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Token, e.Reason)
}
