package graph

import (
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ConnectionError marks the graph database as unreachable. Ranking callers
// degrade to empty results on it; nothing inside the adapter retries.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string { return fmt.Sprintf("graph connection error: %v", e.Err) }
func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError marks a malformed traversal or a schema mismatch. It indicates
// a defect rather than transient unavailability and must propagate.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string { return fmt.Sprintf("graph query error: %v", e.Err) }
func (e *QueryError) Unwrap() error { return e.Err }

// classify maps driver failures onto the adapter's two-error taxonomy.
// Server rejections of the statement itself become QueryError; everything
// else (broken transport, timeouts, cancellation) is treated as
// connectivity.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if neo4j.IsNeo4jError(err) || neo4j.IsUsageError(err) {
		return &QueryError{Err: err}
	}
	return &ConnectionError{Err: err}
}

// IsConnectionError reports whether err is, or wraps, a ConnectionError.
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// IsQueryError reports whether err is, or wraps, a QueryError.
func IsQueryError(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe)
}
