package graph

import (
	"errors"
	"fmt"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
)

func TestClassifyNil(t *testing.T) {
	assert.NoError(t, classify(nil))
}

func TestClassifyServerErrorAsQueryError(t *testing.T) {
	serverErr := &neo4j.Neo4jError{Code: "Neo.ClientError.Statement.SyntaxError", Msg: "bad cypher"}
	err := classify(serverErr)
	assert.True(t, IsQueryError(err))
	assert.False(t, IsConnectionError(err))
}

func TestClassifyGenericErrorAsConnectionError(t *testing.T) {
	err := classify(errors.New("dial tcp: connection refused"))
	assert.True(t, IsConnectionError(err))
	assert.False(t, IsQueryError(err))
}

func TestClassifyPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := classify(fmt.Errorf("run failed: %w", cause))
	assert.ErrorIs(t, err, cause)
}

func TestIsHelpersSeeWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", &ConnectionError{Err: errors.New("down")})
	assert.True(t, IsConnectionError(wrapped))

	wrappedQuery := fmt.Errorf("outer: %w", &QueryError{Err: errors.New("bad")})
	assert.True(t, IsQueryError(wrappedQuery))
}
