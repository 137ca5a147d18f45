package graph

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/kimu90/expert-discovery/internal/config"
)

// Client wraps the Neo4j driver. Sessions are scoped per operation: every
// call acquires one, runs its query, and releases it on all exit paths —
// success, empty result, or error.
type Client struct {
	driver  neo4j.DriverWithContext
	timeout time.Duration
}

func NewClient(ctx context.Context, cfg *config.Neo4jConfig) (*Client, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, classify(err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, classify(err)
	}
	return &Client{driver: driver, timeout: cfg.Timeout}, nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

func (c *Client) readSession(ctx context.Context) neo4j.SessionWithContext {
	return c.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
}

func (c *Client) writeSession(ctx context.Context) neo4j.SessionWithContext {
	return c.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
}

func (c *Client) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}
