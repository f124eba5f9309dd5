package docker

import (
	"context"
	"fmt"

	"github.com/docker/docker/client"
)

// Client wraps the Docker SDK client for daemon preflight checks.
// devup runs docker steps through the docker CLI; the SDK is only used to
// verify the daemon is reachable before those steps start.
type Client struct {
	cli *client.Client
}

// NewClient creates a new Docker client and verifies the daemon is reachable
func NewClient() (*Client, error) {
	// The SDK client picks up DOCKER_HOST and friends automatically
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	ctx := context.Background()
	if _, err = cli.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to Docker daemon: %w", err)
	}

	return &Client{cli: cli}, nil
}

// Close releases resources used by the Docker client
func (c *Client) Close() error {
	if c.cli != nil {
		return c.cli.Close()
	}
	return nil
}

// DaemonReachable reports whether a Docker daemon answers a ping
func DaemonReachable() bool {
	cli, err := NewClient()
	if err != nil {
		return false
	}
	defer cli.Close()
	return true
}
