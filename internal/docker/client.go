// Package docker lists Docker Compose projects from the local daemon and
// reports them as stacks.
package docker

import (
	"context"
	"fmt"
	"sort"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
	"github.com/minicloud/portal/internal/model"
)

// ProjectLabel is set by docker compose on every container it creates.
const ProjectLabel = "com.docker.compose.project"

// DefaultSocket is the daemon socket used when none is configured.
const DefaultSocket = "/var/run/docker.sock"

// containerLister is the part of the Engine API client the source needs.
type containerLister interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]types.Container, error)
	Close() error
}

// Client wraps the Docker Engine API client.
type Client struct {
	cli        containerLister
	endpointID int
}

// NewClient creates a Client connected to the Docker daemon.
// Stacks it reports carry endpointID as their EndpointId.
func NewClient(socketPath string, endpointID int) (*Client, error) {
	if socketPath == "" {
		socketPath = DefaultSocket
	}
	cli, err := client.NewClientWithOpts(
		client.WithHost("unix://"+socketPath),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("docker client: %w", err)
	}
	return &Client{cli: cli, endpointID: endpointID}, nil
}

// Close releases the Docker client resources.
func (c *Client) Close() error {
	return c.cli.Close()
}

// Name identifies the source in logs and metrics.
func (c *Client) Name() string { return "docker" }

// ListStacks returns one stack per compose project, sorted by name.
// Ids are assigned 1..n in that order; they are stable only while the set
// of projects does not change.
func (c *Client) ListStacks(ctx context.Context) ([]model.Stack, error) {
	containers, err := c.cli.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filters.NewArgs(filters.Arg("label", ProjectLabel)),
	})
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	return stacksFromProjects(composeProjects(containers), c.endpointID), nil
}

// composeProjects returns the distinct, sorted compose project names.
func composeProjects(containers []types.Container) []string {
	seen := make(map[string]struct{})
	for _, ctr := range containers {
		project := ctr.Labels[ProjectLabel]
		if project == "" {
			continue
		}
		seen[project] = struct{}{}
	}

	projects := make([]string, 0, len(seen))
	for p := range seen {
		projects = append(projects, p)
	}
	sort.Strings(projects)
	return projects
}

func stacksFromProjects(projects []string, endpointID int) []model.Stack {
	stacks := make([]model.Stack, 0, len(projects))
	for i, p := range projects {
		stacks = append(stacks, model.Stack{Name: p, ID: i + 1, EndpointID: endpointID})
	}
	return stacks
}
