package stacks

import (
	"context"

	"github.com/minicloud/portal/internal/model"
)

// Source lists the stacks currently deployed.
type Source interface {
	Name() string
	ListStacks(ctx context.Context) ([]model.Stack, error)
}

// mockStacks is the demo dataset served when no API token is configured.
var mockStacks = []model.Stack{
	{Name: "filebrowser", ID: 1, EndpointID: 1},
	{Name: "gitea", ID: 2, EndpointID: 1},
	{Name: "jupyter", ID: 3, EndpointID: 1},
	{Name: "mealie", ID: 4, EndpointID: 1},
	{Name: "nextcloud", ID: 5, EndpointID: 1},
	{Name: "redis", ID: 6, EndpointID: 1},
	{Name: "sagemath", ID: 7, EndpointID: 1},
}

// MockSource serves a fixed list of seven stacks without touching the network.
type MockSource struct{}

// Name identifies the source in logs and metrics.
func (MockSource) Name() string { return "mock" }

// ListStacks returns a fresh copy of the demo stacks. It never fails.
func (MockSource) ListStacks(context.Context) ([]model.Stack, error) {
	out := make([]model.Stack, len(mockStacks))
	copy(out, mockStacks)
	return out, nil
}
