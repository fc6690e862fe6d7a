package orchest

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/oakwood-commons/cmdk/internal/registry"
	"github.com/oakwood-commons/cmdk/pkg/loader"
)

// ErrSimulatedFailure is returned for sources an inventory lists under fail.
var ErrSimulatedFailure = errors.New("simulated failure")

// Inventory is the on-disk shape read by FixtureSource. Fail names sources
// (projects, pipelines, jobs) that should report a failure instead of data.
type Inventory struct {
	Projects  []registry.Project  `json:"projects" yaml:"projects" toml:"projects"`
	Pipelines []registry.Pipeline `json:"pipelines" yaml:"pipelines" toml:"pipelines"`
	Jobs      []registry.Job      `json:"jobs" yaml:"jobs" toml:"jobs"`
	Fail      []string            `json:"fail,omitempty" yaml:"fail,omitempty" toml:"fail,omitempty"`
}

// FixtureSource serves records from a JSON, YAML or TOML inventory file.
// The file is re-read on every call so edits show up on the next refresh.
type FixtureSource struct {
	path string
}

var _ registry.Source = (*FixtureSource)(nil)

// NewFixtureSource returns a source reading path.
func NewFixtureSource(path string) *FixtureSource {
	return &FixtureSource{path: path}
}

// Path returns the inventory file path.
func (f *FixtureSource) Path() string {
	return f.path
}

// Load reads and decodes the inventory.
func (f *FixtureSource) Load(ctx context.Context) (Inventory, error) {
	if err := ctx.Err(); err != nil {
		return Inventory{}, err
	}
	var inv Inventory
	if err := loader.DecodeFile(f.path, &inv); err != nil {
		return Inventory{}, fmt.Errorf("load inventory: %w", err)
	}
	return inv, nil
}

// Projects returns the inventory's projects.
func (f *FixtureSource) Projects(ctx context.Context) registry.Result[registry.Project] {
	inv, err := f.loadFor(ctx, registry.SourceProjects)
	if err != nil {
		return registry.Fail[registry.Project](registry.SourceProjects, err)
	}
	return registry.OK(inv.Projects)
}

// Pipelines returns the inventory's pipelines.
func (f *FixtureSource) Pipelines(ctx context.Context) registry.Result[registry.Pipeline] {
	inv, err := f.loadFor(ctx, registry.SourcePipelines)
	if err != nil {
		return registry.Fail[registry.Pipeline](registry.SourcePipelines, err)
	}
	return registry.OK(inv.Pipelines)
}

// Jobs returns the inventory's jobs.
func (f *FixtureSource) Jobs(ctx context.Context) registry.Result[registry.Job] {
	inv, err := f.loadFor(ctx, registry.SourceJobs)
	if err != nil {
		return registry.Fail[registry.Job](registry.SourceJobs, err)
	}
	return registry.OK(inv.Jobs)
}

func (f *FixtureSource) loadFor(ctx context.Context, source string) (Inventory, error) {
	inv, err := f.Load(ctx)
	if err != nil {
		return Inventory{}, err
	}
	if slices.Contains(inv.Fail, source) {
		return Inventory{}, ErrSimulatedFailure
	}
	return inv, nil
}
