package orchest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/oakwood-commons/cmdk/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inventoryYAML = `projects:
  - uuid: p1
    path: /a
pipelines:
  - uuid: pl1
    name: etl
    project_uuid: p1
jobs:
  - uuid: j1
    name: nightly
    status: SUCCESS
    project_uuid: p1
`

func writeInventory(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFixtureSource(t *testing.T) {
	src := NewFixtureSource(writeInventory(t, "inventory.yaml", inventoryYAML))
	ctx := context.Background()

	assert.Equal(t, []registry.Project{{UUID: "p1", Path: "/a"}}, src.Projects(ctx).Items)
	assert.Equal(t, []registry.Pipeline{{UUID: "pl1", Name: "etl", ProjectUUID: "p1"}}, src.Pipelines(ctx).Items)
	jobs := src.Jobs(ctx)
	require.NoError(t, jobs.Err)
	assert.Equal(t, "nightly", jobs.Items[0].Name)
}

func TestFixtureSourceSimulatedFailure(t *testing.T) {
	path := writeInventory(t, "inventory.json", `{"projects": [{"uuid": "p1", "path": "/a"}], "fail": ["jobs"]}`)
	src := NewFixtureSource(path)

	snap := registry.NewAggregator(src, nil).Build(context.Background())
	require.Len(t, snap.Commands, 1)
	assert.Equal(t, "Project: /a", snap.Commands[0].Title)

	res := src.Jobs(context.Background())
	require.ErrorIs(t, res.Err, ErrSimulatedFailure)
}

func TestFixtureSourceRereadsFile(t *testing.T) {
	path := writeInventory(t, "inventory.toml", "[[projects]]\nuuid = \"p1\"\npath = \"/a\"\n")
	src := NewFixtureSource(path)
	require.Len(t, src.Projects(context.Background()).Items, 1)

	require.NoError(t, os.WriteFile(path, []byte("[[projects]]\nuuid = \"p1\"\npath = \"/a\"\n\n[[projects]]\nuuid = \"p2\"\npath = \"/b\"\n"), 0o600))
	assert.Len(t, src.Projects(context.Background()).Items, 2)
}

func TestFixtureSourceErrors(t *testing.T) {
	src := NewFixtureSource(filepath.Join(t.TempDir(), "missing.yaml"))
	res := src.Projects(context.Background())
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "load inventory")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src = NewFixtureSource(writeInventory(t, "inventory.yaml", inventoryYAML))
	require.ErrorIs(t, src.Pipelines(ctx).Err, context.Canceled)
	assert.Equal(t, src.path, src.Path())
}
