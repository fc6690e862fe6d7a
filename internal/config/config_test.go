package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/oakwood-commons/cmdk/internal/keymap"
	"github.com/oakwood-commons/cmdk/internal/orchest"
	"github.com/oakwood-commons/cmdk/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "cmdk", cfg.App.Name)
	assert.Equal(t, "http://localhost:8000", cfg.Backend.URL)
	assert.Equal(t, time.Duration(0), cfg.Backend.Timeout.Std())
	assert.Equal(t, orchest.DefaultEndpoints(), cfg.Backend.Endpoints)
	assert.Equal(t, []string{"ctrl+k", "super+k"}, cfg.Palette.Hotkeys)
	assert.Equal(t, "Command search", cfg.Palette.Placeholder)
	assert.Equal(t, 10, cfg.Palette.MaxVisible)
	assert.Equal(t, "last-write-wins", cfg.Registry.Consistency)
	assert.Len(t, cfg.Pages, 7)
	assert.Equal(t, []string{"dark", "light", "mono"}, cfg.ThemeNames())

	pages, err := cfg.PageCommands()
	require.NoError(t, err)
	assert.Equal(t, "Page: Projects", pages[0].Title)

	mode, err := cfg.Consistency()
	require.NoError(t, err)
	assert.Equal(t, registry.LastWriteWins, mode)

	km, err := cfg.Keymap()
	require.NoError(t, err)
	assert.Equal(t, keymap.ModeDefault, km.Mode())
}

func TestDefaultYAMLIsCopy(t *testing.T) {
	a := DefaultYAML()
	a[0] = '#'
	assert.NotEqual(t, a[0], DefaultYAML()[0])
}

func TestLoadYAMLOverlay(t *testing.T) {
	path := writeFile(t, "config.yaml", `backend:
  url: https://orchest.example.com
  timeout: 15s
palette:
  key_mode: emacs
  max_visible: 5
registry:
  consistency: sequenced
sources:
  jobs:
    where: job.status != "ABORTED"
    tail: 20
pages:
  - title: Home
    path: /
themes:
  solar:
    accent: "#b58900"
    border_style: thick
theme:
  default: solar
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://orchest.example.com", cfg.Backend.URL)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout.Std())
	assert.Equal(t, "/async/pipelines", cfg.Backend.Endpoints.Pipelines.Path, "untouched keys keep defaults")
	assert.Equal(t, "Command search", cfg.Palette.Placeholder)
	assert.Equal(t, 5, cfg.Palette.MaxVisible)
	assert.Equal(t, "emacs", cfg.Palette.KeyMode)
	assert.Equal(t, `job.status != "ABORTED"`, cfg.Sources.Jobs.Where)
	assert.Equal(t, 20, cfg.Sources.Jobs.Tail)
	assert.Len(t, cfg.Pages, 1, "lists are replaced")
	assert.Contains(t, cfg.Themes, "dark", "themes are merged by name")

	th, err := cfg.ActiveTheme()
	require.NoError(t, err)
	assert.Equal(t, "#b58900", th.Accent)

	filters, err := cfg.Filters()
	require.NoError(t, err)
	assert.NotNil(t, filters.Jobs.Where)
	assert.Nil(t, filters.Projects.Where)
	assert.Equal(t, 20, filters.Jobs.Limit.Tail)
}

func TestLoadTOMLOverlay(t *testing.T) {
	path := writeFile(t, "config.toml", `[backend]
fixture = "inventory.yaml"
timeout = "2s"

[sources.pipelines]
limit = 3
offset = 1

[palette]
open_on_start = true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "inventory.yaml", cfg.Backend.Fixture)
	assert.Equal(t, 2*time.Second, cfg.Backend.Timeout.Std())
	assert.Equal(t, 3, cfg.Sources.Pipelines.Limit)
	assert.Equal(t, 1, cfg.Sources.Pipelines.Offset)
	assert.True(t, cfg.Palette.OpenOnStart)
	assert.Equal(t, 10, cfg.Palette.MaxVisible)

	src, err := cfg.Source()
	require.NoError(t, err)
	fixture, ok := src.(*orchest.FixtureSource)
	require.True(t, ok)
	assert.Equal(t, "inventory.yaml", fixture.Path())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		body   string
		errMsg string
	}{
		{"bad key mode", "c.yaml", "palette:\n  key_mode: helix\n", "invalid key mode"},
		{"bad consistency", "c.yaml", "registry:\n  consistency: eventual\n", "unknown registry consistency"},
		{"bad where", "c.yaml", "sources:\n  projects:\n    where: 'project.path =='\n", "sources.projects.where"},
		{"limit and tail", "c.yaml", "sources:\n  jobs:\n    limit: 1\n    tail: 1\n", "mutually exclusive"},
		{"relative page path", "c.yaml", "pages:\n  - title: X\n    path: x\n", "must start with '/'"},
		{"zero max visible", "c.yaml", "palette:\n  max_visible: 0\n", "max_visible"},
		{"no backend", "c.yaml", "backend:\n  url: \"\"\n", "either url or fixture"},
		{"unknown theme", "c.yaml", "theme:\n  default: neon\n", `theme "neon" not found`},
		{"bad duration", "c.yaml", "backend:\n  timeout: soon\n", "invalid duration"},
		{"bad toml", "c.toml", "[backend\n", "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEmptyFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "config.yaml", "\n"))
	require.NoError(t, err)
	assert.Equal(t, "cmdk", cfg.App.Name)
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, "/explicit.yaml", ResolvePath("/explicit.yaml"))

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	assert.Empty(t, ResolvePath(""))

	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "cmdk"), 0o755))
	tomlPath := filepath.Join(xdg, "cmdk", "config.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("[palette]\n"), 0o600))
	assert.Equal(t, tomlPath, ResolvePath(""))

	yamlPath := filepath.Join(xdg, "cmdk", "config.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("palette: {}\n"), 0o600))
	assert.Equal(t, yamlPath, ResolvePath(""), "yaml is preferred")
}

func TestDurationRoundTrip(t *testing.T) {
	out, err := yaml.Marshal(struct {
		Timeout Duration `yaml:"timeout"`
	}{Duration(90 * time.Second)})
	require.NoError(t, err)
	assert.Equal(t, "timeout: 1m30s\n", string(out))
}

func TestAggregatorFromFixture(t *testing.T) {
	inv := writeFile(t, "inventory.json", `{"projects": [{"uuid": "p1", "path": "/a"}], "jobs": [{"uuid": "j1", "name": "N", "status": "DRAFT", "project_uuid": "p1"}]}`)
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Backend.Fixture = inv

	agg, err := cfg.Aggregator()
	require.NoError(t, err)
	snap := agg.Build(context.Background())
	require.Len(t, snap.Commands, 9)
	assert.Equal(t, "Project: /a", snap.Commands[7].Title)
	assert.Equal(t, "Edit job: N [/a]", snap.Commands[8].Title)
}

func TestSourceHTTP(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	src, err := cfg.Source()
	require.NoError(t, err)
	_, ok := src.(*orchest.Client)
	assert.True(t, ok)

	cfg.Backend.URL = "not a url"
	_, err = cfg.Source()
	require.Error(t, err)
}
