package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/oakwood-commons/cmdk/internal/command"
	"github.com/oakwood-commons/cmdk/internal/keymap"
	"github.com/oakwood-commons/cmdk/internal/orchest"
	"github.com/oakwood-commons/cmdk/internal/registry"
	"github.com/oakwood-commons/cmdk/internal/routes"
	"github.com/oakwood-commons/cmdk/internal/where"
)

// Validate checks every section that can be checked without I/O.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.PageCommands(); err != nil {
		errs = append(errs, fmt.Errorf("pages: %w", err))
	}
	if _, err := c.Filters(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Consistency(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Keymap(); err != nil {
		errs = append(errs, fmt.Errorf("palette: %w", err))
	}
	if c.Palette.MaxVisible < 1 {
		errs = append(errs, fmt.Errorf("palette.max_visible must be at least 1, got %d", c.Palette.MaxVisible))
	}
	if c.Backend.Timeout < 0 {
		errs = append(errs, fmt.Errorf("backend.timeout must be non-negative"))
	}
	if strings.TrimSpace(c.Backend.Fixture) == "" && strings.TrimSpace(c.Backend.URL) == "" {
		errs = append(errs, fmt.Errorf("backend: either url or fixture is required"))
	}
	if _, err := c.ActiveTheme(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// PageCommands builds the static page commands.
func (c Config) PageCommands() ([]command.Command, error) {
	return routes.PageCommands(c.Pages)
}

// Filters compiles the per-source predicates and limits.
func (c Config) Filters() (registry.Filters, error) {
	var f registry.Filters
	var err error
	if f.Projects, err = sourceFilter("project", registry.SourceProjects, c.Sources.Projects); err != nil {
		return f, err
	}
	if f.Pipelines, err = sourceFilter("pipeline", registry.SourcePipelines, c.Sources.Pipelines); err != nil {
		return f, err
	}
	if f.Jobs, err = sourceFilter("job", registry.SourceJobs, c.Sources.Jobs); err != nil {
		return f, err
	}
	return f, nil
}

func sourceFilter(variable, name string, sc SourceConfig) (registry.SourceFilter, error) {
	if err := sc.Config.Validate(); err != nil {
		return registry.SourceFilter{}, fmt.Errorf("sources.%s: %w", name, err)
	}
	pred, err := where.Compile(variable, sc.Where)
	if err != nil {
		return registry.SourceFilter{}, fmt.Errorf("sources.%s.where: %w", name, err)
	}
	return registry.SourceFilter{Where: pred, Limit: sc.Config}, nil
}

// Consistency parses registry.consistency.
func (c Config) Consistency() (registry.Consistency, error) {
	mode, err := registry.ParseConsistency(c.Registry.Consistency)
	if err != nil {
		return "", fmt.Errorf("registry: %w", err)
	}
	return mode, nil
}

// Keymap builds the palette key bindings.
func (c Config) Keymap() (*keymap.Keymap, error) {
	return keymap.New(keymap.Mode(c.Palette.KeyMode), c.Palette.Hotkeys)
}

// Source returns the record source: the fixture file when set, otherwise
// the HTTP client for backend.url.
func (c Config) Source() (registry.Source, error) {
	if fixture := strings.TrimSpace(c.Backend.Fixture); fixture != "" {
		return orchest.NewFixtureSource(fixture), nil
	}
	return orchest.NewClient(orchest.ClientConfig{
		BaseURL:   c.Backend.URL,
		Timeout:   c.Backend.Timeout.Std(),
		Endpoints: c.Backend.Endpoints,
	})
}

// Aggregator wires the source, pages and filters together.
func (c Config) Aggregator() (*registry.Aggregator, error) {
	src, err := c.Source()
	if err != nil {
		return nil, err
	}
	pages, err := c.PageCommands()
	if err != nil {
		return nil, err
	}
	filters, err := c.Filters()
	if err != nil {
		return nil, err
	}
	return registry.NewAggregator(src, pages, registry.WithFilters(filters)), nil
}

// ActiveTheme returns the theme named by theme.default.
func (c Config) ActiveTheme() (ThemeConfig, error) {
	name := strings.TrimSpace(c.Theme.Default)
	if name == "" {
		name = "dark"
	}
	th, ok := c.Themes[name]
	if !ok {
		return ThemeConfig{}, fmt.Errorf("theme %q not found (available: %s)", name, strings.Join(c.ThemeNames(), ", "))
	}
	return th, nil
}

// ThemeNames lists the configured theme names in sorted order.
func (c Config) ThemeNames() []string {
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
