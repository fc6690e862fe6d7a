// Package config holds cmdk's configuration schema, the embedded defaults
// and the merge of a user file on top of them.
package config

import (
	"fmt"
	"time"

	"github.com/oakwood-commons/cmdk/internal/limiter"
	"github.com/oakwood-commons/cmdk/internal/orchest"
	"github.com/oakwood-commons/cmdk/internal/routes"
)

// Config is the merged configuration.
type Config struct {
	App      AppConfig              `yaml:"app" json:"app" toml:"app"`
	Backend  BackendConfig          `yaml:"backend" json:"backend" toml:"backend"`
	Palette  PaletteConfig          `yaml:"palette" json:"palette" toml:"palette"`
	Registry RegistryConfig         `yaml:"registry" json:"registry" toml:"registry"`
	Sources  SourcesConfig          `yaml:"sources" json:"sources" toml:"sources"`
	Pages    []routes.Page          `yaml:"pages" json:"pages" toml:"pages"`
	Theme    ThemeSelection         `yaml:"theme" json:"theme" toml:"theme"`
	Themes   map[string]ThemeConfig `yaml:"themes" json:"themes" toml:"themes"`
}

// AppConfig describes the application in help and version output.
type AppConfig struct {
	Name        string `yaml:"name" json:"name" toml:"name"`
	Description string `yaml:"description" json:"description" toml:"description"`
}

// BackendConfig selects where records come from. A non-empty Fixture wins
// over URL.
type BackendConfig struct {
	URL       string            `yaml:"url" json:"url" toml:"url"`
	Timeout   Duration          `yaml:"timeout" json:"timeout" toml:"timeout"`
	Endpoints orchest.Endpoints `yaml:"endpoints" json:"endpoints" toml:"endpoints"`
	Fixture   string            `yaml:"fixture,omitempty" json:"fixture,omitempty" toml:"fixture,omitempty"`
}

// PaletteConfig controls the palette overlay.
type PaletteConfig struct {
	Hotkeys        []string `yaml:"hotkeys" json:"hotkeys" toml:"hotkeys"`
	Placeholder    string   `yaml:"placeholder" json:"placeholder" toml:"placeholder"`
	MaxVisible     int      `yaml:"max_visible" json:"max_visible" toml:"max_visible"`
	KeyMode        string   `yaml:"key_mode" json:"key_mode" toml:"key_mode"`
	OpenOnStart    bool     `yaml:"open_on_start" json:"open_on_start" toml:"open_on_start"`
	ExitOnNavigate bool     `yaml:"exit_on_navigate" json:"exit_on_navigate" toml:"exit_on_navigate"`
}

// RegistryConfig controls how refreshes are published.
type RegistryConfig struct {
	Consistency string `yaml:"consistency" json:"consistency" toml:"consistency"`
}

// SourceConfig narrows one record source.
type SourceConfig struct {
	Where          string `yaml:"where,omitempty" json:"where,omitempty" toml:"where,omitempty"`
	limiter.Config `yaml:",inline"`
}

// SourcesConfig holds the per-source narrowing rules.
type SourcesConfig struct {
	Projects  SourceConfig `yaml:"projects" json:"projects" toml:"projects"`
	Pipelines SourceConfig `yaml:"pipelines" json:"pipelines" toml:"pipelines"`
	Jobs      SourceConfig `yaml:"jobs" json:"jobs" toml:"jobs"`
}

// ThemeSelection names the active theme.
type ThemeSelection struct {
	Default string `yaml:"default" json:"default" toml:"default"`
}

// ThemeConfig is a named color set. Colors are ANSI indexes ("81") or hex
// ("#5fd7ff").
type ThemeConfig struct {
	Accent      string `yaml:"accent" json:"accent" toml:"accent"`
	Text        string `yaml:"text" json:"text" toml:"text"`
	Muted       string `yaml:"muted" json:"muted" toml:"muted"`
	SelectedFG  string `yaml:"selected_fg" json:"selected_fg" toml:"selected_fg"`
	SelectedBG  string `yaml:"selected_bg" json:"selected_bg" toml:"selected_bg"`
	Error       string `yaml:"error" json:"error" toml:"error"`
	BorderStyle string `yaml:"border_style" json:"border_style" toml:"border_style"`
}

// Duration is a time.Duration written as "30s" or "1m" in config files.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty value is zero.
func (d *Duration) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
