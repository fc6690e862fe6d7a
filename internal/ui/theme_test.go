package ui

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/oakwood-commons/cmdk/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeFromConfig(t *testing.T) {
	th := ThemeFromConfig(config.ThemeConfig{Accent: "#ff0000", BorderStyle: "Round"})
	base := fallbackDefaultTheme()

	assert.Equal(t, lipgloss.Color("#ff0000"), th.Accent)
	assert.Equal(t, base.Text, th.Text, "unset colors fall back")
	assert.Equal(t, base.SelectedBG, th.SelectedBG)
	assert.Equal(t, "rounded", th.BorderStyle)
}

func TestThemeFromDefaultConfig(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	for _, name := range cfg.ThemeNames() {
		th := ThemeFromConfig(cfg.Themes[name])
		assert.NotNil(t, th.Accent, name)
		assert.Contains(t, []string{"normal", "rounded"}, th.BorderStyle, name)
	}
}

func TestNormalizeBorderStyle(t *testing.T) {
	tests := map[string]string{
		"":          "normal",
		"square":    "normal",
		" ROUNDED ": "rounded",
		"round":     "rounded",
		"double":    "normal",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeBorderStyle(in), in)
	}
	assert.Equal(t, lipgloss.RoundedBorder(), borderForStyle("rounded"))
	assert.Equal(t, lipgloss.NormalBorder(), borderForStyle("bogus"))
}
