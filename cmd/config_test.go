package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/cmdk/internal/config"
)

func TestConfigPrintsMergedYAML(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("palette:\n  max_visible: 4\n  key_mode: vim\n"), 0o600))

	out, err := execute(t, "config", "--config-file", cfgPath)
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, 4, cfg.Palette.MaxVisible)
	assert.Equal(t, "vim", cfg.Palette.KeyMode)
	assert.Equal(t, "http://localhost:8000", cfg.Backend.URL, "defaults survive the merge")
	assert.NotEmpty(t, cfg.Pages)
}

func TestConfigFormats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{format: "json", want: `"max_visible": 10`},
		{format: "toml", want: "[palette]"},
		{format: "YAML", want: "max_visible: 10"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := execute(t, "config", "-o", tt.format)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}

	_, err := execute(t, "config", "-o", "table")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid: yaml|json|toml")
}

func TestConfigThemes(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("theme:\n  default: mono\nthemes:\n  mono:\n    accent: \"15\"\n"), 0o600))

	out, err := execute(t, "config", "themes", "--config-file", cfgPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Contains(t, lines, "* mono")
	assert.Contains(t, lines, "  dark")
}
