package keymap

import (
	"testing"

	"github.com/oakwood-commons/cmdk/internal/command"
	"github.com/oakwood-commons/cmdk/internal/navigator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchDefault(t *testing.T) {
	k, err := New(ModeDefault, nil)
	require.NoError(t, err)

	tests := []struct {
		name  string
		scope navigator.Scope
		key   string
		want  Match
	}{
		{"ctrl+k opens from all", navigator.ScopeAll, "ctrl+k", Match{Open: true}},
		{"super+k opens from all", navigator.ScopeAll, "super+k", Match{Open: true}},
		{"hotkey live in command scope", navigator.ScopeCommand, "ctrl+k", Match{Open: true}},
		{"arrows ignored in all", navigator.ScopeAll, "down", Match{}},
		{"down", navigator.ScopeCommand, "down", Match{Action: navigator.Down, HasAction: true}},
		{"up", navigator.ScopeCommand, "up", Match{Action: navigator.Up, HasAction: true}},
		{"pgup", navigator.ScopeCommand, "pgup", Match{Action: navigator.PageUp, HasAction: true}},
		{"pgdown", navigator.ScopeCommand, "pgdown", Match{Action: navigator.PageDown, HasAction: true}},
		{"esc", navigator.ScopeCommand, "esc", Match{Action: navigator.Escape, HasAction: true}},
		{"enter", navigator.ScopeCommand, "enter", Match{Action: navigator.Enter, HasAction: true}},
		{"letters fall through to the query", navigator.ScopeCommand, "j", Match{}},
		{"emacs keys off by default", navigator.ScopeCommand, "ctrl+n", Match{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := k.Dispatch(tt.scope, tt.key)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Open || tt.want.HasAction, got.Handled())
		})
	}
}

func TestDispatchModes(t *testing.T) {
	vim, err := New(ModeVim, nil)
	require.NoError(t, err)
	assert.Equal(t, Match{Action: navigator.Up, HasAction: true}, vim.Dispatch(navigator.ScopeCommand, "ctrl+k"),
		"navigation keys win inside the palette")
	assert.Equal(t, Match{Open: true}, vim.Dispatch(navigator.ScopeAll, "ctrl+k"))
	assert.Equal(t, Match{Action: navigator.PageDown, HasAction: true}, vim.Dispatch(navigator.ScopeCommand, "ctrl+d"))

	emacs, err := New(ModeEmacs, nil)
	require.NoError(t, err)
	assert.Equal(t, Match{Action: navigator.Down, HasAction: true}, emacs.Dispatch(navigator.ScopeCommand, "ctrl+n"))
	assert.Equal(t, Match{Action: navigator.Escape, HasAction: true}, emacs.Dispatch(navigator.ScopeCommand, "ctrl+g"))
	assert.Equal(t, ModeEmacs, emacs.Mode())
}

func TestCustomHotkeys(t *testing.T) {
	k, err := New("", []string{" Ctrl+P "})
	require.NoError(t, err)
	assert.Equal(t, ModeDefault, k.Mode())
	assert.True(t, k.Dispatch(navigator.ScopeAll, "ctrl+p").Open)
	assert.False(t, k.Dispatch(navigator.ScopeAll, "ctrl+k").Open)

	_, err = New(ModeDefault, []string{""})
	require.Error(t, err)
	_, err = New("helix", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid key mode")
}

func TestApplyDrivesNavigator(t *testing.T) {
	k, err := New(ModeDefault, nil)
	require.NoError(t, err)
	nav := navigator.New([]command.Command{
		command.Page("Page: Projects", "/projects", nil),
		command.Page("Page: Jobs", "/jobs", nil),
	}, 5)

	press := func(key string) navigator.Effect {
		return Apply(nav, k.Dispatch(nav.Scope(), key))
	}

	assert.True(t, press("down").IsZero())
	assert.False(t, nav.IsOpen())

	press("ctrl+k")
	require.True(t, nav.IsOpen())
	press("down")
	assert.Equal(t, 1, nav.Selected())

	eff := press("enter")
	require.NotNil(t, eff.Navigate)
	assert.Equal(t, "/jobs", eff.Navigate.Path)
	assert.Equal(t, navigator.ScopeAll, nav.Scope())
	assert.True(t, press("x").IsZero())
}

func TestBindings(t *testing.T) {
	k, err := New(ModeDefault, nil)
	require.NoError(t, err)
	b := k.Bindings()
	require.Len(t, b, 8)
	assert.Equal(t, Binding{Key: "ctrl+k", Scope: navigator.ScopeAll, Help: "open palette"}, b[0])
	assert.Equal(t, Binding{Key: "down", Scope: navigator.ScopeCommand, Help: "down"}, b[2])
}

func TestIsValidMode(t *testing.T) {
	assert.True(t, IsValidMode("vim"))
	assert.False(t, IsValidMode("function"))
}
