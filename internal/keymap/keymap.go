// Package keymap resolves key presses to palette inputs for the active
// keyboard scope.
package keymap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oakwood-commons/cmdk/internal/navigator"
)

// Mode selects the extra navigation keys layered over the defaults.
type Mode string

const (
	// ModeDefault binds arrows, page keys, enter and escape only.
	ModeDefault Mode = "default"
	// ModeVim adds ctrl+j/ctrl+k line moves and ctrl+d/ctrl+u page moves.
	ModeVim Mode = "vim"
	// ModeEmacs adds ctrl+n/ctrl+p line moves, ctrl+v/alt+v page moves and ctrl+g to close.
	ModeEmacs Mode = "emacs"
)

// ValidModes lists all valid key modes for validation.
var ValidModes = []Mode{ModeDefault, ModeVim, ModeEmacs}

// IsValidMode checks if a key mode string is valid.
func IsValidMode(mode string) bool {
	for _, m := range ValidModes {
		if string(m) == mode {
			return true
		}
	}
	return false
}

// DefaultHotkeys open the palette from any scope.
var DefaultHotkeys = []string{"ctrl+k", "super+k"}

// commandBindings are live while the palette has focus.
var commandBindings = map[string]navigator.Action{
	"down":   navigator.Down,
	"up":     navigator.Up,
	"pgup":   navigator.PageUp,
	"pgdown": navigator.PageDown,
	"esc":    navigator.Escape,
	"enter":  navigator.Enter,
}

var vimBindings = map[string]navigator.Action{
	"ctrl+j": navigator.Down,
	"ctrl+k": navigator.Up,
	"ctrl+u": navigator.PageUp,
	"ctrl+d": navigator.PageDown,
}

var emacsBindings = map[string]navigator.Action{
	"ctrl+n": navigator.Down,
	"ctrl+p": navigator.Up,
	"alt+v":  navigator.PageUp,
	"ctrl+v": navigator.PageDown,
	"ctrl+g": navigator.Escape,
}

// Match is the outcome of a key press.
type Match struct {
	// Open asks for the palette to be shown.
	Open bool
	// Action is valid when HasAction is set.
	Action    navigator.Action
	HasAction bool
}

// Handled reports whether the key was bound.
func (m Match) Handled() bool {
	return m.Open || m.HasAction
}

// Binding describes one key for help output.
type Binding struct {
	Key   string
	Scope navigator.Scope
	Help  string
}

// Keymap holds the bindings for both scopes.
type Keymap struct {
	mode    Mode
	open    map[string]bool
	command map[string]navigator.Action
}

// New builds a Keymap for mode with the given open hotkeys. An empty mode
// means ModeDefault and no hotkeys means DefaultHotkeys.
func New(mode Mode, hotkeys []string) (*Keymap, error) {
	if mode == "" {
		mode = ModeDefault
	}
	if !IsValidMode(string(mode)) {
		return nil, fmt.Errorf("invalid key mode %q (valid: default, vim, emacs)", mode)
	}
	if len(hotkeys) == 0 {
		hotkeys = DefaultHotkeys
	}

	k := &Keymap{
		mode:    mode,
		open:    make(map[string]bool, len(hotkeys)),
		command: make(map[string]navigator.Action, len(commandBindings)+len(emacsBindings)),
	}
	for _, h := range hotkeys {
		key := normalize(h)
		if key == "" {
			return nil, fmt.Errorf("empty palette hotkey")
		}
		k.open[key] = true
	}
	for key, a := range commandBindings {
		k.command[key] = a
	}
	var extra map[string]navigator.Action
	switch mode {
	case ModeVim:
		extra = vimBindings
	case ModeEmacs:
		extra = emacsBindings
	case ModeDefault:
	}
	for key, a := range extra {
		k.command[key] = a
	}
	return k, nil
}

// Mode returns the key mode.
func (k *Keymap) Mode() Mode {
	return k.mode
}

// Dispatch resolves key under scope. Open hotkeys are live in every scope;
// navigation keys only in ScopeCommand, where they take precedence.
func (k *Keymap) Dispatch(scope navigator.Scope, key string) Match {
	key = normalize(key)
	if scope == navigator.ScopeCommand {
		if a, ok := k.command[key]; ok {
			return Match{Action: a, HasAction: true}
		}
	}
	if k.open[key] {
		return Match{Open: true}
	}
	return Match{}
}

// Apply feeds a match into nav and returns the resulting effect.
func Apply(nav *navigator.Navigator, m Match) navigator.Effect {
	switch {
	case m.Open:
		nav.Open()
		return navigator.Effect{}
	case m.HasAction:
		return nav.Handle(m.Action)
	default:
		return navigator.Effect{}
	}
}

// Bindings lists every binding, ordered by scope then key.
func (k *Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(k.open)+len(k.command))
	for key := range k.open {
		out = append(out, Binding{Key: key, Scope: navigator.ScopeAll, Help: "open palette"})
	}
	for key, a := range k.command {
		out = append(out, Binding{Key: key, Scope: navigator.ScopeCommand, Help: a.String()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Scope != out[j].Scope {
			return out[i].Scope < out[j].Scope
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
