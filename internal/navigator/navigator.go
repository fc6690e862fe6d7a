// Package navigator is the palette's state machine: whether it is open,
// which keyboard scope is active, which level of the command tree is shown,
// the live query and the selected row.
//
// A Navigator is not safe for concurrent use; the UI drives it from its
// event loop.
package navigator

import (
	"github.com/oakwood-commons/cmdk/internal/command"
)

// State is the palette's visibility.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Scope selects which key bindings are live.
type Scope string

const (
	// ScopeAll holds the global open hotkeys.
	ScopeAll Scope = "all"
	// ScopeCommand holds the in-palette navigation keys.
	ScopeCommand Scope = "command"
)

// Action is a navigation input.
type Action int

const (
	Down Action = iota
	Up
	PageUp
	PageDown
	Enter
	Escape
)

var actionNames = map[Action]string{
	Down:     "down",
	Up:       "up",
	PageUp:   "page-up",
	PageDown: "page-down",
	Enter:    "enter",
	Escape:   "escape",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Effect is work the host must do after a transition.
type Effect struct {
	// Refresh asks for the registry to be rebuilt in the background.
	Refresh bool
	// Navigate, when set, is the location the host should show.
	Navigate *command.Target
}

// IsZero reports whether there is nothing to do.
func (e Effect) IsZero() bool {
	return !e.Refresh && e.Navigate == nil
}

// Navigator holds the palette state.
type Navigator struct {
	state    State
	scope    Scope
	root     []command.Command
	level    []command.Command
	drilled  bool
	query    string
	selected int
	viewport Viewport
}

// New returns a closed navigator over root showing height rows at a time.
func New(root []command.Command, height int) *Navigator {
	return &Navigator{
		state:    Closed,
		scope:    ScopeAll,
		root:     root,
		level:    root,
		viewport: Viewport{Height: height},
	}
}

func (n *Navigator) State() State       { return n.state }
func (n *Navigator) IsOpen() bool       { return n.state == Open }
func (n *Navigator) Scope() Scope       { return n.scope }
func (n *Navigator) Query() string      { return n.query }
func (n *Navigator) Selected() int      { return n.selected }
func (n *Navigator) Drilled() bool      { return n.drilled }
func (n *Navigator) Viewport() Viewport { return n.viewport }

// Level returns the commands of the level being shown, before filtering.
func (n *Navigator) Level() []command.Command {
	return n.level
}

// Root returns the latest root commands.
func (n *Navigator) Root() []command.Command {
	return n.root
}

// Filtered returns the visible rows. It is derived on every call and never
// cached.
func (n *Navigator) Filtered() []command.Command {
	return command.Filter(n.level, n.query)
}

// SelectedCommand returns the highlighted row, if any.
func (n *Navigator) SelectedCommand() (command.Command, bool) {
	rows := n.Filtered()
	if n.selected < 0 || n.selected >= len(rows) {
		return command.Command{}, false
	}
	return rows[n.selected], true
}

// Open shows the palette and activates the command scope. It reports
// whether the state changed.
func (n *Navigator) Open() bool {
	if n.state == Open {
		return false
	}
	n.state = Open
	n.scope = ScopeCommand
	n.select0()
	return true
}

// Close hides the palette and resets it to the root level with an empty
// query. Closing an open palette asks for a registry refresh.
func (n *Navigator) Close() Effect {
	if n.state == Closed {
		return Effect{}
	}
	n.state = Closed
	n.scope = ScopeAll
	n.level = n.root
	n.drilled = false
	n.query = ""
	n.select0()
	return Effect{Refresh: true}
}

// Handle applies a navigation action. Actions are ignored while closed.
func (n *Navigator) Handle(a Action) Effect {
	if n.state != Open {
		return Effect{}
	}
	count := len(n.Filtered())
	switch a {
	case Down:
		if n.selected < count-1 {
			n.setSelected(n.selected + 1)
		}
	case Up:
		if n.selected > 0 {
			n.setSelected(n.selected - 1)
		}
	case PageUp:
		n.setSelected(0)
	case PageDown:
		if count > 0 {
			n.setSelected(count - 1)
		}
	case Enter:
		return n.execute()
	case Escape:
		return n.Close()
	}
	return Effect{}
}

// SetQuery replaces the live query. The level is unchanged and the
// selection returns to the first row. A closed palette has no query, so the
// call is ignored until Open.
func (n *Navigator) SetQuery(q string) {
	if n.state != Open || q == n.query {
		return
	}
	n.query = q
	n.select0()
}

// ActivateAt selects row i and executes it, as a pointer click does.
// Indexes outside the visible rows are ignored.
func (n *Navigator) ActivateAt(i int) Effect {
	if n.state != Open || i < 0 || i >= len(n.Filtered()) {
		return Effect{}
	}
	n.setSelected(i)
	return n.execute()
}

// SetRoot installs a freshly published root list. The visible level follows
// it only while the user has not drilled into a group.
func (n *Navigator) SetRoot(cmds []command.Command) {
	n.root = cmds
	if n.drilled {
		return
	}
	n.level = cmds
	n.select0()
}

// SetHeight changes how many rows are visible at once.
func (n *Navigator) SetHeight(h int) {
	n.viewport.Height = h
	n.viewport.EnsureVisible(n.selected, len(n.Filtered()))
}

func (n *Navigator) execute() Effect {
	cmd, ok := n.SelectedCommand()
	if !ok {
		return Effect{}
	}
	switch cmd.Action {
	case command.OpenList:
		n.level = cmd.Children
		n.drilled = true
		n.query = ""
		n.select0()
		return Effect{}
	case command.OpenPage:
		// The palette is hidden before the host moves.
		eff := n.Close()
		if cmd.Target != nil {
			target := *cmd.Target
			eff.Navigate = &target
		}
		return eff
	default:
		return Effect{}
	}
}

func (n *Navigator) select0() {
	n.selected = 0
	n.viewport.Offset = 0
}

func (n *Navigator) setSelected(i int) {
	n.selected = i
	if n.state == Open {
		n.viewport.EnsureVisible(i, len(n.Filtered()))
	}
}
