// Package ui is the terminal host for the command palette: a location view
// that the palette overlays, driven by the navigator through the bubbletea
// event loop.
package ui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/cmdk/internal/command"
	"github.com/oakwood-commons/cmdk/internal/keymap"
	"github.com/oakwood-commons/cmdk/internal/navigator"
	"github.com/oakwood-commons/cmdk/internal/registry"
	"github.com/oakwood-commons/cmdk/pkg/logger"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// hostPanelHeight is the bordered location view above the palette.
	hostPanelHeight = 4
	// paletteChrome is the palette border plus its input and status lines.
	paletteChrome = 4

	defaultPlaceholder = "Command search"
	selectedMarker     = "▸ "
	groupSuffix        = " ›"
)

// Options configures a Model.
type Options struct {
	AppName string
	Store   *registry.Store
	Builder registry.Builder
	Keymap  *keymap.Keymap
	Theme   Theme
	NoColor bool

	Placeholder string
	// MaxVisible caps the palette rows; the window height may lower it.
	MaxVisible int
	// OpenOnStart shows the palette as soon as the program starts.
	OpenOnStart bool
	// ExitOnNavigate quits after the first page command runs.
	ExitOnNavigate bool
	// Location is where the host starts.
	Location command.Target
}

// snapshotMsg reports a finished refresh.
type snapshotMsg struct {
	snap      registry.Snapshot
	published bool
}

// Model is the bubbletea model hosting the palette.
type Model struct {
	ctx  context.Context
	log  logr.Logger
	opts Options
	st   styles

	nav     *navigator.Navigator
	input   textinput.Model
	spinner spinner.Model

	// inflight counts refreshes whose snapshotMsg has not arrived.
	inflight int
	seq      uint64

	location  command.Target
	navigated bool
	width     int
	height    int
	quitting  bool
}

// NewModel builds a Model over the store's current snapshot. The logger is
// taken from ctx; ctx also bounds every refresh.
func NewModel(ctx context.Context, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.MaxVisible <= 0 {
		opts.MaxVisible = 10
	}
	if strings.TrimSpace(opts.Placeholder) == "" {
		opts.Placeholder = defaultPlaceholder
	}
	if opts.Location.Path == "" {
		opts.Location.Path = "/"
	}
	if opts.Theme == (Theme{}) {
		opts.Theme = fallbackDefaultTheme()
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = opts.Placeholder
	ti.CharLimit = 200
	ti.SetWidth(defaultWidth - 6)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	cur := opts.Store.Current()
	m := &Model{
		ctx:      ctx,
		log:      logger.FromContext(ctx).WithName("ui"),
		opts:     opts,
		st:       newStyles(opts.Theme, opts.NoColor),
		nav:      navigator.New(cur.Commands, opts.MaxVisible),
		input:    ti,
		spinner:  sp,
		seq:      cur.Seq,
		location: opts.Location,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.resize()
	if opts.OpenOnStart {
		m.open()
	}
	return m
}

// Navigator exposes the palette state.
func (m *Model) Navigator() *navigator.Navigator {
	return m.nav
}

// Location returns the host's current location.
func (m *Model) Location() command.Target {
	return m.location
}

// Navigated reports whether a page command has moved the host.
func (m *Model) Navigated() bool {
	return m.navigated
}

// Refreshing reports whether a registry refresh is in flight.
func (m *Model) Refreshing() bool {
	return m.inflight > 0
}

// Init builds the registry in the background, as on mount.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.refresh()}
	if m.nav.IsOpen() {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case snapshotMsg:
		if m.inflight > 0 {
			m.inflight--
		}
		m.applySnapshot()
		return m, nil

	case spinner.TickMsg:
		if m.inflight == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseClickMsg:
		return m.handleClick(msg)
	}

	if m.nav.IsOpen() {
		return m, m.updateInput(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	match := m.opts.Keymap.Dispatch(m.nav.Scope(), key)
	if match.Handled() {
		if match.Open {
			return m, m.open()
		}
		return m, m.apply(keymap.Apply(m.nav, match))
	}

	if !m.nav.IsOpen() {
		if key == "q" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	return m, m.updateInput(msg)
}

// updateInput feeds msg to the text input and carries any edit, typed or
// pasted, into the navigator's query.
func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.nav.SetQuery(m.input.Value())
	return cmd
}

func (m *Model) handleClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	if !m.nav.IsOpen() || mouse.Button != tea.MouseLeft {
		return m, nil
	}
	row, ok := m.nav.Viewport().RowAt(mouse.Y-m.listTop(), len(m.nav.Filtered()))
	if !ok {
		return m, nil
	}
	return m, m.apply(m.nav.ActivateAt(row))
}

// open shows the palette with a focused, empty input.
func (m *Model) open() tea.Cmd {
	if !m.nav.Open() {
		return nil
	}
	m.log.V(1).Info("palette opened", "commands", len(m.nav.Root()))
	m.input.Reset()
	return m.input.Focus()
}

// apply carries out a navigator effect.
func (m *Model) apply(eff navigator.Effect) tea.Cmd {
	m.syncInput()
	if eff.IsZero() {
		return nil
	}
	var cmds []tea.Cmd
	if eff.Refresh {
		cmds = append(cmds, m.refresh())
	}
	if eff.Navigate != nil {
		m.location = *eff.Navigate
		m.navigated = true
		m.log.V(1).Info("navigate", "location", m.location.URL())
		if m.opts.ExitOnNavigate {
			m.quitting = true
			cmds = append(cmds, tea.Quit)
		}
	}
	return tea.Batch(cmds...)
}

// syncInput makes the text input mirror the navigator after a transition
// that reset the query.
func (m *Model) syncInput() {
	if !m.nav.IsOpen() {
		m.input.Reset()
		m.input.Blur()
		return
	}
	if m.input.Value() != m.nav.Query() {
		m.input.SetValue(m.nav.Query())
	}
}

// refresh starts a background rebuild. Overlapping refreshes are not
// cancelled; the store decides which one wins.
func (m *Model) refresh() tea.Cmd {
	if m.opts.Builder == nil {
		return nil
	}
	ctx, store, builder := m.ctx, m.opts.Store, m.opts.Builder
	m.inflight++
	build := func() tea.Msg {
		snap, published := store.Refresh(ctx, builder)
		return snapshotMsg{snap: snap, published: published}
	}
	if m.inflight == 1 {
		return tea.Batch(build, m.spinner.Tick)
	}
	return build
}

// applySnapshot hands a newly published root to the navigator.
func (m *Model) applySnapshot() {
	cur := m.opts.Store.Current()
	if cur.Seq == m.seq {
		return
	}
	m.seq = cur.Seq
	m.nav.SetRoot(cur.Commands)
}

func (m *Model) resize() {
	rows := m.opts.MaxVisible
	if avail := m.height - hostPanelHeight - paletteChrome; avail < rows {
		rows = avail
	}
	if rows < 1 {
		rows = 1
	}
	m.nav.SetHeight(rows)
	if w := m.width - 2 - runewidth.StringWidth(m.input.Prompt) - 1; w > 0 {
		m.input.SetWidth(w)
	}
}

// listTop is the screen row of the first palette row.
func (m *Model) listTop() int {
	return hostPanelHeight + 2
}

func (m *Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// render draws the full frame as a string.
func (m *Model) render() string {
	border := borderForStyle(m.opts.Theme.BorderStyle)
	parts := []string{m.renderHost(border)}
	if m.nav.IsOpen() {
		parts = append(parts, m.renderPalette(border))
	}
	view := strings.Join(parts, "\n")
	if m.opts.NoColor {
		view = stripANSIExceptInverse(view)
	}
	return view
}

func (m *Model) renderHost(border lipgloss.Border) string {
	title := m.opts.AppName
	if title == "" {
		title = "cmdk"
	}
	location := m.st.text.Render("Location: " + m.location.URL())

	var status string
	switch {
	case m.inflight > 0:
		status = m.spinner.View() + m.st.muted.Render(" refreshing commands")
	case m.nav.IsOpen():
		status = m.st.muted.Render(fmt.Sprintf("%d commands", len(m.nav.Level())))
	default:
		status = m.st.muted.Render(fmt.Sprintf("%d commands, press %s to search", len(m.nav.Root()), m.openHint()))
	}
	return panelWithTitle(title, location+"\n"+status, m.width, hostPanelHeight, border, m.st)
}

func (m *Model) renderPalette(border lipgloss.Border) string {
	inner := m.width - 2
	rows := m.nav.Filtered()
	vp := m.nav.Viewport()
	start, end := vp.Window(len(rows))

	lines := make([]string, 0, vp.Height+2)
	lines = append(lines, m.input.View())
	if len(rows) == 0 {
		lines = append(lines, m.st.muted.Render("  No matching commands"))
	}
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(rows[i], i == m.nav.Selected(), inner))
	}
	for len(lines) < vp.Height+1 {
		lines = append(lines, "")
	}

	counter := "0/0"
	if len(rows) > 0 {
		counter = fmt.Sprintf("%d/%d", m.nav.Selected()+1, len(rows))
	}
	lines = append(lines, m.st.muted.Render(counter))

	title := "Commands"
	if m.nav.Drilled() {
		title = "Commands ›"
	}
	return panelWithTitle(title, strings.Join(lines, "\n"), m.width, vp.Height+paletteChrome, border, m.st)
}

func (m *Model) renderRow(cmd command.Command, selected bool, width int) string {
	suffix := ""
	if cmd.IsGroup() {
		suffix = groupSuffix
	}
	avail := width - runewidth.StringWidth(selectedMarker) - runewidth.StringWidth(suffix)
	title := runewidth.Truncate(cmd.Title, avail, "…")
	if !selected {
		return "  " + m.st.text.Render(title) + m.st.muted.Render(suffix)
	}
	row := title + suffix
	if pad := width - runewidth.StringWidth(selectedMarker) - runewidth.StringWidth(row); pad > 0 {
		row += strings.Repeat(" ", pad)
	}
	return m.st.marker.Render(selectedMarker) + m.st.selected.Render(row)
}

func (m *Model) openHint() string {
	for _, b := range m.opts.Keymap.Bindings() {
		if b.Scope == navigator.ScopeAll {
			return b.Key
		}
	}
	return "ctrl+k"
}
