package ui

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

// RunConfig configures an interactive session.
type RunConfig struct {
	// Width and Height force the window size; 0 auto-detects.
	Width  int
	Height int
	// StartKeys are replayed before the first frame.
	StartKeys []string
}

// Run starts the TUI and blocks until it exits. The returned model holds
// the final host location. Extra ProgramOptions (e.g., custom IO) are
// passed through to tea.NewProgram.
func Run(ctx context.Context, m *Model, cfg RunConfig, opts ...tea.ProgramOption) (*Model, error) {
	if cfg.Width > 0 || cfg.Height > 0 {
		w, h := detectSize(cfg.Width, cfg.Height)
		m.Update(tea.WindowSizeMsg{Width: w, Height: h})
		opts = append(opts, tea.WithWindowSize(w, h))
	}
	if len(cfg.StartKeys) > 0 {
		ApplyStartupKeys(m, cfg.StartKeys)
	}
	opts = append(opts, tea.WithContext(ctx))

	prog := tea.NewProgram(m, opts...)
	final, err := prog.Run()
	if fm, ok := final.(*Model); ok && fm != nil {
		m = fm
	}
	if err != nil {
		return m, fmt.Errorf("run palette: %w", err)
	}
	return m, nil
}

// SnapshotConfig configures a single rendered frame.
type SnapshotConfig struct {
	Width     int
	Height    int
	StartKeys []string
}

// RenderSnapshot replays the start keys against m and returns one frame
// padded to the requested height. Snapshots never run commands, so the
// registry must already be built.
func RenderSnapshot(m *Model, cfg SnapshotConfig) string {
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	ApplyStartupKeys(m, cfg.StartKeys)
	// Refreshes requested by the replayed keys never ran.
	m.inflight = 0
	m.applySnapshot()
	return padSnapshotHeight(m.render(), cfg.Height, w)
}

// detectSize fills a zero dimension from the terminal, then from defaults.
func detectSize(width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if width <= 0 {
				width = w
			}
			if height <= 0 {
				height = h
			}
		}
	}
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}
