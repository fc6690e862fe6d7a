package ui

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/cmdk/internal/config"
)

// Theme defines the colors used by the host view and the palette.
type Theme struct {
	Accent      color.Color // Panel titles and the selection marker
	Text        color.Color // Command titles
	Muted       color.Color // Borders, hints and counters
	SelectedFG  color.Color // Selected row foreground
	SelectedBG  color.Color // Selected row background
	Error       color.Color // Status messages for failures
	BorderStyle string      // Border style (normal|rounded)
}

// fallbackDefaultTheme is used for any color a theme leaves unset.
func fallbackDefaultTheme() Theme {
	return Theme{
		Accent:      lipgloss.Color("81"),  // cyan titles
		Text:        lipgloss.Color("252"), // light text
		Muted:       lipgloss.Color("244"), // gray hints
		SelectedFG:  lipgloss.Color("231"),
		SelectedBG:  lipgloss.Color("24"), // deep teal selection
		Error:       lipgloss.Color("203"),
		BorderStyle: "normal",
	}
}

// ThemeFromConfig converts a configured theme, filling gaps from the
// built-in palette.
func ThemeFromConfig(cfg config.ThemeConfig) Theme {
	th := fallbackDefaultTheme()
	set := func(val string, dst *color.Color) {
		if val = strings.TrimSpace(val); val != "" {
			*dst = lipgloss.Color(val)
		}
	}
	set(cfg.Accent, &th.Accent)
	set(cfg.Text, &th.Text)
	set(cfg.Muted, &th.Muted)
	set(cfg.SelectedFG, &th.SelectedFG)
	set(cfg.SelectedBG, &th.SelectedBG)
	set(cfg.Error, &th.Error)
	if cfg.BorderStyle != "" {
		th.BorderStyle = cfg.BorderStyle
	}
	th.BorderStyle = normalizeBorderStyle(th.BorderStyle)
	return th
}

func normalizeBorderStyle(val string) string {
	v := strings.TrimSpace(strings.ToLower(val))
	switch v {
	case "", "normal", "square":
		return "normal"
	case "rounded", "round":
		return "rounded"
	default:
		return "normal"
	}
}

func borderForStyle(style string) lipgloss.Border {
	switch normalizeBorderStyle(style) {
	case "rounded":
		return lipgloss.RoundedBorder()
	default:
		return lipgloss.NormalBorder()
	}
}

// styles are the lipgloss styles derived from a theme. With noColor every
// style is plain except the selected row, which uses reverse video so the
// selection survives ANSI stripping.
type styles struct {
	title    lipgloss.Style
	text     lipgloss.Style
	muted    lipgloss.Style
	selected lipgloss.Style
	marker   lipgloss.Style
	err      lipgloss.Style
	border   lipgloss.Style
}

func newStyles(th Theme, noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{
			title:    plain,
			text:     plain,
			muted:    plain,
			selected: plain.Reverse(true),
			marker:   plain,
			err:      plain,
			border:   plain,
		}
	}
	return styles{
		title:    lipgloss.NewStyle().Foreground(th.Accent).Bold(true),
		text:     lipgloss.NewStyle().Foreground(th.Text),
		muted:    lipgloss.NewStyle().Foreground(th.Muted),
		selected: lipgloss.NewStyle().Foreground(th.SelectedFG).Background(th.SelectedBG),
		marker:   lipgloss.NewStyle().Foreground(th.Accent).Background(th.SelectedBG).Bold(true),
		err:      lipgloss.NewStyle().Foreground(th.Error),
		border:   lipgloss.NewStyle().Foreground(th.Muted),
	}
}
