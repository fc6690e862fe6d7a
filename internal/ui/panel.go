package ui

import (
	"regexp"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// panelWithTitle draws content inside a border of exactly width x height
// cells with title centered in the top edge.
func panelWithTitle(title, content string, width, height int, border lipgloss.Border, st styles) string {
	if width < 4 {
		width = 4
	}
	if height < 3 {
		height = 3
	}
	innerWidth := width - 2
	innerHeight := height - 2

	// Pad by hand instead of lipgloss Width/Height, which would re-wrap
	// styled text.
	lines := strings.Split(content, "\n")
	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}
	for len(lines) < innerHeight {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = padANSIToWidth(clampANSITextWidth(lines[i], innerWidth), innerWidth)
	}

	paint := st.border.Render
	out := make([]string, 0, height)
	out = append(out, topBorderWithTitle(title, innerWidth, border, st))
	for _, line := range lines {
		out = append(out, paint(border.Left)+line+paint(border.Right))
	}
	out = append(out, paint(border.BottomLeft+repeatToWidth(border.Bottom, innerWidth)+border.BottomRight))
	return strings.Join(out, "\n")
}

// topBorderWithTitle builds "┌─ Title ──┐" for innerWidth cells between
// the corners.
func topBorderWithTitle(title string, innerWidth int, border lipgloss.Border, st styles) string {
	paint := st.border.Render
	title = strings.TrimSpace(title)
	if title == "" {
		return paint(border.TopLeft + repeatToWidth(border.Top, innerWidth) + border.TopRight)
	}
	label := runewidth.Truncate(" "+title+" ", innerWidth, "")
	labelWidth := runewidth.StringWidth(label)
	leftPad := (innerWidth - labelWidth) / 2
	rightPad := innerWidth - labelWidth - leftPad
	return paint(border.TopLeft+repeatToWidth(border.Top, leftPad)) +
		st.title.Render(label) +
		paint(repeatToWidth(border.Top, rightPad)+border.TopRight)
}

// repeatToWidth repeats fill until reaching the requested display width.
func repeatToWidth(fill string, width int) string {
	if width <= 0 {
		return ""
	}
	if strings.TrimSpace(fill) == "" {
		fill = " "
	}
	fw := runewidth.StringWidth(fill)
	if fw <= 0 {
		fw = 1
	}
	var b strings.Builder
	for w := 0; w+fw <= width; w += fw {
		b.WriteString(fill)
	}
	if rem := width - runewidth.StringWidth(b.String()); rem > 0 {
		b.WriteString(strings.Repeat(" ", rem))
	}
	return b.String()
}

func padANSIToWidth(s string, targetWidth int) string {
	visible := ansiVisibleWidth(s)
	if visible >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-visible)
}

func ansiVisibleWidth(s string) int {
	return runewidth.StringWidth(stripANSI(s))
}

// clampANSITextWidth trims s to maxWidth display cells while keeping CSI
// escape sequences intact.
func clampANSITextWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	const (
		stNormal = iota
		stEsc
		stCSI
	)
	var out strings.Builder
	width := 0
	state := stNormal
	for _, r := range s {
		switch state {
		case stNormal:
			if r == 0x1b {
				state = stEsc
				out.WriteRune(r)
				continue
			}
			w := runewidth.RuneWidth(r)
			if width+w > maxWidth {
				continue
			}
			out.WriteRune(r)
			width += w
		case stEsc:
			out.WriteRune(r)
			if r == '[' {
				state = stCSI
			} else {
				state = stNormal
			}
		case stCSI:
			out.WriteRune(r)
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				state = stNormal
			}
		}
	}
	return out.String()
}

func stripANSI(s string) string {
	return ansiRegexp.ReplaceAllString(s, "")
}

// stripANSIExceptInverse removes color codes but keeps reverse video so the
// selected row stays visible in no-color mode.
func stripANSIExceptInverse(s string) string {
	return ansiRegexp.ReplaceAllStringFunc(s, func(seq string) string {
		switch seq {
		case "\x1b[7m", "\x1b[27m", "\x1b[0m", "\x1b[m":
			return seq
		default:
			return ""
		}
	})
}

// padSnapshotHeight pads view with blank lines up to height rows.
func padSnapshotHeight(view string, height, width int) string {
	if height <= 0 {
		return view
	}
	lines := strings.Split(strings.TrimRight(view, "\n"), "\n")
	if len(lines) >= height {
		return strings.Join(lines, "\n")
	}
	padLine := " "
	if width > 1 {
		padLine = strings.Repeat(" ", width)
	}
	for len(lines) < height {
		lines = append(lines, padLine)
	}
	return strings.Join(lines, "\n")
}
