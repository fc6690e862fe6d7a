package ui

import (
	"strings"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
)

// ApplyStartupKeys feeds Vim-style key tokens and literal text to m as if
// they had been typed. Commands returned by the model are not run.
func ApplyStartupKeys(m *Model, keys []string) {
	if len(keys) == 0 || m == nil {
		return
	}
	for _, raw := range keys {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		// Leading backslash forces literal text (e.g., "\\<CR>").
		if strings.HasPrefix(token, `\`) {
			typeText(m, strings.TrimPrefix(token, `\`))
			continue
		}
		for _, segment := range parseTokenSegments(token) {
			if !segment.isVimKey {
				typeText(m, segment.text)
				continue
			}
			if msgs, ok := keyMsgsFromToken(segment.text); ok {
				for _, msg := range msgs {
					m.Update(msg)
				}
			}
		}
	}
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// tokenSegment is either a <...> key or a run of literal text.
type tokenSegment struct {
	text     string
	isVimKey bool
}

// parseTokenSegments splits a token into keys and literal text.
// Example: "<C-k>proj<CR>" -> [<C-k>] [proj] [<CR>]
func parseTokenSegments(token string) []tokenSegment {
	var segments []tokenSegment
	remaining := token

	for len(remaining) > 0 {
		startIdx := strings.Index(remaining, "<")
		if startIdx == -1 {
			segments = append(segments, tokenSegment{text: remaining})
			break
		}
		if startIdx > 0 {
			segments = append(segments, tokenSegment{text: remaining[:startIdx]})
		}
		endIdx := strings.Index(remaining[startIdx:], ">")
		if endIdx == -1 {
			segments = append(segments, tokenSegment{text: remaining[startIdx:]})
			break
		}
		segments = append(segments, tokenSegment{text: remaining[startIdx : startIdx+endIdx+1], isVimKey: true})
		remaining = remaining[startIdx+endIdx+1:]
	}

	return segments
}

// keyMsgsFromToken parses a Vim-like token into key messages.
// Examples: "<Esc>", "<CR>", "<Down>", "<PageDown>", "<C-k>", "<M-v>", "<D-k>".
func keyMsgsFromToken(token string) ([]tea.KeyPressMsg, bool) {
	if !strings.HasPrefix(token, "<") || !strings.HasSuffix(token, ">") {
		return nil, false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(token, "<"), ">")
	lower := strings.ToLower(inner)
	switch lower {
	case "esc", "c-[", "escape":
		return []tea.KeyPressMsg{{Code: tea.KeyEscape}}, true
	case "cr", "enter", "return":
		return []tea.KeyPressMsg{{Code: tea.KeyEnter}}, true
	case "tab":
		return []tea.KeyPressMsg{{Code: tea.KeyTab}}, true
	case "space":
		return []tea.KeyPressMsg{{Code: ' ', Text: " "}}, true
	case "bs", "backspace":
		return []tea.KeyPressMsg{{Code: tea.KeyBackspace}}, true
	case "up":
		return []tea.KeyPressMsg{{Code: tea.KeyUp}}, true
	case "down":
		return []tea.KeyPressMsg{{Code: tea.KeyDown}}, true
	case "pageup", "pgup":
		return []tea.KeyPressMsg{{Code: tea.KeyPgUp}}, true
	case "pagedown", "pgdown":
		return []tea.KeyPressMsg{{Code: tea.KeyPgDown}}, true
	case "lt":
		return []tea.KeyPressMsg{{Code: '<', Text: "<"}}, true
	}

	// Modified single keys: C- ctrl, M-/A- alt, D- super.
	if len(lower) > 2 && lower[1] == '-' {
		var mod tea.KeyMod
		switch lower[0] {
		case 'c':
			mod = tea.ModCtrl
		case 'm', 'a':
			mod = tea.ModAlt
		case 'd':
			mod = tea.ModSuper
		default:
			return nil, false
		}
		rest := lower[2:]
		r, size := utf8.DecodeRuneInString(rest)
		if size != len(rest) {
			return nil, false
		}
		return []tea.KeyPressMsg{{Code: r, Mod: mod}}, true
	}
	return nil, false
}
