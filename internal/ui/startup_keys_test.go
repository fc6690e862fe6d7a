package ui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTokenSegments(t *testing.T) {
	tests := []struct {
		token string
		want  []tokenSegment
	}{
		{"abc", []tokenSegment{{text: "abc"}}},
		{"<CR>", []tokenSegment{{text: "<CR>", isVimKey: true}}},
		{"<C-k>proj<CR>", []tokenSegment{
			{text: "<C-k>", isVimKey: true},
			{text: "proj"},
			{text: "<CR>", isVimKey: true},
		}},
		{"a<b", []tokenSegment{{text: "a"}, {text: "<b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTokenSegments(tt.token))
		})
	}
}

func TestKeyMsgsFromToken(t *testing.T) {
	tests := []struct {
		token string
		want  string
		ok    bool
	}{
		{"<Esc>", "esc", true},
		{"<CR>", "enter", true},
		{"<Down>", "down", true},
		{"<Up>", "up", true},
		{"<PageDown>", "pgdown", true},
		{"<PgUp>", "pgup", true},
		{"<C-k>", "ctrl+k", true},
		{"<D-k>", "super+k", true},
		{"<M-v>", "alt+v", true},
		{"<X-k>", "", false},
		{"<C-kk>", "", false},
		{"<nope>", "", false},
		{"plain", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			msgs, ok := keyMsgsFromToken(tt.token)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			require.Len(t, msgs, 1)
			assert.Equal(t, tt.want, msgs[0].String())
		})
	}
}

func TestApplyStartupKeys(t *testing.T) {
	m, _ := newTestModel(t, context.Background(), Options{})
	ApplyStartupKeys(m, []string{"<C-k>", "job", "", "<Esc>", "<C-k>/a<CR><Down><CR>"})

	assert.False(t, m.Navigator().IsOpen())
	assert.Equal(t, "/pipelines?projectUuid=p1", m.Location().URL())
}

func TestApplyStartupKeysLiteral(t *testing.T) {
	m, _ := newTestModel(t, context.Background(), Options{OpenOnStart: true})
	ApplyStartupKeys(m, []string{`\<CR>`})
	assert.Equal(t, "<CR>", m.Navigator().Query())
	assert.True(t, m.Navigator().IsOpen())
}
