package where

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileEmptyIsNil(t *testing.T) {
	p, err := Compile("job", "   ")
	require.NoError(t, err)
	assert.Nil(t, p)

	ok, err := p.Match(map[string]any{"status": "DONE"})
	require.NoError(t, err)
	assert.True(t, ok, "nil predicate matches everything")
	assert.Empty(t, p.Expr())
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name   string
		expr   string
		fields map[string]any
		want   bool
	}{
		{"equality", `job.status == "DRAFT"`, map[string]any{"status": "DRAFT"}, true},
		{"inequality", `job.status != "ABORTED"`, map[string]any{"status": "ABORTED"}, false},
		{"string ext", `job.name.lowerAscii().startsWith("night")`, map[string]any{"name": "Nightly"}, true},
		{"in list", `job.status in ["PENDING", "STARTED"]`, map[string]any{"status": "SUCCESS"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile("job", tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expr, p.Expr())
			got, err := p.Match(tt.fields)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile("project", "project.path ==")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compilation error")

	_, err = Compile("project", `"not a bool"`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must evaluate to bool")

	_, err = Compile("project", "pipeline.name == 'x'")
	require.Error(t, err)
}

func TestMatchMissingField(t *testing.T) {
	p, err := Compile("pipeline", `pipeline.name == "x"`)
	require.NoError(t, err)
	_, err = p.Match(map[string]any{})
	require.Error(t, err)
}
