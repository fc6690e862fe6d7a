package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/cmdk/internal/command"
)

func TestPageCommandsDefaults(t *testing.T) {
	cmds, err := PageCommands(DefaultPages())
	require.NoError(t, err)
	require.Len(t, cmds, len(DefaultPages()))
	assert.Equal(t, "Page: Projects", cmds[0].Title)
	assert.Equal(t, command.OpenPage, cmds[0].Action)
	assert.Equal(t, Projects, cmds[0].Target.Path)
	assert.Empty(t, cmds[0].Target.Query)
	for _, c := range cmds {
		require.NoError(t, c.Validate())
	}
}

func TestPageCommandsRejectsBadPages(t *testing.T) {
	_, err := PageCommands([]Page{{Title: " ", Path: "/x"}})
	require.Error(t, err)

	_, err = PageCommands([]Page{{Title: "X", Path: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must start with '/'")
}
