package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	tests := []struct {
		name    string
		binding key.Binding
		key     string
	}{
		{"submit", km.Submit, "enter"},
		{"restore", km.Restore, "ctrl+r"},
		{"clear", km.Clear, "ctrl+x"},
		{"scroll up", km.ScrollUp, "pgup"},
		{"scroll down", km.ScrollDown, "pgdown"},
		{"quit", km.Quit, "ctrl+c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.binding.Keys(), tt.key)
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestKeyMap_ShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.ShortHelp()

	require.Len(t, help, 4)
	assert.Equal(t, "enter", help[0].Help().Key)
	assert.Equal(t, "ctrl+c", help[3].Help().Key)
}

func TestKeyMap_FullHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.FullHelp()

	require.Len(t, help, 2)
	assert.Len(t, help[0], 3)
	assert.Len(t, help[1], 3)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("ctrl+r", km.Restore))
	assert.True(t, Matches("ctrl+d", km.ScrollDown))
	assert.False(t, Matches("q", km.Quit))
	assert.False(t, Matches("enter", km.Clear))
}
