package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBinding(t *testing.T) {
	b, err := ParseBinding("Ctrl+Shift+Z")
	require.NoError(t, err)
	assert.Equal(t, []string{"ctrl", "shift"}, b.Modifiers)
	assert.Equal(t, "z", b.Key)
	assert.Equal(t, "ctrl+shift+z", b.String())
	assert.Equal(t, "Ctrl+Shift+Z", b.Label())

	b, err = ParseBinding("command + option + F5")
	require.NoError(t, err)
	assert.Equal(t, []string{"win", "alt"}, b.Modifiers)
	assert.Equal(t, "f5", b.Key)

	b, err = ParseBinding("alt+escape")
	require.NoError(t, err)
	assert.Equal(t, "esc", b.Key)
}

func TestParseBindingRejectsInvalid(t *testing.T) {
	for _, s := range []string{"", "z", "hyper+z", "ctrl+f13", "ctrl+f05", "ctrl+pageup"} {
		_, err := ParseBinding(s)
		assert.Error(t, err, s)
	}
}

func TestSupportedKeysParse(t *testing.T) {
	for _, k := range GetSupportedKeys() {
		b, err := ParseBinding("ctrl+" + k)
		require.NoError(t, err, k)
		assert.Equal(t, k, b.Key)
	}
}
