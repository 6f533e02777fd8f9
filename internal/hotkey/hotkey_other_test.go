//go:build !windows

package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUnsupported(t *testing.T) {
	b, err := ParseBinding("ctrl+z")
	require.NoError(t, err)

	m := NewManager(nil)
	assert.ErrorIs(t, m.Register(b, func() {}), ErrUnsupported)
	m.UnregisterAll()

	ran := false
	Run(func() { ran = true })
	assert.True(t, ran)
}
