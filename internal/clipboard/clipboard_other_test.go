//go:build !windows

package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnsupported(t *testing.T) {
	c := NewClipboard()
	assert.ErrorIs(t, c.SetText("/tmp/sketch.png"), ErrUnsupported)
	_, err := c.GetText()
	assert.ErrorIs(t, err, ErrUnsupported)
}
