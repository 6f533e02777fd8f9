package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifiers(t *testing.T) {
	assert.NoError(t, Nop{}.Show("导出完成", "sketch.png"))
	assert.NoError(t, NewNotifier().Show("导出完成", "sketch.png"))
}
