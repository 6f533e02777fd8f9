//go:build !windows

package tray

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunReturnsAfterQuit(t *testing.T) {
	quits := 0
	tr := NewTray(Actions{Quit: func() { quits++ }}, nil)

	done := make(chan struct{})
	go func() {
		tr.Run()
		close(done)
	}()

	tr.Quit()
	tr.Quit()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
	assert.Equal(t, 1, quits)
}
