package ws

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stoppedHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	cancel()
	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
	return h
}

func TestJoinAndLeaveAfterStop(t *testing.T) {
	h := stoppedHub(t)

	finished := make(chan bool, 1)
	go func() {
		joined := h.Join(nil)
		h.Leave(nil)
		finished <- joined
	}()

	select {
	case joined := <-finished:
		assert.False(t, joined)
	case <-time.After(time.Second):
		t.Fatal("join or leave blocked on a stopped hub")
	}
	assert.Zero(t, h.ClientCount())
}

func TestSendDropsWhenQueueFull(t *testing.T) {
	h := NewHub(nil)
	for i := 0; i < cap(h.Broadcast); i++ {
		require.True(t, h.Send([]byte("x")))
	}
	assert.False(t, h.Send([]byte("overflow")))
}
