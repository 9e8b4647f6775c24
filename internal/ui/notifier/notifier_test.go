package notifier

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeAndBroadcast(t *testing.T) {
	n := New()

	ch := n.Subscribe()
	require.NotNil(t, ch)

	n.Broadcast()

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a ping after broadcast")
	}

	n.Unsubscribe(ch)

	n.mu.RLock()
	assert.Empty(t, n.listeners)
	n.mu.RUnlock()
}

func TestBroadcastDoesNotBlockOnFullChannel(t *testing.T) {
	n := New()
	ch := n.Subscribe()
	defer n.Unsubscribe(ch)

	// Fill the buffered channel, then broadcast twice more. Neither call
	// may block.
	done := make(chan struct{})
	go func() {
		n.Broadcast()
		n.Broadcast()
		n.Broadcast()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full listener channel")
	}
}

func TestBroadcastReachesAllListeners(t *testing.T) {
	n := New()

	const listeners = 5
	chans := make([]chan struct{}, listeners)
	for i := range chans {
		chans[i] = n.Subscribe()
	}

	n.Broadcast()

	var wg sync.WaitGroup
	for _, ch := range chans {
		wg.Add(1)
		go func(c chan struct{}) {
			defer wg.Done()
			select {
			case <-c:
			case <-time.After(time.Second):
				t.Error("listener did not receive ping")
			}
		}(ch)
	}
	wg.Wait()

	for _, ch := range chans {
		n.Unsubscribe(ch)
	}
}
