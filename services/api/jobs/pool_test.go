package jobs

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPoolBoundsConcurrency(t *testing.T) {
	pool := NewPool(2)

	var running, peak int32
	for i := 0; i < 10; i++ {
		pool.Go(func() {
			cur := atomic.AddInt32(&running, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&running, -1)
		})
	}
	pool.Wait()

	require.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
	require.Zero(t, atomic.LoadInt32(&running))
}

func TestPoolGoDoesNotBlock(t *testing.T) {
	pool := NewPool(1)
	release := make(chan struct{})

	pool.Go(func() { <-release })

	done := make(chan struct{})
	go func() {
		// Submitting while the only slot is busy must still return.
		pool.Go(func() {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Go blocked while pool was saturated")
	}

	close(release)
	pool.Wait()
}
