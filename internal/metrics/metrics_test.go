package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterConcurrent(t *testing.T) {
	var c Counter
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Inc()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(5000), c.Load())
}

func TestSnapshotKeys(t *testing.T) {
	snap := Snapshot()
	assert.Contains(t, snap, "orders_created")
	assert.Contains(t, snap, "order_failures")
	assert.Contains(t, snap, "quotations_converted")
}
