package notify

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_DrainOrder(t *testing.T) {
	q := NewQueue(0)
	q.Success("saved")
	q.Error("boom")

	items := q.Drain()
	require.Len(t, items, 2)
	assert.Equal(t, LevelSuccess, items[0].Level)
	assert.Equal(t, "saved", items[0].Message)
	assert.Equal(t, LevelError, items[1].Level)
	assert.Equal(t, "boom", items[1].Message)

	assert.Empty(t, q.Drain(), "drain empties the queue")
}

func TestQueue_DropsOldestWhenFull(t *testing.T) {
	q := NewQueue(3)
	for i := 0; i < 5; i++ {
		q.Error(fmt.Sprintf("e%d", i))
	}

	items := q.Drain()
	require.Len(t, items, 3)
	assert.Equal(t, "e2", items[0].Message)
	assert.Equal(t, "e4", items[2].Message)
}

func TestQueue_ConcurrentPush(t *testing.T) {
	q := NewQueue(1000)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Success("ok")
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, q.Len())
}
