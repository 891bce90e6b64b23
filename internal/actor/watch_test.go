package actor_test

import (
	"sync"
	"testing"

	"github.com/r-zenine/quickwit/internal/actor"
	"github.com/stretchr/testify/require"
)

func TestWatch_LatestAlwaysMostRecent(t *testing.T) {
	t.Parallel()

	w := actor.NewWatch(0)
	require.Equal(t, 0, w.Latest())

	w.Publish(1)
	w.Publish(2)
	w.Publish(3)
	require.Equal(t, 3, w.Latest())
}

func TestWatch_LatestSeesLastPublishFromWriterGoroutine(t *testing.T) {
	t.Parallel()

	w := actor.NewWatch(0)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 1000; i++ {
			w.Publish(i)
		}
	}()
	wg.Wait()

	require.Equal(t, 1000, w.Latest())
}
