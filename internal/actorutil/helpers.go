// Package actorutil provides fan-out/fan-in conveniences over the
// internal/actor runtime: broadcasting a message to many mailboxes, and
// observing, flushing, pausing, resuming or stopping many handles at once.
package actorutil

import (
	"context"
	"sync"

	"github.com/r-zenine/quickwit/internal/actor"
)

// BroadcastTell sends msg to every mailbox, fire-and-forget, and returns how
// many sends succeeded. A false result for one recipient (its mailbox
// already closed) never stops delivery to the rest.
func BroadcastTell[M actor.Message](
	ctx context.Context, mailboxes []actor.Mailbox[M], msg M,
) int {

	delivered := 0
	for _, mb := range mailboxes {
		if mb.Send(ctx, msg) {
			delivered++
		}
	}
	return delivered
}

// ObserveAll concurrently calls Observe on every handle and returns the
// snapshots in the same order as handles.
func ObserveAll[M actor.Message, S any](
	ctx context.Context, handles []*actor.Handle[M, S],
) []S {

	return fanOut(handles, func(h *actor.Handle[M, S]) S {
		return h.Observe(ctx)
	})
}

// FlushAll concurrently calls ProcessPendingAndObserve on every handle,
// waiting for each actor to drain everything sent to it before this call,
// and returns the resulting snapshots in the same order as handles. This is
// the canonical way to synchronize with a whole pool of actors in a test.
func FlushAll[M actor.Message, S any](
	ctx context.Context, handles []*actor.Handle[M, S],
) []S {

	return fanOut(handles, func(h *actor.Handle[M, S]) S {
		return h.ProcessPendingAndObserve(ctx)
	})
}

// StopAll concurrently stops every handle and returns the resulting
// terminations in the same order as handles.
func StopAll[M actor.Message, S any](
	ctx context.Context, handles []*actor.Handle[M, S],
) []actor.Termination {

	return fanOut(handles, func(h *actor.Handle[M, S]) actor.Termination {
		return h.Stop(ctx)
	})
}

// PauseAll concurrently pauses every handle.
func PauseAll[M actor.Message, S any](ctx context.Context, handles []*actor.Handle[M, S]) {
	fanOut(handles, func(h *actor.Handle[M, S]) struct{} {
		h.Pause(ctx)
		return struct{}{}
	})
}

// ResumeAll concurrently resumes every handle.
func ResumeAll[M actor.Message, S any](ctx context.Context, handles []*actor.Handle[M, S]) {
	fanOut(handles, func(h *actor.Handle[M, S]) struct{} {
		h.Resume(ctx)
		return struct{}{}
	})
}

// fanOut runs fn over every handle concurrently and collects results in
// input order.
func fanOut[M actor.Message, S, T any](
	handles []*actor.Handle[M, S], fn func(*actor.Handle[M, S]) T,
) []T {

	out := make([]T, len(handles))

	var wg sync.WaitGroup
	wg.Add(len(handles))
	for i, h := range handles {
		go func(i int, h *actor.Handle[M, S]) {
			defer wg.Done()
			out[i] = fn(h)
		}(i, h)
	}
	wg.Wait()

	return out
}
