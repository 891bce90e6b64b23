// Package demo provides small, cooperative and blocking actors that exist
// to exercise a Universe end to end: cmd/actorkitd spawns them and internal
// store records their final state.
package demo

import (
	"encoding/json"
	"fmt"

	"github.com/r-zenine/quickwit/internal/actor"
)

// IncrementMsg asks the Counter to add Delta to its running total.
type IncrementMsg struct {
	actor.BaseMessage
	Delta int
}

// MessageType implements actor.Message.
func (IncrementMsg) MessageType() string { return "Increment" }

// CounterState is the Counter's published ObservableState snapshot.
type CounterState struct {
	Total int `json:"total"`
}

// Counter is a cooperative demo actor: it never blocks inside Receive, so it
// runs under actor.Spawn rather than actor.SpawnBlocking.
type Counter struct {
	name  string
	total int

	recorder SnapshotRecorder
}

// SnapshotRecorder is the narrow interface Counter and Hasher depend on to
// persist their final state. cmd/actorkitd adapts internal/store.SnapshotStore
// to it; nothing in this package imports internal/store directly, keeping the demo
// actors independent of any one storage backend.
type SnapshotRecorder interface {
	RecordFinalState(actorName, stateJSON, termination string)
}

// NewCounter returns a Counter with the given display name. recorder may be
// nil, in which case Finalize is a no-op.
func NewCounter(name string, recorder SnapshotRecorder) *Counter {
	return &Counter{name: name, recorder: recorder}
}

// Name implements actor.Actor.
func (c *Counter) Name() string { return c.name }

// Receive implements actor.Actor.
func (c *Counter) Receive(_ *actor.Context[IncrementMsg], msg IncrementMsg) error {
	c.total += msg.Delta
	return nil
}

// ObservableState implements actor.Actor.
func (c *Counter) ObservableState() CounterState {
	return CounterState{Total: c.total}
}

// Finalize implements actor.Finalizer: it persists the final total the
// instant the actor's loop exits, regardless of why.
func (c *Counter) Finalize(term actor.Termination, _ *actor.Context[IncrementMsg]) error {
	if c.recorder == nil {
		return nil
	}

	payload, err := json.Marshal(c.ObservableState())
	if err != nil {
		return fmt.Errorf("marshaling counter state: %w", err)
	}

	c.recorder.RecordFinalState(c.name, string(payload), term.Kind.String())

	return nil
}
