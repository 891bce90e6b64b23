package demo

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/r-zenine/quickwit/internal/actor"
)

// HashMsg asks the Hasher to digest Payload and remember the result.
type HashMsg struct {
	actor.BaseMessage
	Payload []byte
}

// MessageType implements actor.Message.
func (HashMsg) MessageType() string { return "Hash" }

// HasherState is the Hasher's published ObservableState snapshot.
type HasherState struct {
	Digests  int    `json:"digests"`
	LastHash string `json:"last_hash"`
}

// Hasher is a blocking demo actor: sha256 over an arbitrarily large payload
// is CPU work that has no business running on a cooperative goroutine
// shared with every other actor, so Hasher is spawned with
// actor.SpawnBlocking.
type Hasher struct {
	name    string
	digests int
	last    string

	recorder SnapshotRecorder
}

// NewHasher returns a Hasher with the given display name. recorder may be
// nil, in which case Finalize is a no-op.
func NewHasher(name string, recorder SnapshotRecorder) *Hasher {
	return &Hasher{name: name, recorder: recorder}
}

// Name implements actor.Actor.
func (h *Hasher) Name() string { return h.name }

// Receive implements actor.Actor. It may block the OS thread it runs on.
func (h *Hasher) Receive(_ *actor.Context[HashMsg], msg HashMsg) error {
	sum := sha256.Sum256(msg.Payload)
	h.digests++
	h.last = hex.EncodeToString(sum[:])
	return nil
}

// ObservableState implements actor.Actor.
func (h *Hasher) ObservableState() HasherState {
	return HasherState{Digests: h.digests, LastHash: h.last}
}

// Finalize implements actor.Finalizer.
func (h *Hasher) Finalize(term actor.Termination, _ *actor.Context[HashMsg]) error {
	if h.recorder == nil {
		return nil
	}

	payload, err := json.Marshal(h.ObservableState())
	if err != nil {
		return fmt.Errorf("marshaling hasher state: %w", err)
	}

	h.recorder.RecordFinalState(h.name, string(payload), term.Kind.String())

	return nil
}
