package actorutil

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/r-zenine/quickwit/internal/actor"
)

// Spawner launches one actor and returns its mailbox and handle. Pool takes
// this as a parameter rather than calling actor.Spawn/actor.SpawnBlocking
// directly so callers choose the execution flavor and supply the kill
// switch, capacity and heartbeat a real deployment wants; a typical value is
// a closure over actor.Spawn or actor.SpawnBlocking and a shared
// *actor.KillSwitch.
type Spawner[M actor.Message, S any] func(behavior actor.Actor[M, S]) (actor.Mailbox[M], *actor.Handle[M, S])

// PoolConfig configures a homogeneous pool of identically-shaped actors.
type PoolConfig[M actor.Message, S any] struct {
	// ID names the pool for logging.
	ID string

	// Size is the number of actor instances to create. Defaults to 1.
	Size int

	// Factory builds the idx'th pool member's behavior.
	Factory func(idx int) actor.Actor[M, S]

	// Spawn launches each behavior built by Factory.
	Spawn Spawner[M, S]
}

// Pool is a set of identically-shaped actors load-balanced round robin.
// This is the Go-native shape of the teacher's Tell/Ask pool, regeneralized
// onto the mailbox+command model: no Ask, just Tell (round robin or
// broadcast) and handle-level introspection (ObserveAll/FlushAll/StopAll).
type Pool[M actor.Message, S any] struct {
	id string

	mailboxes []actor.Mailbox[M]
	handles   []*actor.Handle[M, S]

	next atomic.Uint64
}

// NewPool builds and spawns every pool member.
func NewPool[M actor.Message, S any](cfg PoolConfig[M, S]) *Pool[M, S] {
	if cfg.Size <= 0 {
		cfg.Size = 1
	}

	p := &Pool[M, S]{
		id:        cfg.ID,
		mailboxes: make([]actor.Mailbox[M], cfg.Size),
		handles:   make([]*actor.Handle[M, S], cfg.Size),
	}

	for i := 0; i < cfg.Size; i++ {
		behavior := cfg.Factory(i)
		mb, h := cfg.Spawn(behavior)
		p.mailboxes[i] = mb
		p.handles[i] = h
	}

	return p
}

// ID returns the pool's identifier.
func (p *Pool[M, S]) ID() string { return p.id }

// Size returns the number of actors in the pool.
func (p *Pool[M, S]) Size() int { return len(p.mailboxes) }

// Tell sends msg to the next actor in round-robin order.
func (p *Pool[M, S]) Tell(ctx context.Context, msg M) bool {
	idx := p.next.Add(1) % uint64(len(p.mailboxes))
	return p.mailboxes[idx].Send(ctx, msg)
}

// Broadcast sends msg to every actor in the pool.
func (p *Pool[M, S]) Broadcast(ctx context.Context, msg M) int {
	return BroadcastTell(ctx, p.mailboxes, msg)
}

// Mailboxes returns a copy of the pool's mailboxes.
func (p *Pool[M, S]) Mailboxes() []actor.Mailbox[M] {
	out := make([]actor.Mailbox[M], len(p.mailboxes))
	copy(out, p.mailboxes)
	return out
}

// Handles returns a copy of the pool's handles.
func (p *Pool[M, S]) Handles() []*actor.Handle[M, S] {
	out := make([]*actor.Handle[M, S], len(p.handles))
	copy(out, p.handles)
	return out
}

// ObserveAll snapshots every pool member's observable state.
func (p *Pool[M, S]) ObserveAll(ctx context.Context) []S {
	return ObserveAll(ctx, p.handles)
}

// FlushAll drains every pool member and snapshots its observable state.
func (p *Pool[M, S]) FlushAll(ctx context.Context) []S {
	return FlushAll(ctx, p.handles)
}

// Stop stops every pool member and waits for them all to exit.
func (p *Pool[M, S]) Stop(ctx context.Context) []actor.Termination {
	terms := StopAll(ctx, p.handles)
	for _, mb := range p.mailboxes {
		mb.Close()
	}
	return terms
}

// String renders the pool's id and size, useful in logs.
func (p *Pool[M, S]) String() string {
	return fmt.Sprintf("pool[%s](%d)", p.id, len(p.mailboxes))
}
