package actor

import (
	"context"
	"time"
)

// defaultHeartbeat is the reception heartbeat new actors get when a
// Universe's caller does not override it.
const defaultHeartbeat = 200 * time.Millisecond

// UniverseConfig tunes the defaults a Universe hands to every actor it
// spawns. The zero value is valid: it resolves to a 200ms heartbeat, an
// unbounded mailbox, and a supervision interval four heartbeats wide.
type UniverseConfig struct {
	DefaultHeartbeat    time.Duration
	DefaultCapacity     Capacity
	SupervisionInterval time.Duration
}

func (cfg UniverseConfig) withDefaults() UniverseConfig {
	if cfg.DefaultHeartbeat <= 0 {
		cfg.DefaultHeartbeat = defaultHeartbeat
	}
	if cfg.DefaultCapacity == (Capacity{}) {
		cfg.DefaultCapacity = Unbounded()
	}
	if cfg.SupervisionInterval <= 0 {
		cfg.SupervisionInterval = cfg.DefaultHeartbeat * 4
	}
	return cfg
}

// Universe is the root container: one shared KillSwitch, one Supervisor
// watching every actor spawned through it, and one Scheduler for timed
// callbacks. Spawning through a Universe rather than calling Spawn or
// SpawnBlocking directly is what gets an actor supervised at all.
type Universe struct {
	killSwitch *KillSwitch
	supervisor *Supervisor
	cfg        UniverseConfig

	schedulerMailbox Mailbox[SchedulerMessage]
	schedulerHandle  *Handle[SchedulerMessage, SchedulerState]
}

// NewUniverse constructs a Universe and starts its supervisor and scheduler.
func NewUniverse(cfg UniverseConfig) *Universe {
	cfg = cfg.withDefaults()

	killSwitch := NewKillSwitch()
	supervisor := NewSupervisor(killSwitch, cfg.SupervisionInterval)
	supervisor.Start()

	u := &Universe{
		killSwitch: killSwitch,
		supervisor: supervisor,
		cfg:        cfg,
	}

	u.schedulerMailbox, u.schedulerHandle = SpawnScheduler(killSwitch, cfg.DefaultHeartbeat)
	supervisor.Register("scheduler", u.schedulerHandle.progressForSupervisor())

	return u
}

// KillSwitch returns the kill switch shared by every actor this Universe
// has spawned.
func (u *Universe) KillSwitch() *KillSwitch { return u.killSwitch }

// Schedule asks the Universe's scheduler to run callback once delay has
// elapsed. Returns false if the scheduler's mailbox has already closed.
func (u *Universe) Schedule(ctx context.Context, delay time.Duration, callback func()) bool {
	return u.schedulerMailbox.Send(ctx, ScheduleEvent(delay, callback))
}

// SchedulerState observes the Universe's scheduler.
func (u *Universe) SchedulerState(ctx context.Context) SchedulerState {
	return u.schedulerHandle.Observe(ctx)
}

// Shutdown trips the shared kill switch, cascading termination to every
// actor this Universe has spawned (each one observes the trip on its very
// next reception or heartbeat tick, so the whole group is down within one
// heartbeat), then stops the supervisor and waits for the scheduler to
// finish exiting.
func (u *Universe) Shutdown(ctx context.Context) {
	u.killSwitch.Kill()
	u.schedulerHandle.Finish(ctx)
	u.supervisor.Stop()
}

// SpawnIn spawns behavior cooperatively through u, using its configured
// defaults, and registers it with u's supervisor. A free function rather
// than a method because Go methods cannot carry their own type parameters.
func SpawnIn[M Message, S any](u *Universe, behavior Actor[M, S]) (Mailbox[M], *Handle[M, S]) {
	mailbox, handle := Spawn[M, S](u.killSwitch, behavior, u.cfg.DefaultCapacity, u.cfg.DefaultHeartbeat)
	u.supervisor.Register(behavior.Name(), handle.progressForSupervisor())
	return mailbox, handle
}

// SpawnBlockingIn spawns behavior on a dedicated worker through u, using its
// configured defaults, and registers it with u's supervisor.
func SpawnBlockingIn[M Message, S any](u *Universe, behavior Actor[M, S]) (Mailbox[M], *Handle[M, S]) {
	mailbox, handle := SpawnBlocking[M, S](u.killSwitch, behavior, u.cfg.DefaultCapacity, u.cfg.DefaultHeartbeat)
	u.supervisor.Register(behavior.Name(), handle.progressForSupervisor())
	return mailbox, handle
}
