package actor_test

import (
	"testing"
	"time"

	"github.com/r-zenine/quickwit/internal/actor"
	"github.com/stretchr/testify/require"
)

func TestSupervisor_KillsGroupWhenOneActorStopsMakingProgress(t *testing.T) {
	t.Parallel()

	ks := actor.NewKillSwitch()
	defer ks.Kill()

	sup := actor.NewSupervisor(ks, 15*time.Millisecond)
	sup.Start()
	defer sup.Stop()

	healthy := actor.NewProgress()
	stuck := actor.NewProgress()
	sup.Register("healthy", healthy)
	sup.Register("stuck", stuck)

	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				healthy.Record()
			case <-stop:
				return
			}
		}
	}()
	defer close(stop)

	require.Eventually(t, func() bool {
		return !ks.IsAlive()
	}, time.Second, time.Millisecond, "the stuck actor's progress never advances, so the group must be killed")
}

func TestSupervisor_DoesNotKillWhileEveryoneProgresses(t *testing.T) {
	t.Parallel()

	ks := actor.NewKillSwitch()
	defer ks.Kill()

	sup := actor.NewSupervisor(ks, 10*time.Millisecond)
	sup.Start()
	defer sup.Stop()

	p := actor.NewProgress()
	sup.Register("actor", p)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(1 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.Record()
			case <-stop:
				return
			}
		}
	}()

	time.Sleep(100 * time.Millisecond)
	require.True(t, ks.IsAlive())
}
