package actor_test

import (
	"testing"

	"github.com/r-zenine/quickwit/internal/actor"
	"github.com/stretchr/testify/require"
)

// Scenario A: KillSwitch.
func TestKillSwitch_Scenario(t *testing.T) {
	t.Parallel()

	ks := actor.NewKillSwitch()
	require.True(t, ks.IsAlive())

	ks.Kill()
	require.False(t, ks.IsAlive())

	ks.Kill()
	require.False(t, ks.IsAlive())
}

func TestKillSwitch_DoneClosesOnce(t *testing.T) {
	t.Parallel()

	ks := actor.NewKillSwitch()
	select {
	case <-ks.Done():
		t.Fatal("done channel closed before Kill")
	default:
	}

	ks.Kill()
	<-ks.Done() // must not block

	// A second Kill must not panic by double-closing the channel.
	require.NotPanics(t, ks.Kill)
}
