package actor_test

import (
	"testing"

	"github.com/r-zenine/quickwit/internal/actor"
	"github.com/stretchr/testify/require"
)

func TestProgress_PollAndReset(t *testing.T) {
	t.Parallel()

	p := actor.NewProgress()

	require.False(t, p.PollAndReset(), "fresh Progress has not moved")

	p.Record()
	require.True(t, p.PollAndReset())
	require.False(t, p.PollAndReset(), "reset clears the flag")

	p.Record()
	p.Record()
	require.True(t, p.PollAndReset(), "repeated Record before a poll still counts as one movement")
}
