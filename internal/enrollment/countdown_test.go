package enrollment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCountdownReachesZeroAndStaysThere(t *testing.T) {
	c := newCountdown(3, 2*time.Millisecond)
	require.Equal(t, 0, c.Remaining(), "not started yet")

	c.Start()
	require.Eventually(t, c.Ready, time.Second, time.Millisecond)

	// No further ticks drive it negative.
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, 0, c.Remaining())
}

func TestCountdownStopFreezesCounter(t *testing.T) {
	c := newCountdown(1000, 2*time.Millisecond)
	c.Start()

	require.Eventually(t, func() bool { return c.Remaining() < 1000 }, time.Second, time.Millisecond)
	c.Stop()

	frozen := c.Remaining()
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, frozen, c.Remaining(), "stopped countdown must not keep decrementing")
}

func TestCountdownRestartIsFresh(t *testing.T) {
	c := newCountdown(100, 20*time.Millisecond)
	c.Start()
	require.Eventually(t, func() bool { return c.Remaining() < 100 }, time.Second, time.Millisecond)

	c.Start()
	require.Equal(t, 100, c.Remaining(), "restart resets to the full cooldown")
	c.Stop()
}

func TestCountdownZeroSecondsIsImmediatelyReady(t *testing.T) {
	c := newCountdown(0, time.Millisecond)
	c.Start()
	require.True(t, c.Ready())
}
