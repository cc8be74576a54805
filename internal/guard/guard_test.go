package guard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequireOrdering(t *testing.T) {
	t.Run("disconnected wallet fails first", func(t *testing.T) {
		g := New()
		defer g.Close()

		ran := false
		// Profile and stake are also missing, but the connection check
		// short-circuits before either is consulted.
		ok := g.Require(State{}, "create a shop", func() { ran = true })
		assert.False(t, ok)
		assert.False(t, ran)
		assert.Equal(t, "You need to be logged in to create a shop", g.Message())
	})

	t.Run("missing profile fails second", func(t *testing.T) {
		g := New()
		defer g.Close()

		ok := g.Require(State{Connected: true}, "post a request", func() {})
		assert.False(t, ok)
		assert.Equal(t, "You need to create your SNS profile before you can post a request", g.Message())
	})

	t.Run("insufficient stake fails last", func(t *testing.T) {
		g := New()
		defer g.Close()

		ok := g.Require(State{Connected: true, HasProfile: true, Stake: 0.0005}, "vote", func() {})
		assert.False(t, ok)
		assert.Equal(t, "You need to stake at least 0.001 SOL to vote", g.Message())
	})

	t.Run("custom threshold appears in the message", func(t *testing.T) {
		g := New(WithMinStake(0.5))
		defer g.Close()

		g.Require(State{Connected: true, HasProfile: true, Stake: 0.4}, "vote", func() {})
		assert.Equal(t, "You need to stake at least 0.5 SOL to vote", g.Message())
	})
}

func TestRequireSuccessRunsOnce(t *testing.T) {
	g := New()
	defer g.Close()

	runs := 0
	ok := g.Require(State{Connected: true, HasProfile: true, Stake: 1}, "vote", func() { runs++ })
	assert.True(t, ok)
	assert.Equal(t, 1, runs)
	// Success raises no notification.
	assert.Empty(t, g.Message())
}

func TestNotifyAutoDismiss(t *testing.T) {
	g := New()
	defer g.Close()

	g.Notify("Vote recorded", 20*time.Millisecond)
	assert.Equal(t, "Vote recorded", g.Message())

	assert.Eventually(t, func() bool { return g.Message() == "" },
		time.Second, 5*time.Millisecond)
}

func TestDismissCancelsTimer(t *testing.T) {
	g := New()
	defer g.Close()

	g.Notify("first", 20*time.Millisecond)
	g.Dismiss()
	g.Notify("second", 0)

	// The first notice's timer must not fire and clear the second.
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, "second", g.Message())
}

func TestNotifyReplacesPending(t *testing.T) {
	g := New()
	defer g.Close()

	g.Notify("first", time.Hour)
	g.Notify("second", time.Hour)
	assert.Equal(t, "second", g.Message())
}

func TestCloseDropsEverything(t *testing.T) {
	g := New()
	g.Notify("pending", time.Hour)
	g.Close()
	assert.Empty(t, g.Message())

	// Notifications after Close are ignored.
	g.Notify("late", time.Hour)
	assert.Empty(t, g.Message())
}
