// Package guard gates user actions behind account entitlements.  Checks run
// in a fixed order (wallet connected, SNS profile present, stake above the
// minimum) and stop at the first failure, surfacing a notification that names
// both the missing requirement and the action the user attempted.
package guard

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultMinStake is the stake threshold applied when none is configured.
	DefaultMinStake = 0.001

	// DefaultDismiss is how long a requirement notice stays up before
	// auto-dismissing.
	DefaultDismiss = 5 * time.Second

	// ConfirmDismiss is the shorter window used for action confirmations
	// such as a recorded vote.
	ConfirmDismiss = 2 * time.Second
)

// State carries the caller's current entitlements, supplied by the caller on
// every check so the guard itself stays stateless about the account.
type State struct {
	Connected  bool
	HasProfile bool
	Stake      float64
}

// Guard runs entitlement checks and owns the single active notification.
type Guard struct {
	mu       sync.Mutex
	minStake float64
	message  string
	timer    *time.Timer
	closed   bool
}

// Option configures a Guard.
type Option func(*Guard)

// WithMinStake overrides the stake threshold.
func WithMinStake(min float64) Option {
	return func(g *Guard) { g.minStake = min }
}

// New builds a Guard with the default threshold unless overridden.
func New(opts ...Option) *Guard {
	g := &Guard{minStake: DefaultMinStake}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Require checks the state against every requirement in order.  When all
// pass, fn runs synchronously before Require returns, exactly once, and the
// return value is true.  On the first failure fn never runs and a
// notification for that requirement is raised with the default dismiss
// window.
func (g *Guard) Require(state State, action string, fn func()) bool {
	switch {
	case !state.Connected:
		g.Notify(fmt.Sprintf("You need to be logged in to %s", action), DefaultDismiss)
		return false
	case !state.HasProfile:
		g.Notify(fmt.Sprintf("You need to create your SNS profile before you can %s", action), DefaultDismiss)
		return false
	case state.Stake < g.minStake:
		g.Notify(fmt.Sprintf("You need to stake at least %g SOL to %s", g.minStake, action), DefaultDismiss)
		return false
	}
	fn()
	return true
}

// Notify replaces the active notification and arms its auto-dismiss timer.
// A zero or negative delay leaves the notice up until dismissed manually.
func (g *Guard) Notify(message string, after time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.message = message
	if after > 0 {
		g.timer = time.AfterFunc(after, g.Dismiss)
	}
}

// Message returns the active notification text, empty when none is up.
func (g *Guard) Message() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.message
}

// Dismiss clears the active notification and cancels its timer.
func (g *Guard) Dismiss() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.message = ""
}

// Close tears the guard down; pending timers are cancelled and later
// notifications are dropped, so nothing fires after the owner is gone.
func (g *Guard) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.message = ""
}
