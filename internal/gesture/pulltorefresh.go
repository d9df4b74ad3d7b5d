// Package gesture implements the pull-to-refresh interaction used by the
// community feed. The controller is a small state machine fed raw drag
// events; rendering and scroll tracking stay on the client side.
package gesture

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State is the current phase of the pull gesture.
type State string

const (
	StateIdle       State = "idle"
	StatePulling    State = "pulling"
	StateRefreshing State = "refreshing"
)

const (
	// DefaultThreshold is the damped distance that commits a refresh.
	DefaultThreshold = 80.0
	// DefaultDamping scales raw drag distance so the indicator resists.
	DefaultDamping = 0.5
	// DefaultDelay simulates the network round trip of a feed sync.
	DefaultDelay = 1500 * time.Millisecond
)

// Refresher reloads the underlying content while the spinner is showing.
type Refresher func(ctx context.Context) error

// Controller drives the pull-to-refresh state machine. All methods are safe
// for concurrent use, though a single gesture is inherently sequential.
type Controller struct {
	threshold float64
	damping   float64
	delay     time.Duration
	refresher Refresher
	onUpdated func()
	logger    *zap.Logger

	mu     sync.Mutex
	state  State
	rawLen float64
}

// Option customizes a Controller.
type Option func(*Controller)

// WithThreshold overrides the commit distance.
func WithThreshold(threshold float64) Option {
	return func(c *Controller) { c.threshold = threshold }
}

// WithDamping overrides the drag damping factor.
func WithDamping(damping float64) Option {
	return func(c *Controller) { c.damping = damping }
}

// WithDelay overrides the simulated sync delay.
func WithDelay(delay time.Duration) Option {
	return func(c *Controller) { c.delay = delay }
}

// WithUpdatedCallback registers the "feed updated" notification hook.
func WithUpdatedCallback(fn func()) Option {
	return func(c *Controller) { c.onUpdated = fn }
}

// NewController creates a pull-to-refresh controller around a refresher.
func NewController(refresher Refresher, logger *zap.Logger, opts ...Option) *Controller {
	c := &Controller{
		threshold: DefaultThreshold,
		damping:   DefaultDamping,
		delay:     DefaultDelay,
		refresher: refresher,
		logger:    logger,
		state:     StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State reports the current gesture phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Begin starts tracking a drag. Tracking only begins from idle with the
// scroll container at its top; otherwise the touch is an ordinary scroll.
func (c *Controller) Begin(atTop bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle || !atTop {
		return false
	}
	c.state = StatePulling
	c.rawLen = 0
	return true
}

// Drag accumulates vertical drag distance and returns the damped indicator
// offset. Upward drags reduce the pull; the offset never goes negative.
func (c *Controller) Drag(delta float64) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePulling {
		return 0
	}
	c.rawLen += delta
	if c.rawLen < 0 {
		c.rawLen = 0
	}
	return c.rawLen * c.damping
}

// Offset returns the current damped pull distance.
func (c *Controller) Offset() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rawLen * c.damping
}

// Release ends the drag. Past the threshold it runs the refresher, holding
// the refreshing state for at least the configured delay, then emits the
// updated callback. Short pulls snap straight back to idle.
func (c *Controller) Release(ctx context.Context) (bool, error) {
	c.mu.Lock()
	if c.state != StatePulling {
		c.mu.Unlock()
		return false, nil
	}
	committed := c.rawLen*c.damping >= c.threshold
	c.rawLen = 0
	if !committed {
		c.state = StateIdle
		c.mu.Unlock()
		return false, nil
	}
	c.state = StateRefreshing
	c.mu.Unlock()

	err := c.runRefresh(ctx)

	c.mu.Lock()
	c.state = StateIdle
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn("feed refresh failed", zap.Error(err))
		return true, err
	}
	if c.onUpdated != nil {
		c.onUpdated()
	}
	return true, nil
}

func (c *Controller) runRefresh(ctx context.Context) error {
	started := time.Now()

	var err error
	if c.refresher != nil {
		err = c.refresher(ctx)
	}

	// Hold the spinner so fast refreshes do not flicker.
	if remaining := c.delay - time.Since(started); remaining > 0 {
		select {
		case <-time.After(remaining):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
