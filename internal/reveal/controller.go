// Package reveal implements the one-shot scroll reveal used by every content
// section on the site. A Controller observes targets entering the viewport
// through an injectable ObserverFactory and flips a monotonic visibility flag
// per target; presentation (opacity, offset, transition timing) is owned by
// the caller.
package reveal

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Target exposes the page-coordinate bounds of an observed element.
type Target interface {
	Bounds() Rect
}

// Observer is a live observation subscription for a single target.
type Observer interface {
	Stop()
}

// ObserverFactory creates observations. The report callback receives the
// current intersection ratio of the target against the observed region; it
// may be invoked synchronously from Observe.
type ObserverFactory interface {
	Observe(target Target, report func(ratio float64)) (Observer, error)
}

// ControllerConfig wires a Controller's dependencies.
type ControllerConfig struct {
	Config  Config
	Factory ObserverFactory
	Clock   func() time.Time
	Logger  *zap.Logger
}

// Controller tracks registered targets and their reveal state.
type Controller struct {
	cfg     Config
	factory ObserverFactory
	clock   func() time.Time
	logger  *zap.Logger

	mu      sync.Mutex
	handles map[*Handle]struct{}
}

// NewController constructs a Controller. A nil Factory is tolerated: targets
// registered without an observation source fail open and become visible
// immediately rather than staying hidden forever.
func NewController(cfg ControllerConfig) *Controller {
	config := cfg.Config
	if config.Threshold == 0 && config.BottomInsetPx == 0 && config.DelayStep == 0 {
		config = DefaultConfig()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		cfg:     config,
		factory: cfg.Factory,
		clock:   clock,
		logger:  logger,
		handles: make(map[*Handle]struct{}),
	}
}

// Config returns the reveal constants the controller operates with.
func (c *Controller) Config() Config {
	return c.cfg
}

// Register begins observing target and returns its reveal handle. The delay
// is presentation metadata applied when the visible transition starts; use
// Config.Stagger for sequential siblings.
func (c *Controller) Register(target Target, delay time.Duration) *Handle {
	handle := &Handle{controller: c, delay: delay}

	if c.factory == nil {
		handle.markVisible(c.clock())
		c.track(handle)
		return handle
	}

	observer, err := c.factory.Observe(target, func(ratio float64) {
		c.report(handle, ratio)
	})
	if err != nil {
		c.logger.Warn("observation unavailable, revealing target immediately", zap.Error(err))
		handle.markVisible(c.clock())
		c.track(handle)
		return handle
	}

	handle.mu.Lock()
	handle.observer = observer
	alreadyVisible := handle.visible
	handle.mu.Unlock()
	if alreadyVisible {
		// The factory reported an initial intersection synchronously.
		handle.stopObservation()
	}

	c.track(handle)
	return handle
}

// Close releases every registered handle and its observation.
func (c *Controller) Close() {
	c.mu.Lock()
	handles := make([]*Handle, 0, len(c.handles))
	for handle := range c.handles {
		handles = append(handles, handle)
	}
	c.handles = make(map[*Handle]struct{})
	c.mu.Unlock()

	for _, handle := range handles {
		handle.stopObservation()
	}
}

func (c *Controller) report(handle *Handle, ratio float64) {
	if ratio < c.cfg.Threshold {
		return
	}
	if handle.markVisible(c.clock()) {
		handle.stopObservation()
	}
}

func (c *Controller) track(handle *Handle) {
	c.mu.Lock()
	c.handles[handle] = struct{}{}
	c.mu.Unlock()
}

func (c *Controller) untrack(handle *Handle) {
	c.mu.Lock()
	delete(c.handles, handle)
	c.mu.Unlock()
}

// Handle is the reveal state for one registered target. Visibility is
// monotonic: once true it never reverts, and the underlying observation is
// stopped on the first crossing.
type Handle struct {
	controller *Controller
	delay      time.Duration

	mu        sync.Mutex
	visible   bool
	visibleAt time.Time
	observer  Observer
}

// Visible reports whether the target has crossed into the observed region.
func (h *Handle) Visible() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.visible
}

// Delay returns the configured presentation delay.
func (h *Handle) Delay() time.Duration {
	return h.delay
}

// TransitionStart returns the instant the visible transition should begin,
// which is the crossing time plus the configured delay. The second return is
// false while the target is still hidden.
func (h *Handle) TransitionStart() (time.Time, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.visible {
		return time.Time{}, false
	}
	return h.visibleAt.Add(h.delay), true
}

// Release stops the observation (whether or not the transition fired) and
// detaches the handle from its controller. Releasing one handle never
// affects others.
func (h *Handle) Release() {
	h.stopObservation()
	h.controller.untrack(h)
}

func (h *Handle) markVisible(now time.Time) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.visible {
		return false
	}
	h.visible = true
	h.visibleAt = now
	return true
}

func (h *Handle) stopObservation() {
	h.mu.Lock()
	observer := h.observer
	h.observer = nil
	h.mu.Unlock()
	if observer != nil {
		observer.Stop()
	}
}
