package reveal

import "time"

const (
	defaultThreshold          = 0.10
	defaultBottomInsetPx      = 50.0
	defaultTransitionDuration = time.Second
	defaultDelayStep          = 100 * time.Millisecond
)

// Config carries the geometry and presentation constants shared between the
// controller and the client-side mirror script.
type Config struct {
	// Threshold is the fraction of a target that must sit inside the
	// observed region before it counts as entered.
	Threshold float64 `json:"threshold"`
	// BottomInsetPx shrinks the viewport from its bottom edge so the reveal
	// fires slightly before the target is fully in view.
	BottomInsetPx float64 `json:"bottom_inset_px"`
	// TransitionDuration is how long the opacity/offset transition runs.
	TransitionDuration time.Duration `json:"-"`
	// DelayStep spaces the transitions of sequential siblings.
	DelayStep time.Duration `json:"-"`

	// Millisecond views of the durations for JSON serialization.
	TransitionMillis int64 `json:"transition_ms"`
	DelayStepMillis  int64 `json:"delay_step_ms"`
}

// DefaultConfig returns the reveal constants used across the site.
func DefaultConfig() Config {
	cfg := Config{
		Threshold:          defaultThreshold,
		BottomInsetPx:      defaultBottomInsetPx,
		TransitionDuration: defaultTransitionDuration,
		DelayStep:          defaultDelayStep,
	}
	cfg.TransitionMillis = cfg.TransitionDuration.Milliseconds()
	cfg.DelayStepMillis = cfg.DelayStep.Milliseconds()
	return cfg
}

// Stagger returns the presentation delay for the index-th sibling in a
// sequentially revealed group. Negative indices collapse to zero.
func (c Config) Stagger(index int) time.Duration {
	if index <= 0 {
		return 0
	}
	return time.Duration(index) * c.DelayStep
}
