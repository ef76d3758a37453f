package reveal

import "sync"

// Viewport is a headless observation source: a scrollable window that
// evaluates target bounds against the inset region on every scroll change.
// It backs the controller in tests and mirrors what the client script does
// with the browser's IntersectionObserver.
type Viewport struct {
	cfg Config

	mu           sync.Mutex
	width        float64
	height       float64
	scrollY      float64
	observations map[*viewportObservation]struct{}
}

// NewViewport constructs a viewport of the given size scrolled to the top.
func NewViewport(cfg Config, width, height float64) *Viewport {
	return &Viewport{
		cfg:          cfg,
		width:        width,
		height:       height,
		observations: make(map[*viewportObservation]struct{}),
	}
}

// Observe starts watching target and reports its current intersection ratio
// immediately, then again on every scroll change until stopped.
func (v *Viewport) Observe(target Target, report func(ratio float64)) (Observer, error) {
	observation := &viewportObservation{viewport: v, target: target, report: report}

	v.mu.Lock()
	v.observations[observation] = struct{}{}
	window := v.window()
	v.mu.Unlock()

	report(IntersectionRatio(target.Bounds(), window, v.cfg.BottomInsetPx))
	return observation, nil
}

// SetScroll moves the window to the given vertical offset and re-reports
// every active observation.
func (v *Viewport) SetScroll(y float64) {
	v.mu.Lock()
	v.scrollY = y
	window := v.window()
	active := make([]*viewportObservation, 0, len(v.observations))
	for observation := range v.observations {
		active = append(active, observation)
	}
	v.mu.Unlock()

	for _, observation := range active {
		observation.report(IntersectionRatio(observation.target.Bounds(), window, v.cfg.BottomInsetPx))
	}
}

// ObservationCount returns the number of active observations.
func (v *Viewport) ObservationCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.observations)
}

func (v *Viewport) window() Rect {
	return Rect{Left: 0, Top: v.scrollY, Width: v.width, Height: v.height}
}

func (v *Viewport) remove(observation *viewportObservation) {
	v.mu.Lock()
	delete(v.observations, observation)
	v.mu.Unlock()
}

type viewportObservation struct {
	viewport *Viewport
	target   Target
	report   func(ratio float64)
}

func (o *viewportObservation) Stop() {
	o.viewport.remove(o)
}
