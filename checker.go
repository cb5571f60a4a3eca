package vis

// CycleHook schedules fire to run at the end of the host's current UI
// processing cycle, after all visibility queries for the cycle and
// before the next cycle's work begins. The engine arms it at most once
// per cycle; the integration glue owns the actual scheduling.
type CycleHook func(fire func())

// Checker is the visibility coordinator: the public face of the
// engine. It orchestrates the estimator-to-verifier fallback, memoizes
// results per element for the current cycle, and arms cache
// invalidation at the cycle boundary.
//
// A Checker must only be used from the thread that owns the UI
// hierarchy.
type Checker struct {
	verifier verifier
	cache    cycleCache
	hook     CycleHook
}

// New creates a Checker backed by the given rendering collaborator.
func New(renderer Renderer, opts ...Option) *Checker {
	c := &Checker{
		verifier: verifier{
			renderer: renderer,
			comparer: ThresholdComparer(DefaultSimilarityThreshold),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsNotVisible reports whether no part of the element is visible.
// An absent element is not visible.
func (c *Checker) IsNotVisible(e Element) bool {
	return c.PercentVisibleArea(e) == 0
}

// PercentVisibleArea returns the fraction in [0, 1] of the element's
// frame that is actually visible: not occluded, clipped, or
// off-screen. An absent element yields 0.
func (c *Checker) PercentVisibleArea(e Element) float64 {
	if e == nil {
		return 0
	}
	ent := c.ensure(e)
	if ent.fractionSet {
		return ent.fraction
	}

	est := estimateAreaVisibility(e)
	if !est.Fallback {
		ent.fraction, ent.fractionSet = est.Fraction, true
		return ent.fraction
	}
	Logger().Debug("estimator fallback",
		"element", e.Description(), "reason", est.Reason)

	memoize(ent, c.verifier.measure(e))
	return ent.fraction
}

// VisibleInteractionPoint returns a point, in window coordinates, that
// is safely interior to a visible region of the element and therefore
// suitable for a synthesized tap. ok is false when no such point
// exists, including for absent elements.
func (c *Checker) VisibleInteractionPoint(e Element) (pt Point, ok bool) {
	if e == nil {
		return Point{}, false
	}
	ent := c.ensure(e)
	if ent.pointSet {
		return ent.point, ent.hasPoint
	}

	pt, ok, est := estimateInteractionPoint(e)
	if !est.Fallback {
		ent.point, ent.hasPoint, ent.pointSet = pt, ok, true
		return pt, ok
	}
	Logger().Debug("estimator fallback",
		"element", e.Description(), "reason", est.Reason)

	memoize(ent, c.verifier.measure(e))
	return ent.point, ent.hasPoint
}

// RectEnclosingVisibleArea returns the minimal axis-aligned rectangle,
// in window coordinates, enclosing every visible pixel of the element.
// ok is false when nothing is visible or the element is absent. Exact
// enclosing bounds require pixel truth, so this always consults the
// verifier on a cache miss.
func (c *Checker) RectEnclosingVisibleArea(e Element) (r Rect, ok bool) {
	if e == nil {
		return Rect{}, false
	}
	ent := c.ensure(e)
	if ent.rectSet {
		return ent.rect, ent.hasRect
	}

	memoize(ent, c.verifier.measure(e))
	return ent.rect, ent.hasRect
}

// EndCycle discards every cached result and disarms the cycle hook.
// Host integration glue must call it exactly once per UI processing
// cycle, as the very last step of the cycle — either directly or via
// the fire callback handed to a CycleHook.
func (c *Checker) EndCycle() {
	Logger().Debug("invalidating visibility cache", "entries", c.cache.len())
	c.cache.invalidate()
}

// Diagnostics returns the raster buffers retained from the most recent
// verifier run, for failure reporting. Normal operation never reads
// them.
func (c *Checker) Diagnostics() Diagnostics {
	return c.verifier.diagnostics()
}

// ResetDiagnostics discards the retained raster buffers.
func (c *Checker) ResetDiagnostics() {
	c.verifier.resetDiagnostics()
}

// ensure returns the cache entry for e, arming the cycle hook on the
// first registration of the cycle.
func (c *Checker) ensure(e Element) *cacheEntry {
	ent := c.cache.entry(e)
	if !c.cache.armed && c.hook != nil {
		c.cache.armed = true
		c.hook(c.EndCycle)
	}
	return ent
}

// memoize records a verifier measurement into every still-unset field
// of the entry. Fields already set this cycle keep their value.
func memoize(ent *cacheEntry, m measurement) {
	if !ent.fractionSet {
		ent.fraction, ent.fractionSet = m.fraction, true
	}
	if !ent.pointSet {
		ent.point, ent.hasPoint, ent.pointSet = m.point, m.hasPoint, true
	}
	if !ent.rectSet {
		ent.rect, ent.hasRect, ent.rectSet = m.rect, m.hasRect, true
	}
}
