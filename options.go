package vis

// Option configures a Checker during creation.
//
// Example:
//
//	// Default configuration
//	checker := vis.New(renderer)
//
//	// Looser pixel comparison for noisy capture paths
//	checker := vis.New(renderer, vis.WithSimilarityThreshold(8.0/255.0))
type Option func(*Checker)

// WithComparer sets a custom pixel similarity predicate for the
// verifier. Use this when the capture path has known noise
// characteristics the default per-channel threshold cannot model.
func WithComparer(cmp PixelComparer) Option {
	return func(c *Checker) {
		if cmp != nil {
			c.verifier.comparer = cmp
		}
	}
}

// WithSimilarityThreshold sets the per-channel distance below which two
// pixels count as identical, replacing DefaultSimilarityThreshold.
func WithSimilarityThreshold(threshold float64) Option {
	return WithComparer(ThresholdComparer(threshold))
}

// WithCycleHook wires the host's end-of-cycle scheduling mechanism.
// When set, the Checker arms the hook once per cycle, on the first
// query of the cycle; the hook must arrange for fire to run after the
// cycle's pending work and before the next cycle begins. Without a
// hook, the host calls Checker.EndCycle directly.
func WithCycleHook(hook CycleHook) Option {
	return func(c *Checker) {
		c.hook = hook
	}
}
