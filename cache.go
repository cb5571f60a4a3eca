package vis

// cacheEntry memoizes the three derivable results for one element
// within one cycle. Each field is write-once: set on first computation,
// cleared only by whole-cache invalidation.
type cacheEntry struct {
	fractionSet bool
	fraction    float64

	pointSet bool
	point    Point
	hasPoint bool

	rectSet bool
	rect    Rect
	hasRect bool
}

// cycleCache maps element identity to its memoized results for the
// current host UI cycle. Identity is the Element interface value
// itself, so entries pin their elements only until the end-of-cycle
// wipe; no address-reuse aliasing is possible while an entry lives.
//
// Single-threaded by the engine's contract; no locking.
type cycleCache struct {
	entries map[Element]*cacheEntry

	// armed records that the cycle hook has been scheduled for the
	// current cycle. Reset by invalidate so each cycle re-arms.
	armed bool
}

// entry returns the cache entry for e, creating an empty one on first
// query within the cycle.
func (c *cycleCache) entry(e Element) *cacheEntry {
	if c.entries == nil {
		c.entries = make(map[Element]*cacheEntry)
	}
	ent, ok := c.entries[e]
	if !ok {
		ent = &cacheEntry{}
		c.entries[e] = ent
	}
	return ent
}

// invalidate clears every entry and disarms the cycle hook.
func (c *cycleCache) invalidate() {
	clear(c.entries)
	c.armed = false
}

func (c *cycleCache) len() int {
	return len(c.entries)
}
