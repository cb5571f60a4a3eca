// Package vis determines how much of an on-screen UI element is actually
// visible to a user, and where on the element a synthesized tap can safely
// land. It is the visibility engine behind automated UI-test assertions and
// interactions.
//
// # Overview
//
// Visibility is answered in two tiers. A geometric estimator intersects the
// element's frame with its ancestors' visible bounds and inspects z-order
// overlap; it is cheap but conservative, and signals fallback whenever
// transforms, transparency, or irregular occlusion make pure geometry
// untrustworthy. The rendering-based verifier then captures the element's
// region twice through the injected Renderer (once composited normally, once
// with the element's own fill altered) and diffs the two buffers pixel by
// pixel, yielding exact visible area, an interaction point interior to a
// visible region, and the minimal rectangle enclosing all visible pixels.
//
// # Quick Start
//
//	// Compositor is any vis.Renderer; viewtree ships a reference one.
//	checker := vis.New(compositor)
//
//	frac := checker.PercentVisibleArea(element)
//	pt, ok := checker.VisibleInteractionPoint(element)
//
//	// Host integration: invalidate cached results at the end of each
//	// UI processing cycle.
//	checker.EndCycle()
//
// # Caching
//
// Results are memoized per element for the duration of one host UI cycle, so
// repeated assertions within a cycle never re-rasterize. The host (or a
// CycleHook wired via WithCycleHook) calls EndCycle exactly once per cycle to
// discard every cached result before the next cycle begins.
//
// # Concurrency
//
// The engine is single-threaded by contract: all queries and EndCycle must
// run on the thread that owns the UI hierarchy. There is no internal locking.
//
// # Collaborators
//
// The element tree and the rasterizer are consumed through the Element and
// Renderer interfaces and are never owned by the engine. The viewtree
// subpackage provides a concrete view hierarchy and software compositor for
// tests and pure-Go hosts.
package vis
