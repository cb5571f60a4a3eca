package vis

// MinimumPointsVisibleForInteraction is the least number of distinct
// sample points, at integer resolution, that must be visible around a
// candidate interaction point for the point to be considered safely
// tappable.
const MinimumPointsVisibleForInteraction = 10

// Estimate is the geometric estimator's answer for one element.
// When Fallback is set the other fields are untrustworthy and the
// rendering-based verifier must decide instead.
type Estimate struct {
	// Fraction is the estimated visible area in [0, 1] of the
	// element's frame.
	Fraction float64

	// Visible is the estimated visible rectangle in window
	// coordinates. Zero when Fraction is zero.
	Visible Rect

	// Fallback signals that pure geometry cannot decide: a transform,
	// partial transparency, or irregular occlusion is in play.
	Fallback bool

	// Reason names what triggered the fallback, for diagnostics.
	Reason string
}

func exactEstimate(fraction float64, visible Rect) Estimate {
	return Estimate{Fraction: fraction, Visible: visible}
}

func fallbackEstimate(reason string) Estimate {
	return Estimate{Fallback: true, Reason: reason}
}

// estimateAreaVisibility computes the visible fraction of e using only
// bounding-box intersection against the ancestor chain and a z-order
// scan for occluding elements. It is a pure function of the current
// hierarchy state.
//
// The caller must pre-filter absent elements.
func estimateAreaVisibility(e Element) Estimate {
	frame := e.Frame()
	if frame.IsEmpty() {
		return exactEstimate(0, Rect{})
	}
	if e.Hidden() || e.Alpha() <= 0 {
		return exactEstimate(0, Rect{})
	}
	if !e.Transform().IsIdentity() {
		return fallbackEstimate("element has transform")
	}
	if e.Alpha() < 1 {
		return fallbackEstimate("element has partial transparency")
	}

	// Clip the frame against every ancestor's visible bounds. The root
	// clips unconditionally: content outside the window is off-screen.
	visible := frame
	for anc := e.Parent(); anc != nil; anc = anc.Parent() {
		if anc.Hidden() || anc.Alpha() <= 0 {
			return exactEstimate(0, Rect{})
		}
		if !anc.Transform().IsIdentity() {
			return fallbackEstimate("ancestor has transform")
		}
		if anc.Alpha() < 1 {
			return fallbackEstimate("ancestor has partial transparency")
		}
		if anc.ClipsToBounds() || anc.Parent() == nil {
			visible = visible.Intersect(anc.Frame())
			if visible.IsEmpty() {
				return exactEstimate(0, Rect{})
			}
		}
	}

	// Scan elements stacked above the element's branch at every level
	// of the hierarchy.
	branch := e
	for anc := e.Parent(); anc != nil; anc = anc.Parent() {
		sibs := anc.Children()
		idx := indexOfElement(sibs, branch)
		if idx < 0 {
			// Inconsistent hierarchy; let the verifier decide.
			return fallbackEstimate("element not among parent's children")
		}
		for _, sib := range sibs[idx+1:] {
			covered, fb, reason := scanOccluder(sib, visible)
			if fb {
				return fallbackEstimate(reason)
			}
			if covered {
				return exactEstimate(0, Rect{})
			}
		}
		branch = anc
	}

	return exactEstimate(visible.Area()/frame.Area(), visible)
}

// scanOccluder inspects one element stacked above the target. It
// reports covered=true when occ provably hides all of visible, and
// fallback=true when occ overlaps visible in a way geometry cannot
// resolve exactly.
func scanOccluder(occ Element, visible Rect) (covered, fallback bool, reason string) {
	if occ.Hidden() || occ.Alpha() <= 0 {
		return false, false, ""
	}

	frame := occ.Frame()
	if !occ.Transform().IsIdentity() {
		// Bound the transformed footprint; any overlap is ambiguous.
		c := frame.Center()
		about := Translate(c.X, c.Y).Multiply(occ.Transform()).Multiply(Translate(-c.X, -c.Y))
		box, _ := about.TransformRect(frame)
		if !box.Intersect(visible).IsEmpty() {
			return false, true, "occluder has transform"
		}
		// Children render through the transform, so their window frames
		// say nothing about where they actually land.
		if !occ.ClipsToBounds() && len(occ.Children()) > 0 {
			return false, true, "transformed occluder has children"
		}
		return false, false, ""
	}

	overlap := frame.Intersect(visible)
	if overlap.IsEmpty() {
		// Children may protrude past a non-clipping element.
		if !occ.ClipsToBounds() {
			return scanOccluderChildren(occ, visible)
		}
		return false, false, ""
	}

	if !occ.Opaque() || occ.Alpha() < 1 {
		return false, true, "occluder not opaque"
	}
	if frame.ContainsRect(visible) {
		return true, false, ""
	}
	// Partial opaque overlap: the remaining visible shape may not be
	// rectangular.
	return false, true, "occluder partially overlaps"
}

func scanOccluderChildren(occ Element, visible Rect) (bool, bool, string) {
	for _, child := range occ.Children() {
		covered, fb, reason := scanOccluder(child, visible)
		if fb {
			return false, true, reason
		}
		if covered {
			return true, false, ""
		}
	}
	return false, false, ""
}

// estimateInteractionPoint proposes a tap point inside the estimated
// visible rectangle, reasonably centered. It defers to the verifier
// whenever the rectangle is too small to hold the minimum visible
// sample points, since boundary effects dominate at that scale.
func estimateInteractionPoint(e Element) (Point, bool, Estimate) {
	est := estimateAreaVisibility(e)
	if est.Fallback {
		return Point{}, false, est
	}
	if est.Fraction <= 0 {
		return Point{}, false, est
	}
	samples := int(est.Visible.Width()) * int(est.Visible.Height())
	if samples < MinimumPointsVisibleForInteraction {
		return Point{}, false, fallbackEstimate("visible rect below minimum sample points")
	}
	return est.Visible.Center(), true, est
}

func indexOfElement(els []Element, e Element) int {
	for i, cand := range els {
		if cand == e {
			return i
		}
	}
	return -1
}
