package vis

import (
	"errors"
	"math"
)

// CaptureMode selects how the rendering collaborator composites a capture.
type CaptureMode uint8

const (
	// CaptureComposited captures the scene exactly as displayed.
	CaptureComposited CaptureMode = iota

	// CaptureTargetAltered captures the scene with the target element's
	// fill color-inverted. Pixels where the target actually shows
	// through are guaranteed to differ from the composited capture,
	// while pixels covered by occluders stay identical. This is the
	// control buffer the verifier diffs against.
	CaptureTargetAltered
)

// String returns a human-readable name for the capture mode.
func (m CaptureMode) String() string {
	switch m {
	case CaptureComposited:
		return "Composited"
	case CaptureTargetAltered:
		return "TargetAltered"
	default:
		return "Unknown"
	}
}

// ErrEmptyRegion is returned by a Renderer when the requested capture
// region has no pixels. The verifier folds it into a zero-visibility
// result rather than surfacing it.
var ErrEmptyRegion = errors.New("vis: empty capture region")

// Renderer is the rendering collaborator: it rasterizes the scene
// containing the target element into a pixel buffer covering region.
//
// Implementations must render the same scene state for both modes of a
// capture pair; the engine calls them back to back within one query.
type Renderer interface {
	Rasterize(target Element, region Rect, mode CaptureMode) (*Pixmap, error)
}

// PixelComparer reports whether two pixels are similar enough to be
// considered the same, tolerating anti-aliasing and sub-pixel noise.
type PixelComparer func(a, b RGBA) bool

// DefaultSimilarityThreshold is the per-channel distance below which
// two pixels count as identical, in [0, 1] color units. 2/255 absorbs
// rounding introduced by 8-bit quantization without masking real
// content differences.
const DefaultSimilarityThreshold = 2.0 / 255.0

// ThresholdComparer returns a PixelComparer that treats two pixels as
// similar when every channel differs by at most threshold.
func ThresholdComparer(threshold float64) PixelComparer {
	return func(a, b RGBA) bool {
		return math.Abs(a.R-b.R) <= threshold &&
			math.Abs(a.G-b.G) <= threshold &&
			math.Abs(a.B-b.B) <= threshold &&
			math.Abs(a.A-b.A) <= threshold
	}
}
