package vis

// measurement is the verifier's ground-truth answer for one element.
// A zero measurement (fraction 0, no point, no rect) is also the
// terminal result for rasterization failures.
type measurement struct {
	fraction float64
	point    Point
	hasPoint bool
	rect     Rect
	hasRect  bool
}

// Diagnostics holds the most recent raster buffers retained by the
// verifier, for failure reporting. All fields may be nil if no
// verification has run since the last reset.
type Diagnostics struct {
	// Before is the composited capture: the scene as displayed.
	Before *Pixmap

	// Expected is the control capture: the scene with the target
	// element's fill altered.
	Expected *Pixmap

	// Diff marks the differing pixels white on black; exactly the
	// pixels the verifier counted as visible.
	Diff *Pixmap
}

// verifier is the thorough checker: it rasterizes the element's region
// in both capture modes and diffs the buffers pixel by pixel.
type verifier struct {
	renderer Renderer
	comparer PixelComparer

	lastBefore   *Pixmap
	lastExpected *Pixmap
	lastDiff     *Pixmap
}

// measure computes exact visibility for e. Rasterization failures
// degrade to a zero measurement; they are never surfaced as errors.
func (v *verifier) measure(e Element) measurement {
	if v.renderer == nil {
		Logger().Warn("verifier: no renderer configured", "element", e.Description())
		return measurement{}
	}

	frame := e.Frame()
	region := frame.Intersect(rootOf(e).Frame())
	if region.IsEmpty() {
		Logger().Debug("verifier: empty capture region", "element", e.Description())
		return measurement{}
	}

	before, err := v.renderer.Rasterize(e, region, CaptureComposited)
	if err != nil {
		Logger().Warn("verifier: composited capture failed",
			"element", e.Description(), "error", err)
		return measurement{}
	}
	expected, err := v.renderer.Rasterize(e, region, CaptureTargetAltered)
	if err != nil {
		Logger().Warn("verifier: control capture failed",
			"element", e.Description(), "error", err)
		return measurement{}
	}

	w, h := before.Width(), before.Height()
	if w <= 0 || h <= 0 || expected.Width() != w || expected.Height() != h {
		Logger().Warn("verifier: capture size mismatch",
			"element", e.Description(),
			"before", before.Bounds(), "expected", expected.Bounds())
		return measurement{}
	}

	mask := make([]bool, w*h)
	diff := NewPixmap(w, h)
	count := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !v.comparer(before.GetPixel(x, y), expected.GetPixel(x, y)) {
				mask[y*w+x] = true
				diff.SetPixel(x, y, White)
				count++
			}
		}
	}

	v.lastBefore = before
	v.lastExpected = expected
	v.lastDiff = diff

	if count == 0 {
		return measurement{}
	}

	// Visible fraction is relative to the element's full frame, so the
	// off-screen part of a partially clipped element counts as hidden.
	frameBounds := frame.Round()
	total := frameBounds.Dx() * frameBounds.Dy()
	if total <= 0 {
		return measurement{}
	}
	fraction := float64(count) / float64(total)
	if fraction > 1 {
		fraction = 1
	}

	origin := RectFromImage(region.Round()).Min
	m := measurement{
		fraction: fraction,
		rect:     enclosingRect(mask, w, h, origin),
		hasRect:  true,
	}
	m.point, m.hasPoint = interactionPoint(mask, w, h, origin)

	Logger().Debug("verifier: measured element",
		"element", e.Description(),
		"fraction", m.fraction,
		"visiblePixels", count,
		"hasPoint", m.hasPoint)
	return m
}

func (v *verifier) diagnostics() Diagnostics {
	return Diagnostics{
		Before:   v.lastBefore,
		Expected: v.lastExpected,
		Diff:     v.lastDiff,
	}
}

func (v *verifier) resetDiagnostics() {
	v.lastBefore = nil
	v.lastExpected = nil
	v.lastDiff = nil
}

// enclosingRect returns the minimal axis-aligned rectangle, in window
// coordinates, bounding every set pixel of mask. The mask must contain
// at least one set pixel.
func enclosingRect(mask []bool, w, h int, origin Point) Rect {
	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !mask[y*w+x] {
				continue
			}
			if x < minX {
				minX = x
			}
			if y < minY {
				minY = y
			}
			if x > maxX {
				maxX = x
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	return Rect{
		Min: Point{X: origin.X + float64(minX), Y: origin.Y + float64(minY)},
		Max: Point{X: origin.X + float64(maxX+1), Y: origin.Y + float64(maxY+1)},
	}
}

// interactionNeighborhoodRadius is the smallest Chebyshev radius whose
// square window holds at least MinimumPointsVisibleForInteraction
// samples.
func interactionNeighborhoodRadius() int {
	r := 1
	for (2*r+1)*(2*r+1) < MinimumPointsVisibleForInteraction {
		r++
	}
	return r
}

// interactionPoint selects a visible pixel safely interior to a visible
// region: at least MinimumPointsVisibleForInteraction of the samples in
// the square neighborhood around it (itself included) must be visible.
// Among qualifying pixels the one with the most visible neighbors wins,
// ties going to the pixel nearest the centroid of all visible pixels.
// Reports false when no pixel qualifies: too little of the element
// shows to tap it reliably.
func interactionPoint(mask []bool, w, h int, origin Point) (Point, bool) {
	r := interactionNeighborhoodRadius()

	var sumX, sumY, n int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask[y*w+x] {
				sumX += x
				sumY += y
				n++
			}
		}
	}
	if n == 0 {
		return Point{}, false
	}
	cx := float64(sumX) / float64(n)
	cy := float64(sumY) / float64(n)

	bestScore := 0
	bestDist := 0.0
	bestX, bestY := -1, -1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !mask[y*w+x] {
				continue
			}
			score := 0
			for ny := y - r; ny <= y+r; ny++ {
				for nx := x - r; nx <= x+r; nx++ {
					if nx >= 0 && nx < w && ny >= 0 && ny < h && mask[ny*w+nx] {
						score++
					}
				}
			}
			if score < MinimumPointsVisibleForInteraction {
				continue
			}
			dx, dy := float64(x)-cx, float64(y)-cy
			dist := dx*dx + dy*dy
			if score > bestScore || (score == bestScore && dist < bestDist) {
				bestScore = score
				bestDist = dist
				bestX, bestY = x, y
			}
		}
	}
	if bestX < 0 {
		return Point{}, false
	}
	return Point{
		X: origin.X + float64(bestX) + 0.5,
		Y: origin.Y + float64(bestY) + 0.5,
	}, true
}
