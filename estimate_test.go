package vis

import (
	"math"
	"testing"
)

// stubElement is a minimal Element for estimator tests. Frames are
// given directly in window coordinates.
type stubElement struct {
	name      string
	frame     Rect
	parent    *stubElement
	children  []*stubElement
	clips     bool
	transform Matrix
	alpha     float64
	hidden    bool
	opaque    bool
}

func newStub(name string, frame Rect) *stubElement {
	return &stubElement{
		name:      name,
		frame:     frame,
		transform: Identity(),
		alpha:     1,
		opaque:    true,
	}
}

func (s *stubElement) add(children ...*stubElement) *stubElement {
	for _, c := range children {
		c.parent = s
		s.children = append(s.children, c)
	}
	return s
}

func (s *stubElement) Frame() Rect { return s.frame }

func (s *stubElement) Parent() Element {
	if s.parent == nil {
		return nil
	}
	return s.parent
}

func (s *stubElement) Children() []Element {
	out := make([]Element, len(s.children))
	for i, c := range s.children {
		out[i] = c
	}
	return out
}

func (s *stubElement) ClipsToBounds() bool { return s.clips }
func (s *stubElement) Transform() Matrix   { return s.transform }
func (s *stubElement) Alpha() float64      { return s.alpha }
func (s *stubElement) Hidden() bool        { return s.hidden }
func (s *stubElement) Opaque() bool        { return s.opaque }
func (s *stubElement) Description() string { return s.name }

func TestEstimateAreaVisibility(t *testing.T) {
	tests := []struct {
		name         string
		build        func() *stubElement // returns the element under test
		wantFraction float64
		wantFallback bool
	}{
		{
			name: "unoccluded fully inside root",
			build: func() *stubElement {
				root := newStub("root", RectWH(0, 0, 100, 100))
				e := newStub("e", RectWH(10, 10, 20, 20))
				root.add(e)
				return e
			},
			wantFraction: 1,
		},
		{
			name: "half outside window",
			build: func() *stubElement {
				root := newStub("root", RectWH(0, 0, 100, 100))
				e := newStub("e", RectWH(-10, 0, 20, 20))
				root.add(e)
				return e
			},
			wantFraction: 0.5,
		},
		{
			name: "hidden element",
			build: func() *stubElement {
				root := newStub("root", RectWH(0, 0, 100, 100))
				e := newStub("e", RectWH(10, 10, 20, 20))
				e.hidden = true
				root.add(e)
				return e
			},
			wantFraction: 0,
		},
		{
			name: "zero alpha element",
			build: func() *stubElement {
				root := newStub("root", RectWH(0, 0, 100, 100))
				e := newStub("e", RectWH(10, 10, 20, 20))
				e.alpha = 0
				root.add(e)
				return e
			},
			wantFraction: 0,
		},
		{
			name: "zero size frame",
			build: func() *stubElement {
				root := newStub("root", RectWH(0, 0, 100, 100))
				e := newStub("e", RectWH(10, 10, 0, 0))
				root.add(e)
				return e
			},
			wantFraction: 0,
		},
		{
			name: "hidden ancestor",
			build: func() *stubElement {
				root := newStub("root", RectWH(0, 0, 100, 100))
				mid := newStub("mid", RectWH(0, 0, 100, 100))
				mid.hidden = true
				e := newStub("e", RectWH(10, 10, 20, 20))
				root.add(mid)
				mid.add(e)
				return e
			},
			wantFraction: 0,
		},
		{
			name: "clipping ancestor cuts half",
			build: func() *stubElement {
				root := newStub("root", RectWH(0, 0, 100, 100))
				mid := newStub("mid", RectWH(0, 0, 20, 100))
				mid.clips = true
				e := newStub("e", RectWH(10, 10, 20, 20))
				root.add(mid)
				mid.add(e)
				return e
			},
			wantFraction: 0.5,
		},
		{
			name: "non-clipping ancestor does not cut",
			build: func() *stubElement {
				root := newStub("root", RectWH(0, 0, 100, 100))
				mid := newStub("mid", RectWH(0, 0, 20, 100))
				e := newStub("e", RectWH(10, 10, 20, 20))
				root.add(mid)
				mid.add(e)
				return e
			},
			wantFraction: 1,
		},
		{
			name: "opaque sibling fully covering",
			build: func() *stubElement {
				root := newStub("root", RectWH(0, 0, 100, 100))
				e := newStub("e", RectWH(10, 10, 20, 20))
				cover := newStub("cover", RectWH(10, 10, 20, 20))
				root.add(e, cover)
				return e
			},
			wantFraction: 0,
		},
		{
			name: "sibling below does not occlude",
			build: func() *stubElement {
				root := newStub("root", RectWH(0, 0, 100, 100))
				under := newStub("under", RectWH(10, 10, 20, 20))
				e := newStub("e", RectWH(10, 10, 20, 20))
				root.add(under, e)
				return e
			},
			wantFraction: 1,
		},
		{
			name: "opaque sibling partially covering",
			build: func() *stubElement {
				root := newStub("root", RectWH(0, 0, 100, 100))
				e := newStub("e", RectWH(10, 10, 20, 20))
				cover := newStub("cover", RectWH(10, 10, 10, 20))
				root.add(e, cover)
				return e
			},
			wantFallback: true,
		},
		{
			name: "translucent sibling covering",
			build: func() *stubElement {
				root := newStub("root", RectWH(0, 0, 100, 100))
				e := newStub("e", RectWH(10, 10, 20, 20))
				cover := newStub("cover", RectWH(10, 10, 20, 20))
				cover.alpha = 0.5
				root.add(e, cover)
				return e
			},
			wantFallback: true,
		},
		{
			name: "hidden sibling ignored",
			build: func() *stubElement {
				root := newStub("root", RectWH(0, 0, 100, 100))
				e := newStub("e", RectWH(10, 10, 20, 20))
				cover := newStub("cover", RectWH(10, 10, 20, 20))
				cover.hidden = true
				root.add(e, cover)
				return e
			},
			wantFraction: 1,
		},
		{
			name: "element with transform",
			build: func() *stubElement {
				root := newStub("root", RectWH(0, 0, 100, 100))
				e := newStub("e", RectWH(10, 10, 20, 20))
				e.transform = Rotate(math.Pi / 4)
				root.add(e)
				return e
			},
			wantFallback: true,
		},
		{
			name: "ancestor with transform",
			build: func() *stubElement {
				root := newStub("root", RectWH(0, 0, 100, 100))
				mid := newStub("mid", RectWH(0, 0, 100, 100))
				mid.transform = Scale(2, 2)
				e := newStub("e", RectWH(10, 10, 20, 20))
				root.add(mid)
				mid.add(e)
				return e
			},
			wantFallback: true,
		},
		{
			name: "ancestor with partial transparency",
			build: func() *stubElement {
				root := newStub("root", RectWH(0, 0, 100, 100))
				mid := newStub("mid", RectWH(0, 0, 100, 100))
				mid.alpha = 0.5
				e := newStub("e", RectWH(10, 10, 20, 20))
				root.add(mid)
				mid.add(e)
				return e
			},
			wantFallback: true,
		},
		{
			name: "rotated sibling overlapping",
			build: func() *stubElement {
				root := newStub("root", RectWH(0, 0, 100, 100))
				e := newStub("e", RectWH(10, 10, 20, 20))
				cover := newStub("cover", RectWH(5, 5, 40, 40))
				cover.transform = Rotate(math.Pi / 4)
				root.add(e, cover)
				return e
			},
			wantFallback: true,
		},
		{
			name: "rotated sibling far away",
			build: func() *stubElement {
				root := newStub("root", RectWH(0, 0, 100, 100))
				e := newStub("e", RectWH(10, 10, 20, 20))
				far := newStub("far", RectWH(70, 70, 10, 10))
				far.transform = Rotate(math.Pi / 4)
				far.clips = true
				root.add(e, far)
				return e
			},
			wantFraction: 1,
		},
		{
			name: "child of translated non-clipping sibling",
			build: func() *stubElement {
				// The holder's transform moves its subtree elsewhere;
				// the child's window frame is meaningless here and must
				// not be read as a cover.
				root := newStub("root", RectWH(0, 0, 100, 100))
				e := newStub("e", RectWH(10, 10, 20, 20))
				holder := newStub("holder", RectWH(60, 60, 10, 10))
				holder.transform = Translate(30, 30)
				poke := newStub("poke", RectWH(10, 10, 20, 20))
				root.add(e, holder)
				holder.add(poke)
				return e
			},
			wantFallback: true,
		},
		{
			name: "childless transformed sibling far away",
			build: func() *stubElement {
				root := newStub("root", RectWH(0, 0, 100, 100))
				e := newStub("e", RectWH(10, 10, 20, 20))
				far := newStub("far", RectWH(70, 70, 10, 10))
				far.transform = Rotate(math.Pi / 4)
				root.add(e, far)
				return e
			},
			wantFraction: 1,
		},
		{
			name: "translucent element",
			build: func() *stubElement {
				root := newStub("root", RectWH(0, 0, 100, 100))
				e := newStub("e", RectWH(10, 10, 20, 20))
				e.alpha = 0.5
				root.add(e)
				return e
			},
			wantFallback: true,
		},
		{
			name: "protruding child of non-clipping sibling",
			build: func() *stubElement {
				root := newStub("root", RectWH(0, 0, 100, 100))
				e := newStub("e", RectWH(10, 10, 20, 20))
				holder := newStub("holder", RectWH(60, 60, 10, 10))
				poke := newStub("poke", RectWH(10, 10, 20, 20))
				root.add(e, holder)
				holder.add(poke)
				return e
			},
			wantFraction: 0,
		},
		{
			name: "own children do not occlude",
			build: func() *stubElement {
				root := newStub("root", RectWH(0, 0, 100, 100))
				e := newStub("e", RectWH(10, 10, 20, 20))
				badge := newStub("badge", RectWH(10, 10, 20, 20))
				root.add(e)
				e.add(badge)
				return e
			},
			wantFraction: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := estimateAreaVisibility(tt.build())
			if got.Fallback != tt.wantFallback {
				t.Fatalf("Fallback = %v (reason %q), want %v", got.Fallback, got.Reason, tt.wantFallback)
			}
			if tt.wantFallback {
				return
			}
			if math.Abs(got.Fraction-tt.wantFraction) > 1e-9 {
				t.Errorf("Fraction = %v, want %v", got.Fraction, tt.wantFraction)
			}
		})
	}
}

func TestEstimateInteractionPoint(t *testing.T) {
	root := newStub("root", RectWH(0, 0, 100, 100))
	e := newStub("e", RectWH(10, 10, 20, 20))
	root.add(e)

	pt, ok, est := estimateInteractionPoint(e)
	if est.Fallback {
		t.Fatalf("unexpected fallback: %s", est.Reason)
	}
	if !ok {
		t.Fatal("expected an interaction point")
	}
	if want := Pt(20, 20); !pt.Eq(want) {
		t.Errorf("point = %v, want %v", pt, want)
	}
}

func TestEstimateInteractionPointTooSmall(t *testing.T) {
	root := newStub("root", RectWH(0, 0, 100, 100))
	e := newStub("e", RectWH(10, 10, 3, 3))
	root.add(e)

	// 9 sample points is below the minimum; geometry must defer.
	_, ok, est := estimateInteractionPoint(e)
	if ok {
		t.Error("expected no interaction point from geometry")
	}
	if !est.Fallback {
		t.Error("expected fallback for sub-minimum visible rect")
	}
}

func TestEstimateInteractionPointInvisible(t *testing.T) {
	root := newStub("root", RectWH(0, 0, 100, 100))
	e := newStub("e", RectWH(10, 10, 20, 20))
	e.hidden = true
	root.add(e)

	_, ok, est := estimateInteractionPoint(e)
	if ok {
		t.Error("expected no interaction point for hidden element")
	}
	if est.Fallback {
		t.Error("hidden element is exactly invisible, not ambiguous")
	}
}
