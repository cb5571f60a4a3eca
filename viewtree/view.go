// Package viewtree provides a concrete, in-process view hierarchy and a
// software compositor implementing the vis collaborator interfaces. It
// is the reference host used by the engine's tests and by pure-Go UIs
// that want visibility checking without a platform bridge.
package viewtree

import (
	"fmt"
	"image"

	"github.com/probeui/vis"
)

// View is a rectangular element in a back-to-front composited
// hierarchy. It implements vis.Element.
//
// Frames are expressed in the parent's coordinate space; the window
// frame reported to the engine accumulates ancestor origins. A view's
// transform applies about the center of its frame and is a rendering
// concern only: it never changes the reported frame.
type View struct {
	frame      vis.Rect
	background vis.RGBA
	alpha      float64
	hidden     bool
	opaque     bool
	clips      bool
	transform  vis.Matrix
	name       string

	parent   *View
	subviews []*View

	// PaintFunc, when set, draws custom content over the background
	// fill, in the view's local coordinate space. Content drawn here
	// participates in visibility checking like the background does.
	PaintFunc func(dst *image.RGBA)
}

// NewView creates an opaque white view with the given frame, in its
// future parent's coordinates. The name appears in diagnostics.
func NewView(name string, frame vis.Rect) *View {
	return &View{
		frame:      frame,
		background: vis.White,
		alpha:      1,
		opaque:     true,
		transform:  vis.Identity(),
		name:       name,
	}
}

// SetFrame replaces the view's frame, in parent coordinates.
func (v *View) SetFrame(frame vis.Rect) { v.frame = frame }

// SetBackground sets the background fill color. Callers painting
// translucent backgrounds should also SetOpaque(false) so the
// estimator stops treating the view as a full occluder.
func (v *View) SetBackground(c vis.RGBA) { v.background = c }

// SetAlpha sets the view's opacity, clamped to [0, 1].
func (v *View) SetAlpha(a float64) {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	v.alpha = a
}

// SetHidden hides or shows the view and its subtree.
func (v *View) SetHidden(h bool) { v.hidden = h }

// SetOpaque declares whether the view's content fully covers its frame.
func (v *View) SetOpaque(o bool) { v.opaque = o }

// SetClipsToBounds controls whether subviews are clipped to the frame.
func (v *View) SetClipsToBounds(c bool) { v.clips = c }

// SetTransform sets the view's transform, applied about the frame
// center.
func (v *View) SetTransform(m vis.Matrix) { v.transform = m }

// AddSubview appends child on top of the existing subviews.
func (v *View) AddSubview(child *View) {
	child.detach()
	child.parent = v
	v.subviews = append(v.subviews, child)
}

// InsertSubview places child at index in the subview stack, where 0 is
// the back. Indices out of range clamp to the ends.
func (v *View) InsertSubview(child *View, index int) {
	child.detach()
	if index < 0 {
		index = 0
	}
	if index > len(v.subviews) {
		index = len(v.subviews)
	}
	child.parent = v
	v.subviews = append(v.subviews, nil)
	copy(v.subviews[index+1:], v.subviews[index:])
	v.subviews[index] = child
}

// RemoveFromParent detaches the view from its parent, if any.
func (v *View) RemoveFromParent() { v.detach() }

func (v *View) detach() {
	p := v.parent
	if p == nil {
		return
	}
	for i, sub := range p.subviews {
		if sub == v {
			p.subviews = append(p.subviews[:i], p.subviews[i+1:]...)
			break
		}
	}
	v.parent = nil
}

// BringSubviewToFront moves child to the top of the subview stack.
func (v *View) BringSubviewToFront(child *View) {
	for i, sub := range v.subviews {
		if sub == child {
			copy(v.subviews[i:], v.subviews[i+1:])
			v.subviews[len(v.subviews)-1] = child
			return
		}
	}
}

// Subviews returns the subview stack in back-to-front order.
func (v *View) Subviews() []*View { return v.subviews }

// Superview returns the parent view, or nil.
func (v *View) Superview() *View { return v.parent }

// Frame implements vis.Element. It returns the view's frame in window
// coordinates, accumulated over the ancestor chain and ignoring
// transforms.
func (v *View) Frame() vis.Rect {
	off := vis.Point{}
	for p := v.parent; p != nil; p = p.parent {
		off = off.Add(p.frame.Min)
	}
	return v.frame.Translate(off.X, off.Y)
}

// Parent implements vis.Element.
func (v *View) Parent() vis.Element {
	if v.parent == nil {
		return nil
	}
	return v.parent
}

// Children implements vis.Element, returning subviews back-to-front.
func (v *View) Children() []vis.Element {
	if len(v.subviews) == 0 {
		return nil
	}
	out := make([]vis.Element, len(v.subviews))
	for i, sub := range v.subviews {
		out[i] = sub
	}
	return out
}

// ClipsToBounds implements vis.Element.
func (v *View) ClipsToBounds() bool { return v.clips }

// Transform implements vis.Element.
func (v *View) Transform() vis.Matrix { return v.transform }

// Alpha implements vis.Element.
func (v *View) Alpha() float64 { return v.alpha }

// Hidden implements vis.Element.
func (v *View) Hidden() bool { return v.hidden }

// Opaque implements vis.Element.
func (v *View) Opaque() bool {
	return v.opaque && v.alpha >= 1 && v.background.A >= 1
}

// Description implements vis.Element.
func (v *View) Description() string {
	name := v.name
	if name == "" {
		name = "view"
	}
	f := v.frame
	return fmt.Sprintf("%s(%gx%g@%g,%g)", name, f.Width(), f.Height(), f.Min.X, f.Min.Y)
}
