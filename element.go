package vis

// Element is a handle to a UI element in the host's view hierarchy.
// The engine never owns or copies an element; it only observes it for
// the duration of one query.
//
// Identity is the interface value itself: implementations must be
// comparable (typically pointer receivers), and two handles to the same
// element must compare equal. A nil Element is "absent" and yields the
// most conservative result from every Checker operation.
//
// All geometry is reported in window coordinates.
type Element interface {
	// Frame returns the element's untransformed bounding rectangle.
	Frame() Rect

	// Parent returns the enclosing element, or nil at the root.
	Parent() Element

	// Children returns the element's children in back-to-front
	// z-order: later entries render on top of earlier ones.
	Children() []Element

	// ClipsToBounds reports whether descendants are clipped to the
	// element's frame.
	ClipsToBounds() bool

	// Transform returns the element's own transform, applied about
	// the center of its frame.
	Transform() Matrix

	// Alpha returns the element's opacity in [0, 1].
	Alpha() float64

	// Hidden reports whether the element is explicitly hidden.
	// Hidden elements and their subtrees never render.
	Hidden() bool

	// Opaque reports whether the element's rendered content fully
	// covers its frame with no transparent pixels. The estimator
	// treats only opaque elements as occluders it can reason about.
	Opaque() bool

	// Description returns a human-readable identification of the
	// element, used in diagnostics only.
	Description() string
}

// rootOf walks to the topmost ancestor of e.
func rootOf(e Element) Element {
	for e.Parent() != nil {
		e = e.Parent()
	}
	return e
}
