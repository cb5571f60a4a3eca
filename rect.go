package vis

import (
	"image"
	"math"
)

// epsilon is the tolerance for floating-point comparisons.
const epsilon = 1e-9

// Rect represents an axis-aligned rectangle in window coordinates.
// Min is the top-left corner, Max the bottom-right corner.
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points.
// The points are normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// RectWH creates a rectangle from origin and size.
func RectWH(x, y, w, h float64) Rect {
	return NewRect(Point{X: x, Y: y}, Point{X: x + w, Y: y + h})
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Area returns the area of the rectangle, zero if empty.
func (r Rect) Area() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Width() * r.Height()
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Max.X-r.Min.X <= epsilon || r.Max.Y-r.Min.Y <= epsilon
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{
		X: (r.Min.X + r.Max.X) * 0.5,
		Y: (r.Min.Y + r.Max.Y) * 0.5,
	}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ContainsRect returns true if other lies entirely within r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.Min.X >= r.Min.X && other.Min.Y >= r.Min.Y &&
		other.Max.X <= r.Max.X && other.Max.Y <= r.Max.Y
}

// Intersect returns the intersection of two rectangles.
// Returns the zero rect if they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	out := Rect{
		Min: Point{X: math.Max(r.Min.X, other.Min.X), Y: math.Max(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Min(r.Max.X, other.Max.X), Y: math.Min(r.Max.Y, other.Max.Y)},
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// Union returns the smallest rectangle containing both r and other.
// An empty rectangle does not grow the result.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Translate returns the rectangle offset by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{
		Min: Point{X: r.Min.X + dx, Y: r.Min.Y + dy},
		Max: Point{X: r.Max.X + dx, Y: r.Max.Y + dy},
	}
}

// Inset returns the rectangle shrunk by d on all sides.
// Negative d grows the rectangle.
func (r Rect) Inset(d float64) Rect {
	return Rect{
		Min: Point{X: r.Min.X + d, Y: r.Min.Y + d},
		Max: Point{X: r.Max.X - d, Y: r.Max.Y - d},
	}
}

// Round returns the integer rectangle covering r, suitable for
// rasterization: Min is floored, Max is ceiled.
func (r Rect) Round() image.Rectangle {
	if r.IsEmpty() {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(r.Min.X)), int(math.Floor(r.Min.Y)),
		int(math.Ceil(r.Max.X)), int(math.Ceil(r.Max.Y)),
	)
}

// RectFromImage converts an image.Rectangle to a Rect.
func RectFromImage(ir image.Rectangle) Rect {
	return Rect{
		Min: Point{X: float64(ir.Min.X), Y: float64(ir.Min.Y)},
		Max: Point{X: float64(ir.Max.X), Y: float64(ir.Max.Y)},
	}
}

// Eq reports whether two rectangles are equal within epsilon.
func (r Rect) Eq(other Rect) bool {
	return r.Min.Eq(other.Min) && r.Max.Eq(other.Max)
}
