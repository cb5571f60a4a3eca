package viewtree

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/probeui/vis"
)

// Compositor rasterizes a View hierarchy back-to-front into pixel
// buffers. It implements vis.Renderer.
//
// Solid untransformed views take a fast path through image/draw;
// transformed views are resampled with bilinear filtering through
// x/image/draw. Clipping is rectangular, intersected in device space.
type Compositor struct {
	root *View
}

// NewCompositor creates a compositor over the given root view. The
// root's window frame defines the device bounds.
func NewCompositor(root *View) *Compositor {
	return &Compositor{root: root}
}

// Rasterize implements vis.Renderer. In CaptureTargetAltered mode the
// target's subtree is painted with inverted colors, so every pixel
// where the target shows through differs from the composited capture.
func (c *Compositor) Rasterize(target vis.Element, region vis.Rect, mode vis.CaptureMode) (*vis.Pixmap, error) {
	bounds := region.Round()
	device := c.root.Frame().Round()
	if bounds.Empty() || device.Empty() {
		return nil, vis.ErrEmptyRegion
	}

	canvas := image.NewRGBA(device)
	var alterTarget vis.Element
	if mode == vis.CaptureTargetAltered {
		alterTarget = target
	}
	c.paint(canvas, c.root, vis.Identity(), device, 1, alterTarget, false)

	out := vis.NewPixmap(bounds.Dx(), bounds.Dy())
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			px, py := bounds.Min.X+x, bounds.Min.Y+y
			if image.Pt(px, py).In(device) {
				out.SetPixel(x, y, vis.FromColor(canvas.At(px, py)))
			}
		}
	}
	return out, nil
}

// paint renders v and its subtree. ctm maps the parent's coordinate
// space to device space; clip is the device-space clip; alpha is the
// inherited opacity; altered marks that v is inside the altered
// target's subtree.
func (c *Compositor) paint(dst *image.RGBA, v *View, ctm vis.Matrix, clip image.Rectangle, alpha float64, target vis.Element, altered bool) {
	if v.hidden || v.alpha <= 0 || clip.Empty() {
		return
	}
	alpha *= v.alpha
	if !altered && target != nil && vis.Element(v) == target {
		altered = true
	}

	w, h := v.frame.Width(), v.frame.Height()
	if w <= 0 || h <= 0 {
		return
	}

	// Local-to-parent: place the origin, then apply the view's
	// transform about the frame center.
	local := vis.Translate(v.frame.Min.X, v.frame.Min.Y)
	if !v.transform.IsIdentity() {
		cx, cy := w/2, h/2
		local = local.
			Multiply(vis.Translate(cx, cy)).
			Multiply(v.transform).
			Multiply(vis.Translate(-cx, -cy))
	}
	m := ctm.Multiply(local)

	src := v.contentImage(altered)
	drawContent(dst, clip, m, src, alpha)

	childClip := clip
	if v.clips {
		box, _ := m.TransformRect(vis.RectWH(0, 0, w, h))
		childClip = clip.Intersect(box.Round())
	}
	for _, sub := range v.subviews {
		c.paint(dst, sub, m, childClip, alpha, target, altered)
	}
}

// contentImage renders the view's own content in local coordinates:
// background fill, then PaintFunc, then the alteration inversion.
func (v *View) contentImage(inverted bool) *image.RGBA {
	b := image.Rect(0, 0, int(math.Ceil(v.frame.Width())), int(math.Ceil(v.frame.Height())))
	img := image.NewRGBA(b)
	draw.Draw(img, b, image.NewUniform(v.background.Color()), image.Point{}, draw.Src)
	if v.PaintFunc != nil {
		v.PaintFunc(img)
	}
	if inverted {
		invertRGBA(img)
	}
	return img
}

// invertRGBA inverts the color channels of a premultiplied RGBA image
// in place, preserving alpha. Premultiplied inversion of channel c at
// alpha a is a-c.
func invertRGBA(img *image.RGBA) {
	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		a := pix[i+3]
		for j := 0; j < 3; j++ {
			c := pix[i+j]
			if c > a {
				c = a
			}
			pix[i+j] = a - c
		}
	}
}

// drawContent composites src over dst under the affine m and the
// device clip. Pure integer translations blit directly; everything
// else resamples bilinearly.
func drawContent(dst *image.RGBA, clip image.Rectangle, m vis.Matrix, src *image.RGBA, alpha float64) {
	var mask image.Image
	if alpha < 1 {
		mask = image.NewUniform(color.Alpha{A: uint8(alpha*255 + 0.5)})
	}

	if isIntegerTranslation(m) {
		off := image.Pt(int(math.Round(m.C)), int(math.Round(m.F)))
		r := src.Bounds().Add(off).Intersect(clip)
		if r.Empty() {
			return
		}
		draw.DrawMask(dst, r, src, r.Min.Sub(off), mask, image.Point{}, draw.Over)
		return
	}

	sub, ok := dst.SubImage(clip).(*image.RGBA)
	if !ok || sub.Bounds().Empty() {
		return
	}
	xdraw.BiLinear.Transform(sub,
		f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F},
		src, src.Bounds(), xdraw.Over,
		&xdraw.Options{SrcMask: mask},
	)
}

func isIntegerTranslation(m vis.Matrix) bool {
	if m.A != 1 || m.B != 0 || m.D != 0 || m.E != 1 {
		return false
	}
	return m.C == math.Trunc(m.C) && m.F == math.Trunc(m.F)
}
