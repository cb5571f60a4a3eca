package viewtree

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/probeui/vis"
)

const (
	annotationStripHeight = 14
	annotationFontSize    = 11
)

var (
	annotateOnce sync.Once
	annotateFace font.Face
	annotateErr  error
)

func annotationFace() (font.Face, error) {
	annotateOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			annotateErr = err
			return
		}
		annotateFace, annotateErr = opentype.NewFace(f, &opentype.FaceOptions{
			Size:    annotationFontSize,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	})
	return annotateFace, annotateErr
}

// Annotate returns a copy of the capture with label stamped along the
// bottom edge, so saved failure-report artifacts carry the element's
// identity. The source pixmap is not modified.
func Annotate(p *vis.Pixmap, label string) (*vis.Pixmap, error) {
	face, err := annotationFace()
	if err != nil {
		return nil, err
	}

	img := p.ToImage()
	b := img.Bounds()
	strip := image.Rect(b.Min.X, b.Max.Y-annotationStripHeight, b.Max.X, b.Max.Y)
	draw.Draw(img, strip, image.NewUniform(color.NRGBA{A: 180}), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(b.Min.X+2, b.Max.Y-4),
	}
	d.DrawString(label)

	return vis.FromImage(img), nil
}
