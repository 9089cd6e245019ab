// Package border adds physical print-bleed borders to card images. Border
// thickness is never a fixed pixel count: it is derived from the image's own
// resolution against the known physical card dimensions, so the same 1/8
// inch bleed comes out correct at every size Scryfall serves.
package border

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// Physical dimensions of a Magic card, in inches.
const (
	CardWidthInches  = 2.5
	CardHeightInches = 3.5
	BleedInches      = 0.125
)

// Color selects the bleed border fill.
type Color string

const (
	Black       Color = "black"
	White       Color = "white"
	Transparent Color = "transparent"
)

// Valid reports whether c is a recognized border color.
func (c Color) Valid() bool {
	return c == Black || c == White || c == Transparent
}

// Spec describes a border request. The zero value means no border.
type Spec struct {
	Enabled bool
	Color   Color
}

// Thickness computes the bleed width in pixels for an image axis spanning
// pixelSpan pixels across physicalInches of card. The implied DPI is
// pixelSpan / physicalInches; the bleed is 1/8 inch at that density.
func Thickness(pixelSpan int, physicalInches float64) int {
	if pixelSpan <= 0 {
		return 0
	}
	dpi := float64(pixelSpan) / physicalInches
	return int(math.Round(dpi * BleedInches))
}

// Add returns a new image thickness pixels larger on every side, with img
// centered. Transparent borders keep any alpha already present in the
// source; black and white borders flatten the source onto the border color
// first so no translucent pixel survives next to a solid border.
func Add(img image.Image, thickness int, borderColor Color) *image.NRGBA {
	if thickness <= 0 {
		return imaging.Clone(img)
	}

	bounds := img.Bounds()
	w := bounds.Dx() + 2*thickness
	h := bounds.Dy() + 2*thickness
	origin := image.Pt(thickness, thickness)

	if borderColor == Transparent {
		canvas := imaging.New(w, h, color.NRGBA{})
		return imaging.Paste(canvas, img, origin)
	}

	fill := color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	if borderColor == White {
		fill = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}

	// Overlay composites through the source's own alpha, which both places
	// the image and flattens any transparency onto the fill color.
	canvas := imaging.New(w, h, fill)
	return imaging.Overlay(canvas, img, origin, 1.0)
}

// Flatten composites img onto an opaque white background, dropping any alpha
// channel ahead of JPEG encoding.
func Flatten(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	canvas := imaging.New(bounds.Dx(), bounds.Dy(), color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)
}
