package pipeline

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/scryforge/scryforge/internal/border"
)

// SplitMeld cuts a meld-result composite into its two card-sized halves.
// Scryfall stores the combined art sideways as one double-height image, so
// each half is rotated 90° counter-clockwise into card orientation before
// any border is applied. Both halves share one thickness computed from the
// rotated width, keeping the bleed identical across the pair.
func SplitMeld(img image.Image, spec border.Spec) (top, bottom *image.NRGBA, err error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if h < 2 {
		return nil, nil, skip(ErrMeldGeometry, fmt.Sprintf("composite %dx%d too small to split", w, h), nil)
	}

	// Integer-floor split: for odd heights the bottom half keeps the extra row.
	topHalf := imaging.Crop(img, image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+w, bounds.Min.Y+h/2))
	bottomHalf := imaging.Crop(img, image.Rect(bounds.Min.X, bounds.Min.Y+h/2, bounds.Min.X+w, bounds.Min.Y+h))

	top = imaging.Rotate90(topHalf)
	bottom = imaging.Rotate90(bottomHalf)

	if spec.Enabled {
		thickness := border.Thickness(top.Bounds().Dx(), border.CardHeightInches)
		if thickness > 0 {
			top = border.Add(top, thickness, spec.Color)
			bottom = border.Add(bottom, thickness, spec.Color)
		}
	}
	return top, bottom, nil
}
