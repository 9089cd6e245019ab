package pipeline

import (
	"errors"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scryforge/scryforge/internal/border"
)

func TestSplitMeldDimensions(t *testing.T) {
	// 100 wide, 60 tall composite: halves are 100x30, rotated to 30x100.
	composite := imaging.New(100, 60, color.NRGBA{R: 50, G: 50, B: 50, A: 255})

	top, bottom, err := SplitMeld(composite, border.Spec{})
	require.NoError(t, err)

	assert.Equal(t, 30, top.Bounds().Dx(), "rotated width equals pre-rotation half height")
	assert.Equal(t, 100, top.Bounds().Dy())
	assert.Equal(t, top.Bounds(), bottom.Bounds())
}

func TestSplitMeldOddHeight(t *testing.T) {
	// Integer-floor split: 7 rows become 3 and 4.
	composite := imaging.New(10, 7, color.NRGBA{A: 255})

	top, bottom, err := SplitMeld(composite, border.Spec{})
	require.NoError(t, err)
	assert.Equal(t, 3, top.Bounds().Dx())
	assert.Equal(t, 4, bottom.Bounds().Dx())
}

func TestSplitMeldRotation(t *testing.T) {
	// Mark the top-left pixel of the composite. After a counter-clockwise
	// rotation it must end up in the bottom-left corner of the top half.
	composite := imaging.New(20, 10, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	composite.SetNRGBA(0, 0, color.NRGBA{R: 250, A: 255})

	top, _, err := SplitMeld(composite, border.Spec{})
	require.NoError(t, err)

	h := top.Bounds().Dy()
	assert.Equal(t, uint8(250), top.NRGBAAt(0, h-1).R)
}

func TestSplitMeldWithBorder(t *testing.T) {
	// Rotated halves are 757 wide; the shared thickness derives from that
	// width against the 3.5 inch card axis: round(757/3.5*0.125) = 27.
	composite := imaging.New(2000, 1514, color.NRGBA{R: 120, G: 120, B: 120, A: 255})

	top, bottom, err := SplitMeld(composite, border.Spec{Enabled: true, Color: border.Black})
	require.NoError(t, err)

	wantW := 757 + 2*27
	wantH := 2000 + 2*27
	assert.Equal(t, wantW, top.Bounds().Dx())
	assert.Equal(t, wantH, top.Bounds().Dy())
	assert.Equal(t, top.Bounds(), bottom.Bounds(), "halves share one thickness")

	corner := top.NRGBAAt(0, 0)
	assert.Equal(t, uint8(255), corner.A, "opaque border")
	assert.Equal(t, uint8(0), corner.R)
}

func TestSplitMeldDegenerateGeometry(t *testing.T) {
	composite := imaging.New(10, 1, color.NRGBA{A: 255})

	_, _, err := SplitMeld(composite, border.Spec{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMeldGeometry))
	assert.Equal(t, "meld_geometry", DiagnosticKind(err))
}
