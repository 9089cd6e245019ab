package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scryforge/scryforge/internal/border"
	"github.com/scryforge/scryforge/internal/scryfall"
)

// fakeFetcher serves images and records from in-memory maps.
type fakeFetcher struct {
	images  map[string][]byte
	records map[string]*scryfall.Card
}

func (f *fakeFetcher) FetchImage(_ context.Context, url string) ([]byte, error) {
	data, ok := f.images[url]
	if !ok {
		return nil, errors.New("connection refused")
	}
	return data, nil
}

func (f *fakeFetcher) GetCardByURI(_ context.Context, uri string) (*scryfall.Card, error) {
	card, ok := f.records[uri]
	if !ok {
		return nil, errors.New("no such record")
	}
	return card, nil
}

// pngBytes encodes a flat-colored PNG of the given dimensions.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 80, G: 80, B: 80, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func newTestProcessor(t *testing.T, fetcher Fetcher, size string, spec border.Spec) (*Processor, string) {
	t.Helper()
	dir := t.TempDir()
	proc := NewProcessor(fetcher, Options{Size: size, OutputDir: dir, Border: spec}, discard())
	return proc, dir
}

func TestProcessSingleLayout(t *testing.T) {
	fetcher := &fakeFetcher{images: map[string][]byte{
		"https://img/opt.jpg": pngBytes(t, 488, 680),
	}}
	card := &scryfall.Card{
		Name:            "Opt",
		Set:             "dom",
		CollectorNumber: "60",
		Layout:          "normal",
		ImageURIs:       map[string]string{"normal": "https://img/opt.jpg"},
	}

	proc, dir := newTestProcessor(t, fetcher, "normal", border.Spec{})
	outcomes, err := proc.Process(context.Background(), card)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	require.NoError(t, outcomes[0].Err)
	assert.Equal(t, filepath.Join(dir, "dom-60-Opt.jpg"), outcomes[0].Path)

	img, err := imaging.Open(outcomes[0].Path)
	require.NoError(t, err)
	assert.Equal(t, 488, img.Bounds().Dx(), "no border requested, size unchanged")
}

func TestProcessDoubleFacedLayout(t *testing.T) {
	fetcher := &fakeFetcher{images: map[string][]byte{
		"https://img/front.jpg": pngBytes(t, 488, 680),
		"https://img/back.jpg":  pngBytes(t, 488, 680),
	}}
	card := &scryfall.Card{
		Name:            "Emeria's Call // Emeria, Shattered Skyclave",
		Set:             "znr",
		CollectorNumber: "280",
		Layout:          "transform",
		CardFaces: []scryfall.CardFace{
			{Name: "Emeria's Call", ImageURIs: map[string]string{"normal": "https://img/front.jpg"}},
			{Name: "Emeria, Shattered Earth", ImageURIs: map[string]string{"normal": "https://img/back.jpg"}},
		},
	}

	proc, dir := newTestProcessor(t, fetcher, "normal", border.Spec{})
	outcomes, err := proc.Process(context.Background(), card)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	var paths []string
	for _, o := range outcomes {
		require.NoError(t, o.Err)
		paths = append(paths, filepath.Base(o.Path))
	}
	assert.Contains(t, paths, "znr-280-Emeria's Call.jpg")
	assert.Contains(t, paths, "znr-280-Emeria, Shattered Earth.jpg")
	assert.NotEqual(t, paths[0], paths[1], "face qualifiers keep names unique")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestProcessMeldLayout(t *testing.T) {
	fetcher := &fakeFetcher{
		images: map[string][]byte{
			"https://img/gisela.png":  pngBytes(t, 745, 1040),
			"https://img/bruna.png":   pngBytes(t, 745, 1040),
			"https://img/brisela.png": pngBytes(t, 1040, 1490),
		},
		records: map[string]*scryfall.Card{
			"uri:gisela":  {Name: "Gisela, the Broken Blade", Set: "emn", CollectorNumber: "28a", ImageURIs: map[string]string{"png": "https://img/gisela.png"}},
			"uri:bruna":   {Name: "Bruna, the Fading Light", Set: "emn", CollectorNumber: "15a", ImageURIs: map[string]string{"png": "https://img/bruna.png"}},
			"uri:brisela": {Name: "Brisela, Voice of Nightmares", Set: "emn", CollectorNumber: "15b", ImageURIs: map[string]string{"png": "https://img/brisela.png"}},
		},
	}
	card := &scryfall.Card{
		Name:   "Bruna, the Fading Light",
		Layout: "meld",
		AllParts: []scryfall.RelatedPart{
			{Component: scryfall.ComponentMeldPart, Name: "Gisela, the Broken Blade", URI: "uri:gisela"},
			{Component: scryfall.ComponentMeldPart, Name: "Bruna, the Fading Light", URI: "uri:bruna"},
			{Component: scryfall.ComponentMeldResult, Name: "Brisela, Voice of Nightmares", URI: "uri:brisela"},
		},
	}

	proc, dir := newTestProcessor(t, fetcher, "png", border.Spec{Enabled: true, Color: border.Black})
	outcomes, err := proc.Process(context.Background(), card)
	require.NoError(t, err)
	require.Len(t, outcomes, 4, "two parts plus two meld halves")

	var names []string
	for _, o := range outcomes {
		require.NoError(t, o.Err)
		names = append(names, filepath.Base(o.Path))
	}
	assert.Contains(t, names, "emn-15b-Brisela, Voice of Nightmares-top.png")
	assert.Contains(t, names, "emn-15b-Brisela, Voice of Nightmares-bottom.png")

	// Halves: composite 1040x1490 -> halves 1040x745 -> rotated 745x1040,
	// bordered by round(745/3.5*0.125) = 27 per edge.
	top, err := imaging.Open(filepath.Join(dir, "emn-15b-Brisela, Voice of Nightmares-top.png"))
	require.NoError(t, err)
	bottom, err := imaging.Open(filepath.Join(dir, "emn-15b-Brisela, Voice of Nightmares-bottom.png"))
	require.NoError(t, err)
	assert.Equal(t, top.Bounds(), bottom.Bounds())
	assert.Equal(t, 745+2*27, top.Bounds().Dx())
	assert.Equal(t, 1040+2*27, top.Bounds().Dy())
}

func TestProcessUnsupportedLayout(t *testing.T) {
	card := &scryfall.Card{Name: "Strange", Layout: "battle"}

	proc, dir := newTestProcessor(t, &fakeFetcher{}, "png", border.Spec{})
	outcomes, err := proc.Process(context.Background(), card)
	require.NoError(t, err, "unsupported layout is a skip, not a failure")
	require.Len(t, outcomes, 1)
	assert.True(t, errors.Is(outcomes[0].Err, ErrUnsupportedLayout))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProcessFetchFailure(t *testing.T) {
	card := &scryfall.Card{
		Name:            "Opt",
		Set:             "dom",
		CollectorNumber: "60",
		Layout:          "normal",
		ImageURIs:       map[string]string{"png": "https://img/unreachable.png"},
	}

	proc, _ := newTestProcessor(t, &fakeFetcher{}, "png", border.Spec{})
	outcomes, err := proc.Process(context.Background(), card)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.True(t, errors.Is(outcomes[0].Err, ErrFetchFailure))
	assert.Equal(t, "fetch_failure", DiagnosticKind(outcomes[0].Err))
}

func TestProcessDecodeFailure(t *testing.T) {
	fetcher := &fakeFetcher{images: map[string][]byte{
		"https://img/broken.png": []byte("not an image at all"),
	}}
	card := &scryfall.Card{
		Name:            "Opt",
		Set:             "dom",
		CollectorNumber: "60",
		Layout:          "normal",
		ImageURIs:       map[string]string{"png": "https://img/broken.png"},
	}

	proc, _ := newTestProcessor(t, fetcher, "png", border.Spec{})
	outcomes, err := proc.Process(context.Background(), card)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.True(t, errors.Is(outcomes[0].Err, ErrDecodeFailure))
}

func TestProcessBorderGrowsImage(t *testing.T) {
	fetcher := &fakeFetcher{images: map[string][]byte{
		"https://img/opt.png": pngBytes(t, 745, 1040),
	}}
	card := &scryfall.Card{
		Name:            "Opt",
		Set:             "dom",
		CollectorNumber: "60",
		Layout:          "normal",
		ImageURIs:       map[string]string{"png": "https://img/opt.png"},
	}

	proc, _ := newTestProcessor(t, fetcher, "png", border.Spec{Enabled: true, Color: border.White})
	outcomes, err := proc.Process(context.Background(), card)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	require.NoError(t, outcomes[0].Err)

	// round(745/2.5*0.125) = 37 per edge
	img, err := imaging.Open(outcomes[0].Path)
	require.NoError(t, err)
	assert.Equal(t, 745+2*37, img.Bounds().Dx())
	assert.Equal(t, 1040+2*37, img.Bounds().Dy())
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		name string
		size string
		spec border.Spec
		want string
	}{
		{"jpg by default", "normal", border.Spec{}, "jpg"},
		{"png size stays png", "png", border.Spec{}, "png"},
		{"transparent border forces png", "normal", border.Spec{Enabled: true, Color: border.Transparent}, "png"},
		{"opaque border keeps jpg", "large", border.Spec{Enabled: true, Color: border.Black}, "jpg"},
		{"disabled transparent spec keeps jpg", "large", border.Spec{Enabled: false, Color: border.Transparent}, "jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputFormat(tt.size, tt.spec))
		})
	}
}

func TestSummaryAdd(t *testing.T) {
	var s Summary
	s.Add([]Outcome{
		{Path: "a.png"},
		{Err: skip(ErrMissingAsset, "x", nil)},
		{Path: "b.png"},
	})
	assert.Equal(t, 2, s.Written)
	assert.Equal(t, 1, s.Skipped)
}
