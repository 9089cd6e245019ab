package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/scryforge/scryforge/internal/scryfall"
)

// FetchTask describes one image to download and the naming of the files it
// produces. A SplitMeld task yields two output files (top and bottom halves
// of the composite); every other task yields one.
type FetchTask struct {
	URL       string
	Set       string
	Number    string
	Elements  []string
	SplitMeld bool
}

// RecordFetcher resolves a related-part URI to its full card record. This is
// the one network suspension inside resolution; everything else here is a
// pure transform over the record.
type RecordFetcher interface {
	GetCardByURI(ctx context.Context, uri string) (*scryfall.Card, error)
}

// ResolveTasks enumerates the fetch tasks a card implies for the requested
// image size. Assets that cannot be produced (missing size, unreachable meld
// part, unknown layout) come back as skip diagnostics alongside the tasks;
// one missing asset never suppresses its siblings.
func ResolveTasks(ctx context.Context, card *scryfall.Card, kind scryfall.LayoutKind, size string, records RecordFetcher, logger *slog.Logger) ([]FetchTask, []Outcome) {
	switch kind {
	case scryfall.LayoutSingle:
		return resolveSingle(card, size)
	case scryfall.LayoutDoubleFaced:
		return resolveFaces(card, size)
	case scryfall.LayoutMeld:
		return resolveMeld(ctx, card, size, records, logger)
	default:
		diag := skip(ErrUnsupportedLayout, fmt.Sprintf("%s: layout %q", card.Name, card.Layout), nil)
		return nil, []Outcome{{Err: diag}}
	}
}

// resolveSingle yields the one task for a single-image layout. The flavor
// name, when present, becomes part of the output name so Godzilla-style
// alternate prints don't collide with their base card.
func resolveSingle(card *scryfall.Card, size string) ([]FetchTask, []Outcome) {
	url, ok := card.ImageURIs[size]
	if !ok {
		diag := skip(ErrMissingAsset, fmt.Sprintf("%s: no %q image", card.Name, size), nil)
		return nil, []Outcome{{Err: diag}}
	}

	task := FetchTask{
		URL:      url,
		Set:      card.Set,
		Number:   card.CollectorNumber,
		Elements: []string{card.FlavorName, card.Name},
	}
	return []FetchTask{task}, nil
}

// resolveFaces yields one task per card face that has the requested size.
// Faces lacking it are skipped individually.
func resolveFaces(card *scryfall.Card, size string) ([]FetchTask, []Outcome) {
	if len(card.CardFaces) == 0 {
		diag := skip(ErrMissingAsset, fmt.Sprintf("%s: layout %q but no card faces", card.Name, card.Layout), nil)
		return nil, []Outcome{{Err: diag}}
	}

	var tasks []FetchTask
	var diags []Outcome

	for i, face := range card.CardFaces {
		url, ok := face.ImageURIs[size]
		if !ok {
			diag := skip(ErrMissingAsset, fmt.Sprintf("%s: no %q image for face %d", card.Name, size, i+1), nil)
			diags = append(diags, Outcome{Err: diag})
			continue
		}

		name := face.Name
		if name == "" {
			name = fmt.Sprintf("face%d", i+1)
		}
		tasks = append(tasks, FetchTask{
			URL:      url,
			Set:      card.Set,
			Number:   card.CollectorNumber,
			Elements: []string{name},
		})
	}
	return tasks, diags
}

// resolveMeld walks the related parts of a meld card. Both meld_part and
// meld_result references point at full card records from possibly different
// printings, so each part's own set and collector number name its output.
// The meld_result image is a composite flagged for splitting.
func resolveMeld(ctx context.Context, card *scryfall.Card, size string, records RecordFetcher, logger *slog.Logger) ([]FetchTask, []Outcome) {
	if len(card.AllParts) == 0 {
		diag := skip(ErrMissingAsset, fmt.Sprintf("%s: meld layout but no related parts", card.Name), nil)
		return nil, []Outcome{{Err: diag}}
	}

	var tasks []FetchTask
	var diags []Outcome

	for _, part := range card.AllParts {
		if part.Component != scryfall.ComponentMeldPart && part.Component != scryfall.ComponentMeldResult {
			continue
		}

		partCard, err := records.GetCardByURI(ctx, part.URI)
		if err != nil {
			logger.Warn("meld part lookup failed", "card", card.Name, "part", part.Name, "error", err)
			diags = append(diags, Outcome{Err: skip(ErrFetchFailure, fmt.Sprintf("meld part %s", part.Name), err)})
			continue
		}

		url, ok := partCard.ImageURIs[size]
		if !ok {
			diags = append(diags, Outcome{Err: skip(ErrMissingAsset, fmt.Sprintf("meld part %s: no %q image", part.Name, size), nil)})
			continue
		}

		tasks = append(tasks, FetchTask{
			URL:       url,
			Set:       partCard.Set,
			Number:    partCard.CollectorNumber,
			Elements:  []string{part.Name},
			SplitMeld: part.Component == scryfall.ComponentMeldResult,
		})
	}
	return tasks, diags
}
