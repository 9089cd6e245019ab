// Package pipeline turns Scryfall card records into named image files on
// disk: layout classification, face and meld-part resolution, bleed
// bordering, meld splitting, and deterministic output naming.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/scryforge/scryforge/internal/border"
	"github.com/scryforge/scryforge/internal/scryfall"
)

// Fetcher is the network capability the processor consumes: raw image bytes
// plus card-record lookups for meld parts. *scryfall.Client satisfies it.
type Fetcher interface {
	RecordFetcher
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

// Options configures one download run.
type Options struct {
	Size      string
	OutputDir string
	Border    border.Spec
}

// Processor drives the per-card pipeline. It is the only component with
// side effects; classification, resolution, bordering, splitting, and naming
// are all pure and tested directly.
type Processor struct {
	fetcher Fetcher
	opts    Options
	logger  *slog.Logger
}

// NewProcessor creates a processor writing into opts.OutputDir.
func NewProcessor(fetcher Fetcher, opts Options, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{fetcher: fetcher, opts: opts, logger: logger}
}

// Process produces every image asset one card record implies. Skipped assets
// are reported as diagnostic outcomes and never abort their siblings; only a
// failure to write to the output directory is returned as an error.
func (p *Processor) Process(ctx context.Context, card *scryfall.Card) ([]Outcome, error) {
	kind := scryfall.ClassifyLayout(card.Layout)
	p.logger.Debug("processing card", "card", card.DisplayName(), "layout", card.Layout, "kind", kind.String())

	tasks, outcomes := ResolveTasks(ctx, card, kind, p.opts.Size, p.fetcher, p.logger)
	for _, task := range tasks {
		results, err := p.runTask(ctx, task)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, results...)
	}
	return outcomes, nil
}

// runTask downloads and materializes one fetch task. A split-meld task
// produces two outcomes, everything else one.
func (p *Processor) runTask(ctx context.Context, task FetchTask) ([]Outcome, error) {
	data, err := p.fetcher.FetchImage(ctx, task.URL)
	if err != nil {
		return []Outcome{{Err: skip(ErrFetchFailure, task.URL, err)}}, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return []Outcome{{Err: skip(ErrDecodeFailure, task.URL, err)}}, nil
	}

	format := OutputFormat(p.opts.Size, p.opts.Border)

	if task.SplitMeld {
		return p.writeMeldHalves(img, task, format)
	}

	if p.opts.Border.Enabled {
		thickness := border.Thickness(img.Bounds().Dx(), border.CardWidthInches)
		if thickness > 0 {
			img = border.Add(img, thickness, p.opts.Border.Color)
			p.logger.Debug("applied bleed border", "thickness_px", thickness, "color", string(p.opts.Border.Color))
		}
	}

	outcome, err := p.write(img, task, task.Elements, format)
	if err != nil {
		return nil, err
	}
	return []Outcome{outcome}, nil
}

// writeMeldHalves splits a meld composite and writes its two halves, tagged
// top and bottom.
func (p *Processor) writeMeldHalves(img image.Image, task FetchTask, format string) ([]Outcome, error) {
	top, bottom, err := SplitMeld(img, p.opts.Border)
	if err != nil {
		return []Outcome{{Err: err}}, nil
	}

	topElements := append(append([]string(nil), task.Elements...), "top")
	bottomElements := append(append([]string(nil), task.Elements...), "bottom")

	topOut, err := p.write(top, task, topElements, format)
	if err != nil {
		return nil, err
	}
	bottomOut, err := p.write(bottom, task, bottomElements, format)
	if err != nil {
		return nil, err
	}
	return []Outcome{topOut, bottomOut}, nil
}

// write encodes img in the chosen container format and saves it under the
// deterministic name for the task. Write failures are fatal: if one file
// cannot land in the output directory, none of the rest will either.
func (p *Processor) write(img image.Image, task FetchTask, elements []string, format string) (Outcome, error) {
	name := FileName(task.Set, task.Number, elements, format)
	path := filepath.Join(p.opts.OutputDir, name)

	var buf bytes.Buffer
	var encodeErr error
	if format == "png" {
		encodeErr = imaging.Encode(&buf, img, imaging.PNG)
	} else {
		encodeErr = imaging.Encode(&buf, border.Flatten(img), imaging.JPEG)
	}
	if encodeErr != nil {
		return Outcome{}, fmt.Errorf("encoding %s: %w", name, encodeErr)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return Outcome{}, fmt.Errorf("writing %s: %w", path, err)
	}

	p.logger.Info("saved image", "file", name)
	return Outcome{Path: path}, nil
}

// OutputFormat picks the container format for a run: png whenever the source
// size is already png or a transparent border must keep its alpha, jpg
// otherwise.
func OutputFormat(size string, spec border.Spec) string {
	if size == "png" || (spec.Enabled && spec.Color == border.Transparent) {
		return "png"
	}
	return "jpg"
}
