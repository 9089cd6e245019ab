package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/scryforge/scryforge/internal/border"
	"github.com/scryforge/scryforge/internal/config"
	"github.com/scryforge/scryforge/internal/pipeline"
	"github.com/scryforge/scryforge/internal/scryfall"
)

// runSettings is the merged view of config file values and command flags for
// one invocation. Flags win.
type runSettings struct {
	size    string
	border  border.Spec
	baseDir string
	delay   time.Duration
}

// resolveSettings loads the config file and applies flag overrides.
func resolveSettings(cmd *cobra.Command) (*runSettings, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %v", err)
	}

	settings := &runSettings{
		size:    cfg.DefaultSize,
		baseDir: cfg.OutputDir,
		delay:   time.Duration(cfg.RequestDelayMS) * time.Millisecond,
	}

	if size, _ := cmd.Flags().GetString("size"); size != "" {
		settings.size = size
	}
	if !scryfall.ValidImageSize(settings.size) {
		return nil, fmt.Errorf("unknown image size %q (choose from: %s)", settings.size, strings.Join(scryfall.ImageSizes, ", "))
	}

	borderColor := cfg.BorderColor
	if flagColor, _ := cmd.Flags().GetString("border"); flagColor != "" {
		borderColor = flagColor
	}
	if borderColor != "" {
		c := border.Color(strings.ToLower(borderColor))
		if !c.Valid() {
			return nil, fmt.Errorf("unknown border color %q (choose black, white, or transparent)", borderColor)
		}
		settings.border = border.Spec{Enabled: true, Color: c}
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		settings.baseDir = output
	}
	if delayMS, _ := cmd.Flags().GetInt("delay"); delayMS >= 0 {
		settings.delay = time.Duration(delayMS) * time.Millisecond
	}

	return settings, nil
}

// newClient builds the Scryfall client for this run's request delay.
func newClient(settings *runSettings) *scryfall.Client {
	return scryfall.NewClient(scryfall.WithRequestDelay(settings.delay))
}

// downloadBatch runs the pipeline over a list of card records, writing into
// a named folder under the base output directory and reporting each asset as
// it lands. Skipped assets never stop the batch.
func downloadBatch(ctx context.Context, settings *runSettings, client *scryfall.Client, cards []scryfall.Card, folder string) error {
	outputDir := filepath.Join(settings.baseDir, folder)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("error creating output directory %s: %v", outputDir, err)
	}

	processor := pipeline.NewProcessor(client, pipeline.Options{
		Size:      settings.size,
		OutputDir: outputDir,
		Border:    settings.border,
	}, slog.Default())

	fmt.Printf("Downloading %d card(s) as '%s' images into %s\n", len(cards), settings.size, outputDir)

	var summary pipeline.Summary
	for i := range cards {
		card := &cards[i]
		fmt.Printf("\n%s (%s #%s)\n", card.DisplayName(), strings.ToUpper(card.Set), card.CollectorNumber)

		outcomes, err := processor.Process(ctx, card)
		summary.Add(outcomes)
		for _, outcome := range outcomes {
			if outcome.Err != nil {
				color.Yellow("  skipped [%s]: %v", pipeline.DiagnosticKind(outcome.Err), outcome.Err)
			} else {
				color.Green("  saved %s", filepath.Base(outcome.Path))
			}
		}
		if err != nil {
			return err
		}
	}

	fmt.Println()
	color.New(color.Bold).Printf("Done: %d image(s) written, %d skipped.\n", summary.Written, summary.Skipped)
	return nil
}
