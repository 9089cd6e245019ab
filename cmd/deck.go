package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/scryforge/scryforge/internal/decklist"
	"github.com/scryforge/scryforge/internal/pipeline"
	"github.com/scryforge/scryforge/internal/scryfall"
)

// deckCmd represents the deck command
var deckCmd = &cobra.Command{
	Use:   "deck [decklist_file]",
	Short: "Download every card of a decklist",
	Long: `Deck reads a plain-text decklist and downloads an image for each unique
card in it. Lines use the common export format "COUNT NAME (SET) NUMBER",
where the set code and collector number are optional:

  4 Lightning Bolt (2X2) 117
  1 Emeria's Call

With no file argument the decklist is read from standard input. Images land
in a folder named after the decklist file (or --name) under the output
directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := resolveSettings(cmd)
		if err != nil {
			return err
		}

		var input io.Reader = os.Stdin
		folder, _ := cmd.Flags().GetString("name")

		if len(args) == 1 {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("error opening decklist: %v", err)
			}
			defer file.Close()
			input = file
			if folder == "" {
				base := filepath.Base(args[0])
				folder = pipeline.SanitizeName(strings.TrimSuffix(base, filepath.Ext(base)))
			}
		}
		if folder == "" {
			folder = "pasted-deck"
		}

		entries, badLines, err := decklist.Parse(input)
		if err != nil {
			return fmt.Errorf("error reading decklist: %v", err)
		}
		for _, line := range badLines {
			color.Yellow("Warning: could not parse line %q, skipping.", line)
		}
		if len(entries) == 0 {
			return fmt.Errorf("no cards found in decklist")
		}

		client := newClient(settings)

		fmt.Printf("Looking up %d card(s) on Scryfall...\n", len(entries))
		var cards []scryfall.Card
		for _, entry := range entries {
			var card *scryfall.Card
			var err error
			if entry.Set != "" && entry.Number != "" {
				card, err = client.GetCard(cmd.Context(), entry.Set, entry.Number)
			} else {
				card, err = client.GetCardNamed(cmd.Context(), entry.Name)
			}
			if err != nil {
				color.Yellow("  could not find %q: %v", entry.Name, err)
				continue
			}
			fmt.Printf("  found %s\n", card.DisplayName())
			cards = append(cards, *card)
		}
		if len(cards) == 0 {
			return fmt.Errorf("none of the decklist cards could be found")
		}

		return downloadBatch(cmd.Context(), settings, client, cards, folder)
	},
}

func init() {
	RootCmd.AddCommand(deckCmd)

	deckCmd.Flags().StringP("name", "n", "", "folder name for the deck's images")
}
