package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scryforge/scryforge/internal/scryfall"
)

// cardCmd represents the card command
var cardCmd = &cobra.Command{
	Use:   "card [url | set_code number]",
	Short: "Download a single card's images",
	Long: `Card downloads one card by its Scryfall web URL or by set code and
collector number. Images land in a 'singles' folder under the output
directory.

Examples:
  scryforge card https://scryfall.com/card/znr/280/emerias-call-emeria-shattered-skyclave
  scryforge card znr 280 --border transparent`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := resolveSettings(cmd)
		if err != nil {
			return err
		}
		client := newClient(settings)

		var card *scryfall.Card
		if len(args) == 2 {
			card, err = client.GetCard(cmd.Context(), strings.ToLower(args[0]), args[1])
		} else {
			card, err = client.GetCardByWebURL(cmd.Context(), args[0])
		}
		if err != nil {
			return fmt.Errorf("error fetching card: %v", err)
		}

		return downloadBatch(cmd.Context(), settings, client, []scryfall.Card{*card}, "singles")
	},
}

func init() {
	RootCmd.AddCommand(cardCmd)
}
