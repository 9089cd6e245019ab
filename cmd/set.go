package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// setCmd represents the set command
var setCmd = &cobra.Command{
	Use:   "set [set_code]",
	Short: "Download every card image of a set",
	Long: `Set downloads the images of every card in a Scryfall set, following
search pagination until the listing is exhausted. Images land in a folder
named after the set code under the output directory.

Examples:
  scryforge set bro
  scryforge set dsk --size normal --border black`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setCode := strings.ToLower(strings.TrimSpace(args[0]))

		settings, err := resolveSettings(cmd)
		if err != nil {
			return err
		}
		client := newClient(settings)

		fmt.Printf("Fetching card list for set %s...\n", strings.ToUpper(setCode))
		cards, err := client.SearchSet(cmd.Context(), setCode)
		if err != nil {
			return fmt.Errorf("error fetching set %s (check the set code): %v", setCode, err)
		}
		if len(cards) == 0 {
			return fmt.Errorf("no cards found for set %s", setCode)
		}

		return downloadBatch(cmd.Context(), settings, client, cards, setCode)
	},
}

func init() {
	RootCmd.AddCommand(setCmd)
}
