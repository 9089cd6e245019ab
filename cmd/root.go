package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "scryforge",
	Short: "Download Magic: The Gathering card images from Scryfall",
	Long: `Scryforge downloads Magic: The Gathering card images from the Scryfall API
and prepares them for proxy printing. It understands multi-faced layouts,
splits meld composites into their two card-sized halves, and can add a
1/8 inch print-bleed border sized from each image's own resolution.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	RootCmd.PersistentFlags().StringP("size", "s", "", "image size (small, normal, large, png, art_crop, border_crop)")
	RootCmd.PersistentFlags().StringP("border", "b", "", "add a print-bleed border: black, white, or transparent")
	RootCmd.PersistentFlags().StringP("output", "o", "", "base directory for downloaded card folders")
	RootCmd.PersistentFlags().Int("delay", -1, "minimum milliseconds between Scryfall requests")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
