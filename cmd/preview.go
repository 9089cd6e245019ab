package cmd

import (
	"fmt"
	"image"
	"image/color" // This is the standard library color package
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	"golang.org/x/term"

	"github.com/scryforge/scryforge/internal/border"

	colorize "github.com/fatih/color" // Rename this import to avoid the conflict
	"github.com/spf13/cobra"
)

// previewCmd represents the preview command
var previewCmd = &cobra.Command{
	Use:   "preview [image_file]",
	Short: "Render a downloaded card image in the terminal",
	Long: `Preview renders a downloaded card image as truecolor terminal art so a
print run can be spot-checked without leaving the shell. Alongside the art it
reports the image's pixel dimensions and the bleed border thickness the
pipeline would derive from them.

Examples:
  scryforge preview ./bro/bro-1-Kayla's Reconstruction.png`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		imagePath := args[0]

		img, err := imaging.Open(imagePath)
		if err != nil {
			return fmt.Errorf("error opening image: %v", err)
		}

		artWidth, _ := cmd.Flags().GetInt("width")
		if artWidth <= 0 {
			artWidth = 30
		}

		// Keep the card's aspect ratio; each character cell covers a 2x2
		// pixel block, and terminal cells are roughly twice as tall as wide.
		bounds := img.Bounds()
		artHeight := int(math.Round(float64(artWidth) * float64(bounds.Dy()) / float64(bounds.Dx())))
		if artHeight < 1 {
			artHeight = 1
		}

		art := renderTerminalArt(img, artWidth, artHeight)
		displayPreview(imagePath, bounds, art)

		return nil
	},
}

func init() {
	RootCmd.AddCommand(previewCmd)

	previewCmd.Flags().IntP("width", "w", 0, "art width in terminal columns")
}

// renderTerminalArt converts an image to half-block truecolor terminal art
// of the given character dimensions.
func renderTerminalArt(img image.Image, width, height int) string {
	// Resize to two pixels per character cell in each direction
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder

	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			// Four pixels make up one character cell
			c1 := getColorAt(resized, x, y)
			c2 := getColorAt(resized, x+1, y)
			c3 := getColorAt(resized, x, y+1)
			c4 := getColorAt(resized, x+1, y+1)

			col1, _ := colorful.MakeColor(c1)
			col2, _ := colorful.MakeColor(c2)
			col3, _ := colorful.MakeColor(c3)
			col4, _ := colorful.MakeColor(c4)

			// Upper half block: top pixel pair as foreground, bottom as background
			fg := averageColor(col1, col2)
			bg := averageColor(col3, col4)

			buffer.WriteString(halfBlockCell(fg, bg))
		}
		buffer.WriteString("\n")
	}

	return buffer.String()
}

// getColorAt returns the color at a specific coordinate
func getColorAt(img image.Image, x, y int) color.Color {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		return img.At(x, y)
	}
	return color.RGBA{0, 0, 0, 255} // Return black for out-of-bounds
}

// averageColor calculates the average of multiple colors
func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}
}

// halfBlockCell formats one upper-half-block character with truecolor
// foreground and background escapes.
func halfBlockCell(fg, bg colorful.Color) string {
	r1, g1, b1 := fg.RGB255()
	r2, g2, b2 := bg.RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀\x1b[0m", r1, g1, b1, r2, g2, b2)
}

// displayPreview prints the art with the image facts alongside it
func displayPreview(imagePath string, bounds image.Rectangle, art string) {
	artLines := strings.Split(strings.TrimRight(art, "\n"), "\n")

	// Get terminal width to decide whether the info fits beside the art
	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || termWidth <= 0 {
		termWidth = 80 // Default if we can't get terminal width
	}

	thickness := border.Thickness(bounds.Dx(), border.CardWidthInches)
	dpi := float64(bounds.Dx()) / border.CardWidthInches

	var infoLines []string
	infoLines = append(infoLines, colorize.CyanString("File:   ")+colorize.HiWhiteString(filepath.Base(imagePath)))
	infoLines = append(infoLines, colorize.CyanString("Pixels: ")+colorize.HiWhiteString("%d x %d", bounds.Dx(), bounds.Dy()))
	infoLines = append(infoLines, colorize.CyanString("DPI:    ")+colorize.HiWhiteString("%.0f (across a %.1f inch card)", dpi, border.CardWidthInches))
	infoLines = append(infoLines, colorize.CyanString("Bleed:  ")+colorize.HiWhiteString("%d px per edge", thickness))

	artWidth := 0
	for _, line := range artLines {
		if w := visibleWidth(line); w > artWidth {
			artWidth = w
		}
	}

	spacing := 4
	fmt.Println()
	maxLines := len(artLines)
	if len(infoLines) > maxLines {
		maxLines = len(infoLines)
	}
	for i := 0; i < maxLines; i++ {
		fmt.Print("  ")
		if i < len(artLines) {
			fmt.Print(artLines[i])
			fmt.Print(strings.Repeat(" ", artWidth-visibleWidth(artLines[i])+spacing))
		} else {
			fmt.Print(strings.Repeat(" ", artWidth+spacing))
		}
		if i < len(infoLines) && artWidth+spacing+2 < termWidth {
			fmt.Print(infoLines[i])
		}
		fmt.Println()
	}
	fmt.Println()
}

// visibleWidth counts the printable characters of a line, excluding ANSI
// escape sequences.
func visibleWidth(s string) int {
	width := 0
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			width++
		}
	}
	return width
}
