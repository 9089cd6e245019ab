package scryfall

// LayoutKind classifies how many physical images a card layout implies and
// how they are stored.
type LayoutKind int

const (
	// LayoutUnsupported covers any tag not in the known lists. Cards with
	// such layouts are skipped, not failed.
	LayoutUnsupported LayoutKind = iota
	// LayoutSingle means one image on the card record itself.
	LayoutSingle
	// LayoutDoubleFaced means one image per entry in card_faces.
	LayoutDoubleFaced
	// LayoutMeld means the images live on related part records, one of which
	// is a double-height composite that must be split.
	LayoutMeld
)

// singleImageLayouts are tags whose card record carries image_uris directly.
var singleImageLayouts = map[string]bool{
	"normal":    true,
	"split":     true,
	"flip":      true,
	"leveler":   true,
	"class":     true,
	"case":      true,
	"saga":      true,
	"adventure": true,
	"mutate":    true,
	"prototype": true,
	"planar":    true,
	"scheme":    true,
	"vanguard":  true,
	"token":     true,
	"emblem":    true,
	"augment":   true,
	"host":      true,
}

// doubleImageLayouts are tags whose images live on card_faces entries.
var doubleImageLayouts = map[string]bool{
	"transform":          true,
	"modal_dfc":          true,
	"double_faced_token": true,
	"art_series":         true,
	"reversible_card":    true,
}

// ClassifyLayout maps a layout tag to its kind. The mapping is total: any
// tag outside the known lists classifies as LayoutUnsupported.
func ClassifyLayout(layout string) LayoutKind {
	switch {
	case singleImageLayouts[layout]:
		return LayoutSingle
	case doubleImageLayouts[layout]:
		return LayoutDoubleFaced
	case layout == "meld":
		return LayoutMeld
	default:
		return LayoutUnsupported
	}
}

// String returns the kind name for log output.
func (k LayoutKind) String() string {
	switch k {
	case LayoutSingle:
		return "single"
	case LayoutDoubleFaced:
		return "double_faced"
	case LayoutMeld:
		return "meld"
	default:
		return "unsupported"
	}
}
