package scryfall

// Card represents a Scryfall card object, trimmed to the fields the
// downloader needs. Optional sections are pointers or nil-able maps so their
// absence can be told apart from an empty value.
type Card struct {
	Name            string            `json:"name"`
	Set             string            `json:"set"`
	CollectorNumber string            `json:"collector_number"`
	Layout          string            `json:"layout"`
	FlavorName      string            `json:"flavor_name,omitempty"`
	ImageURIs       map[string]string `json:"image_uris,omitempty"`
	CardFaces       []CardFace        `json:"card_faces,omitempty"`
	AllParts        []RelatedPart     `json:"all_parts,omitempty"`
}

// CardFace is one printed side of a double-faced card. Each face carries its
// own image URI map.
type CardFace struct {
	Name      string            `json:"name"`
	ImageURIs map[string]string `json:"image_uris,omitempty"`
}

// RelatedPart is a reference to a separate card record related to this one.
// Only meld components are of interest here; other component kinds (tokens,
// combo pieces) are ignored.
type RelatedPart struct {
	Component string `json:"component"`
	Name      string `json:"name"`
	URI       string `json:"uri"`
}

// Component kinds used by meld layouts.
const (
	ComponentMeldPart   = "meld_part"
	ComponentMeldResult = "meld_result"
)

// ImageSizes lists the image size keys Scryfall serves, in menu order.
var ImageSizes = []string{"small", "normal", "large", "png", "art_crop", "border_crop"}

// ValidImageSize reports whether size is one of the keys Scryfall serves.
func ValidImageSize(size string) bool {
	for _, s := range ImageSizes {
		if s == size {
			return true
		}
	}
	return false
}

// DisplayName returns the card name prefixed with its flavor name when one
// exists, for console output.
func (c *Card) DisplayName() string {
	if c.FlavorName != "" {
		return c.FlavorName + " (" + c.Name + ")"
	}
	return c.Name
}
