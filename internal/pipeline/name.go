package pipeline

import (
	"strings"
)

// maxFileNameLen caps output filenames well below common filesystem limits,
// leaving headroom for the extension.
const maxFileNameLen = 180

// illegalNameChars strips characters that are invalid in filenames on at
// least one supported filesystem.
var illegalNameChars = strings.NewReplacer(
	"\\", "",
	"/", "",
	"*", "",
	"?", "",
	":", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeName makes a card or face name safe for use in a filename. The
// "//" separator of two-part card names becomes a single dash before the
// character strip so split cards keep a readable divider.
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, "//", "-")
	name = illegalNameChars.Replace(name)
	return strings.TrimSpace(name)
}

// FileName builds the deterministic output name
// "{set}-{number}-{element}-{element}....{ext}". Empty elements (for example
// an absent flavor name) are dropped rather than leaving doubled dashes. The
// total name is capped at a filesystem-safe length.
func FileName(setCode, number string, elements []string, ext string) string {
	parts := []string{SanitizeName(setCode), SanitizeName(number)}
	for _, e := range elements {
		if s := SanitizeName(e); s != "" {
			parts = append(parts, s)
		}
	}

	base := strings.Join(parts, "-")
	if len(base) > maxFileNameLen {
		base = strings.TrimSpace(base[:maxFileNameLen])
	}
	return base + "." + ext
}
