// Package enhance generates contextual images for slides: a rule-based
// prompt builder plus pluggable image-generation providers. Enhancement is
// strictly best-effort; a failed image never fails an export.
package enhance

import (
	"strings"

	"github.com/liturgica/lectern/internal/deck"
)

// keywordEnhancements maps liturgical keywords found in slide titles to
// prompt enhancement phrases. The list is ordered and the first match
// wins: "messe" must take precedence over the generic fallbacks, so this
// stays a slice, never a map.
var keywordEnhancements = []struct{ keyword, phrase string }{
	{"messe", "catholic mass ceremony, church interior, altar"},
	{"évangile", "gospel book, bible, religious scripture, holy light"},
	{"lecture", "bible reading, scripture, religious text, church lectern"},
	{"psaume", "psalm, religious music, church choir, spiritual"},
	{"communion", "holy communion, eucharist, chalice, bread and wine"},
	{"chant", "church choir, religious music, hymn, spiritual singing"},
	{"prière", "prayer, hands in prayer, spiritual meditation, church"},
	{"liturgie", "liturgical ceremony, church service, religious ritual"},
	{"célébration", "religious celebration, church ceremony, festive"},
	{"sanctus", "holy, sacred, church bells, divine light"},
	{"gloria", "glory, heavenly light, angels, divine radiance"},
	{"kyrie", "mercy, compassion, gentle light, peaceful"},
	{"offertoire", "offering, gifts, altar, religious ceremony"},
	{"entrée", "church entrance, procession, welcoming, gathering"},
	{"sortie", "church exit, blessing, peaceful departure"},
	{"noël", "christmas, nativity, star, peaceful night"},
	{"pâques", "easter, resurrection, sunrise, hope, new life"},
	{"avent", "advent, waiting, candles, purple, preparation"},
}

// divineNames trigger the religious-art fallback when no keyword matched.
var divineNames = []string{"dieu", "seigneur", "christ", "jésus", "marie"}

// kindDefaults are the per-content-type fallback phrases.
var kindDefaults = map[deck.Kind]string{
	deck.KindTitle:   "catholic mass ceremony, church interior, stained glass",
	deck.KindReading: "bible reading, scripture, religious text, holy light",
	deck.KindSong:    "church choir, religious music, hymn, spiritual singing",
}

// qualitySuffix is appended to every generated prompt.
const qualitySuffix = "high quality, professional, clean, beautiful lighting, artistic composition"

// PromptFor builds the image-generation prompt for a slide title. Pure
// and deterministic: lower-cases the title, scans the keyword table in
// order, falls back to a divine-name phrase and then to the per-kind
// default, and appends the quality suffix.
func PromptFor(title string, kind deck.Kind) string {
	clean := strings.TrimSpace(title)
	lower := strings.ToLower(clean)

	enhanced := ""
	for _, e := range keywordEnhancements {
		if strings.Contains(lower, e.keyword) {
			enhanced = e.phrase
			break
		}
	}

	if enhanced == "" {
		for _, name := range divineNames {
			if strings.Contains(lower, name) {
				enhanced = "religious art, spiritual, peaceful, divine light"
				break
			}
		}
	}

	if enhanced == "" {
		if d, ok := kindDefaults[kind]; ok {
			enhanced = d
		} else {
			enhanced = "peaceful, serene, beautiful, artistic"
		}
	}

	return clean + ", " + enhanced + ", " + qualitySuffix
}
