package match

import (
	"regexp"
	"strings"
)

// anchorTypeTable maps curated category labels to the raw place type tags
// acceptable for that label. Kept as an ordered slice, not a map: resolution
// order is load-bearing for the substring fallback (more specific labels
// first), and several entries are deliberately order-sensitive.
var anchorTypeTable = []struct {
	label string
	types []string
}{
	{"thai restaurant", []string{"thai_restaurant", "restaurant", "meal_takeaway"}},
	{"sushi restaurant", []string{"sushi_restaurant", "japanese_restaurant", "restaurant"}},
	{"pizza restaurant", []string{"pizza_restaurant", "meal_delivery", "restaurant"}},
	{"coffee shop", []string{"coffee_shop", "cafe", "bakery"}},
	{"grocery store", []string{"grocery_store", "grocery_or_supermarket", "supermarket", "convenience_store"}},
	{"hair salon", []string{"hair_salon", "hair_care", "beauty_salon"}},
	{"beauty salon", []string{"beauty_salon", "spa", "hair_salon"}},
	{"barber shop", []string{"barber_shop", "hair_care"}},
	{"gym", []string{"gym", "fitness_center", "health_club"}},
	{"pharmacy", []string{"pharmacy", "drugstore"}},
	{"dental clinic", []string{"dentist", "dental_clinic"}},
	{"car repair", []string{"car_repair", "auto_repair_shop", "tire_shop"}},
	{"hotel", []string{"hotel", "lodging", "guest_house"}},
	{"butcher shop", []string{"butcher_shop", "grocery_store"}},
	{"bakery", []string{"bakery", "cafe"}},
	{"bar", []string{"bar", "pub", "night_club"}},
	{"restaurant", []string{"restaurant", "meal_takeaway", "meal_delivery"}},
}

// anchorStopwords are label words with no matching power of their own.
var anchorStopwords = map[string]struct{}{
	"the": {}, "and": {}, "shop": {}, "store": {}, "of": {},
}

var anchorSpaceRe = regexp.MustCompile(`\s+`)

// Anchor is a single category label expanded into an allow-list of raw type
// tags plus keyword tokens, used as a hard accept/reject filter rather than
// a ranking signal.
type Anchor struct {
	Label        string
	AllowedTypes map[string]struct{}
	Tokens       []string
}

// NewAnchor builds an anchor from a category label. An empty label produces
// a pass-everything anchor; the caller is expected to rely on other filters.
func NewAnchor(label string) Anchor {
	cleaned := strings.ToLower(strings.TrimSpace(label))
	cleaned = anchorSpaceRe.ReplaceAllString(cleaned, " ")

	a := Anchor{Label: cleaned, AllowedTypes: map[string]struct{}{}}
	if cleaned == "" {
		return a
	}

	// Exact table key first, then substring fallback in table order.
	for _, entry := range anchorTypeTable {
		if entry.label == cleaned {
			for _, t := range entry.types {
				a.AllowedTypes[t] = struct{}{}
			}
			break
		}
	}
	if len(a.AllowedTypes) == 0 {
		for _, entry := range anchorTypeTable {
			if strings.Contains(cleaned, entry.label) || strings.Contains(entry.label, cleaned) {
				for _, t := range entry.types {
					a.AllowedTypes[t] = struct{}{}
				}
				break
			}
		}
	}

	for _, word := range strings.Fields(cleaned) {
		if len(word) < 3 {
			continue
		}
		if _, stop := anchorStopwords[word]; stop {
			continue
		}
		a.Tokens = append(a.Tokens, word)
	}

	return a
}

// Passes reports whether a candidate survives the anchor filter. Two
// independent accept paths: any raw type tag in the allow-list, or every
// keyword token appearing as a substring of the candidate's name. Structured
// tags are the reliable signal for chains and franchises; free-text names
// are the reliable signal for cuisine-specific independents.
func (a Anchor) Passes(typeTags []string, name string) bool {
	if a.Label == "" {
		return true
	}

	for _, t := range typeTags {
		if _, ok := a.AllowedTypes[strings.ToLower(t)]; ok {
			return true
		}
	}

	if len(a.Tokens) == 0 {
		return false
	}
	lowerName := strings.ToLower(name)
	for _, tok := range a.Tokens {
		if !strings.Contains(lowerName, tok) {
			return false
		}
	}
	return true
}
