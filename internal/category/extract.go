package category

import "strings"

// nameHints maps substrings of a candidate's display name to category hints.
// Ordered: cuisine-specific hints before generic ones so the most precise
// hint lands first in the extracted set. Hints are appended to the tag-derived
// categories, never substituted; type tags alone are frequently too coarse
// (a Thai restaurant is often tagged only "restaurant").
var nameHints = []struct {
	substr   string
	category string
}{
	{"thai", "thai restaurant"},
	{"sushi", "sushi restaurant"},
	{"pizza", "pizza restaurant"},
	{"burger", "burger restaurant"},
	{"coffee", "coffee shop"},
	{"salon", "beauty salon"},
	{"spa", "beauty salon"},
	{"barber", "barber shop"},
	{"gym", "gym"},
	{"fitness", "gym"},
	{"restaurant", "restaurant"},
	{"bistro", "restaurant"},
	{"eatery", "restaurant"},
	{"grocery", "grocery store"},
	{"supermarket", "grocery store"},
	{"bar", "bar"},
}

// groceryChains are chain names whose presence in a display name identifies a
// grocery store even when the tags say nothing useful.
var groceryChains = []string{"aldi", "lidl", "walmart", "kroger", "tesco", "spar", "costco"}

// ExtractCandidateCategories derives the comparable category set for a
// candidate place from its raw type tags, declared primary type, and display
// name. The result is de-duplicated and order-preserving; an empty set is a
// valid outcome meaning "no signal".
func ExtractCandidateCategories(typeTags []string, primaryType, name string) []string {
	raw := make([]string, 0, len(typeTags)+1)
	raw = append(raw, typeTags...)
	raw = append(raw, primaryType)

	cats := NormalizeAll(raw)
	seen := make(map[string]struct{}, len(cats))
	for _, c := range cats {
		seen[c] = struct{}{}
	}

	appendHint := func(category string) {
		if _, dup := seen[category]; dup {
			return
		}
		seen[category] = struct{}{}
		cats = append(cats, category)
	}

	lowerName := strings.ToLower(name)
	for _, h := range nameHints {
		if strings.Contains(lowerName, h.substr) {
			appendHint(h.category)
		}
	}
	for _, chain := range groceryChains {
		if strings.Contains(lowerName, chain) {
			appendHint("grocery store")
			break
		}
	}

	return cats
}
