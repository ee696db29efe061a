package category

import "strings"

// Vertical is one of a fixed set of coarse business-sector buckets used to
// gate competitor matching.
type Vertical string

// The closed set of verticals. VerticalOther is the fallback and is never absent.
const (
	VerticalFoodDining    Vertical = "food_dining"
	VerticalGroceryRetail Vertical = "grocery_retail"
	VerticalBeauty        Vertical = "beauty"
	VerticalFitness       Vertical = "fitness"
	VerticalHealth        Vertical = "health"
	VerticalAuto          Vertical = "auto"
	VerticalLodging       Vertical = "lodging"
	VerticalOther         Vertical = "other"
)

// verticalKeywords is evaluated in order; the first group containing a
// matching keyword wins. food_dining precedes grocery_retail deliberately:
// restaurant-like labels are far more common than grocery labels among
// food-adjacent candidates, so an ambiguous label resolves toward dining.
// Note "car " keeps its trailing space to avoid matching e.g. "carpet store".
var verticalKeywords = []struct {
	vertical Vertical
	keywords []string
}{
	{VerticalFoodDining, []string{"restaurant", "cafe", "coffee", "bar", "bakery", "bistro", "diner", "eatery", "pizzeria", "takeaway", "fast food"}},
	{VerticalGroceryRetail, []string{"grocery", "supermarket", "hypermarket", "butcher", "convenience", "greengrocer"}},
	{VerticalBeauty, []string{"salon", "spa", "nail", "hair", "barber"}},
	{VerticalFitness, []string{"gym", "fitness", "yoga", "pilates"}},
	{VerticalHealth, []string{"clinic", "dentist", "medical", "pharmacy", "doctor", "hospital"}},
	{VerticalLodging, []string{"hotel", "lodge", "guest house", "hostel", "motel"}},
	{VerticalAuto, []string{"auto", "car ", "tyre", "tire", "mechanic", "vehicle"}},
}

// grocerySignals are raw type tags that unambiguously identify a grocery
// business. When present they outrank any restaurant-like tag.
var grocerySignals = []string{"grocery", "supermarket", "hypermarket", "butcher", "convenience"}

// VerticalOf classifies a single normalized category string. Total: any
// input, including empty or garbage, maps to exactly one vertical, with
// VerticalOther as the default.
func VerticalOf(normalized string) Vertical {
	if normalized == "" {
		return VerticalOther
	}
	for _, group := range verticalKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(normalized, kw) {
				return group.vertical
			}
		}
	}
	return VerticalOther
}

// VerticalFromTags classifies a candidate from its raw (pre-normalization)
// type tags. Two named policy choices apply:
//   - an unambiguous grocery tag outranks any restaurant-like tag, since
//     grocery stores routinely also carry food-service tags
//   - a generic "food" tag with no grocery signal present defaults to
//     food_dining
func VerticalFromTags(tags []string) Vertical {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		cleaned = append(cleaned, strings.ReplaceAll(strings.ToLower(t), "_", " "))
	}

	for _, t := range cleaned {
		for _, sig := range grocerySignals {
			if strings.Contains(t, sig) {
				return VerticalGroceryRetail
			}
		}
	}

	for _, group := range verticalKeywords {
		for _, t := range cleaned {
			for _, kw := range group.keywords {
				if strings.Contains(t, kw) {
					return group.vertical
				}
			}
		}
	}

	for _, t := range cleaned {
		if t == "food" {
			return VerticalFoodDining
		}
	}

	return VerticalOther
}

// FirstConcreteVertical returns the vertical of the first category that
// classifies to something other than VerticalOther. A candidate's category
// list often buries one precise tag among several generic ones, so the first
// concrete signal wins. Falls back to classifying the first category when
// nothing concrete is found.
func FirstConcreteVertical(categories []string) Vertical {
	for _, c := range categories {
		if v := VerticalOf(c); v != VerticalOther {
			return v
		}
	}
	if len(categories) > 0 {
		return VerticalOf(categories[0])
	}
	return VerticalOther
}
