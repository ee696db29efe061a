package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCandidateCategories_NameHintsAppended(t *testing.T) {
	// Coarse tags stay first; the cuisine hint is appended, not substituted.
	got := ExtractCandidateCategories(
		[]string{"restaurant", "point_of_interest", "establishment"},
		"restaurant",
		"Bangkok Thai Kitchen",
	)

	assert.Equal(t, "restaurant", got[0])
	assert.Contains(t, got, "thai restaurant")
}

func TestExtractCandidateCategories_Dedup(t *testing.T) {
	got := ExtractCandidateCategories(
		[]string{"coffee_shop", "cafe"},
		"coffee_shop",
		"Daily Grind Coffee",
	)

	counts := map[string]int{}
	for _, c := range got {
		counts[c]++
	}
	for c, n := range counts {
		assert.Equal(t, 1, n, "category %q duplicated", c)
	}
	assert.Contains(t, got, "coffee shop")
	assert.Contains(t, got, "cafe")
}

func TestExtractCandidateCategories_ChainName(t *testing.T) {
	got := ExtractCandidateCategories(nil, "", "ALDI Süd")
	assert.Contains(t, got, "grocery store")
}

func TestExtractCandidateCategories_NoSignal(t *testing.T) {
	// Generic tags and a neutral name produce an empty set, which is valid.
	got := ExtractCandidateCategories([]string{"establishment", "point_of_interest"}, "", "Acme Holdings")
	assert.Empty(t, got)
}

func TestExtractCandidateCategories_SalonAndSpa(t *testing.T) {
	got := ExtractCandidateCategories([]string{"beauty_salon"}, "", "Luxe Spa & Salon")
	assert.Contains(t, got, "beauty salon")
}
