package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnchor_EmptyLabelPassesEverything(t *testing.T) {
	for _, label := range []string{"", "   "} {
		a := NewAnchor(label)
		assert.True(t, a.Passes(nil, ""))
		assert.True(t, a.Passes([]string{"anything"}, "Any Name"))
	}
}

func TestAnchor_TypeTagPath(t *testing.T) {
	a := NewAnchor("Thai Restaurant")

	// A franchise tagged correctly passes regardless of name.
	assert.True(t, a.Passes([]string{"thai_restaurant"}, "Blue Elephant"))
	assert.True(t, a.Passes([]string{"restaurant"}, "Blue Elephant"))
	assert.False(t, a.Passes([]string{"hair_salon"}, "Blue Elephant"))
}

func TestAnchor_NameTokenPath(t *testing.T) {
	a := NewAnchor("Thai Restaurant")

	// All tokens must appear in the name when no tag matches.
	assert.True(t, a.Passes([]string{"food"}, "Bangkok Thai Restaurant"))
	assert.False(t, a.Passes([]string{"food"}, "Bangkok Thai Kitchen"))
}

func TestAnchor_SubstringFallback(t *testing.T) {
	// "organic grocery store" is not a table key; the fallback resolves it
	// against the "grocery store" entry.
	a := NewAnchor("Organic Grocery Store")
	assert.True(t, a.Passes([]string{"supermarket"}, "FreshMart"))
}

func TestAnchor_StopwordsAndShortTokens(t *testing.T) {
	a := NewAnchor("The Coffee Shop")

	// "the" and "shop" are stopwords; only "coffee" remains.
	assert.Equal(t, []string{"coffee"}, a.Tokens)
	assert.True(t, a.Passes(nil, "Joe's Coffee House"))
	assert.False(t, a.Passes(nil, "Joe's Tea House"))
}

func TestAnchor_UnknownLabelUsesTokensOnly(t *testing.T) {
	a := NewAnchor("vintage vinyl records")
	assert.Empty(t, a.AllowedTypes)
	assert.True(t, a.Passes(nil, "Vintage Vinyl Records Emporium"))
	assert.False(t, a.Passes([]string{"record_store"}, "Dusty Groove"))
}
