package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildContext(t *testing.T) {
	ctx := BuildContext("Thai Restaurant", "Restaurant", []string{"thai_restaurant", "Cafe", "Bar"})

	assert.Equal(t, "thai restaurant", ctx.Primary)
	assert.Equal(t, []string{"thai restaurant", "restaurant", "cafe"}, ctx.Top3)
	assert.Equal(t, VerticalFoodDining, ctx.Vertical)
}

func TestBuildContext_Top3Bounds(t *testing.T) {
	many := []string{"cafe", "bar", "bakery", "diner", "bistro", "cafe", "bar"}
	ctx := BuildContext("", "", many)

	assert.LessOrEqual(t, len(ctx.Top3), 3)
	seen := map[string]bool{}
	for _, c := range ctx.Top3 {
		assert.False(t, seen[c], "duplicate %q in top3", c)
		seen[c] = true
	}
}

func TestBuildContext_NoSignal(t *testing.T) {
	ctx := BuildContext("", "", nil)
	assert.Empty(t, ctx.Primary)
	assert.Empty(t, ctx.Top3)
	assert.Equal(t, VerticalOther, ctx.Vertical)
}

func TestBuildContext_GenericPrimaryFallsBackToRaw(t *testing.T) {
	// "food" normalizes away, but the raw entry still pins the vertical.
	ctx := BuildContext("food", "", nil)
	assert.Empty(t, ctx.Primary)
	assert.Equal(t, VerticalFoodDining, ctx.Vertical)
}

func TestBuildContext_SkipsEmptySources(t *testing.T) {
	ctx := BuildContext("", "Hair Salon", []string{"establishment"})
	assert.Equal(t, "hair salon", ctx.Primary)
	assert.Equal(t, VerticalBeauty, ctx.Vertical)
	assert.Equal(t, []string{"hair salon"}, ctx.Top3)
}
