package category

// Context is a subject business's canonical classification: its primary
// comparable category, up to three comparable categories, and its vertical.
type Context struct {
	Primary  string   `json:"primary,omitempty"`
	Top3     []string `json:"top3,omitempty"`
	Vertical Vertical `json:"vertical"`
}

// BuildContext combines a business's raw category fields into a canonical
// context. Sources are collected in order (primary category, legacy
// category, category list), normalized, de-duplicated preserving first-seen
// order. The vertical is derived from the primary comparable category,
// falling back to the first raw source when the primary normalized away.
func BuildContext(primaryCategory, legacyCategory string, categories []string) Context {
	raw := make([]string, 0, len(categories)+2)
	raw = append(raw, primaryCategory, legacyCategory)
	raw = append(raw, categories...)

	normalized := NormalizeAll(raw)

	ctx := Context{Vertical: VerticalOther}
	if len(normalized) > 0 {
		ctx.Primary = normalized[0]
		if len(normalized) > 3 {
			ctx.Top3 = normalized[:3]
		} else {
			ctx.Top3 = normalized
		}
		ctx.Vertical = VerticalOf(ctx.Primary)
		return ctx
	}

	// Every source normalized to nothing; classify the first non-empty raw
	// entry so a purely generic label set still lands in a vertical.
	for _, r := range raw {
		if r != "" {
			ctx.Vertical = VerticalOf(Normalize(r))
			if ctx.Vertical == VerticalOther {
				ctx.Vertical = VerticalFromTags([]string{r})
			}
			break
		}
	}
	return ctx
}
