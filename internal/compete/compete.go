// Package compete retrieves and ranks competitor records for a subject
// business through a progressively loosened tier ladder.
package compete

// Record is one retrieved competitor. Optional metrics stay nil when the
// upstream source never supplied them.
type Record struct {
	PlaceID        string   `json:"place_id"`
	Name           string   `json:"name"`
	Rating         *float64 `json:"rating,omitempty"`
	ReviewsTotal   *int     `json:"reviews_total,omitempty"`
	DistanceMeters *int     `json:"distance_meters,omitempty"`
	IsStronger     *bool    `json:"is_stronger,omitempty"`
	PhotoRef       string   `json:"photo_ref,omitempty"`

	// Rank is relative to the record's position within its tier's ordering,
	// not a global rank across tiers.
	Rank int `json:"rank"`
}

// Tier identifies one ordering/loosening step of the retrieval ladder.
// Higher tiers relax ranking criteria to surface more candidates.
type Tier int

const (
	// Tier0 orders by stronger-than-subject first, then review volume, then rating.
	Tier0 Tier = iota
	// Tier1 drops the stronger-first priority.
	Tier1
	// Tier2 orders by proximity first, then review volume, then rating.
	Tier2
	// Tier3Plus orders by proximity only. Terminal: the ladder never loops back.
	Tier3Plus
)

// Cursor is the caller-held pagination state for a retrieval session. The
// engine is stateless; callers persist and resubmit the cursor between
// pages. Tier is monotonically non-decreasing and ExcludedIDs only grows.
type Cursor struct {
	SessionID   string   `json:"session_id,omitempty"`
	Tier        Tier     `json:"tier"`
	Offset      int      `json:"offset"`
	ExcludedIDs []string `json:"excluded_ids,omitempty"`
}

// Page is one page of competitors plus the cursor for the next call.
type Page struct {
	Competitors []Record `json:"competitors"`
	HasMore     bool     `json:"has_more"`
	NextCursor  Cursor   `json:"next_cursor"`
}
