package places

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Candidate is one business returned by a nearby or text search, carrying
// the raw type tags the classification pipeline consumes.
type Candidate struct {
	PlaceID         string   `json:"id"`
	Name            string   `json:"name"`
	PrimaryType     string   `json:"primaryType"`
	Types           []string `json:"types"`
	Rating          *float64 `json:"rating,omitempty"`
	UserRatingCount *int     `json:"userRatingCount,omitempty"`
	Location        *LatLng  `json:"location,omitempty"`
	PhotoRef        string   `json:"photoRef,omitempty"`
	DistanceMeters  *int     `json:"distanceMeters,omitempty"`
}

// SearchNearbyResponse is the response from Places Nearby Search.
type SearchNearbyResponse struct {
	Places []place `json:"places"`
}

// TextSearchResponse is the response from Places Text Search.
type TextSearchResponse struct {
	Places []place `json:"places"`
}

type displayName struct {
	Text string `json:"text"`
}

type photo struct {
	Name string `json:"name"`
}

type place struct {
	ID              string      `json:"id"`
	DisplayName     displayName `json:"displayName"`
	PrimaryType     string      `json:"primaryType"`
	Types           []string    `json:"types"`
	Rating          *float64    `json:"rating,omitempty"`
	UserRatingCount *int        `json:"userRatingCount,omitempty"`
	Location        *LatLng     `json:"location,omitempty"`
	Photos          []photo     `json:"photos,omitempty"`
}

func (p place) candidate() Candidate {
	c := Candidate{
		PlaceID:         p.ID,
		Name:            p.DisplayName.Text,
		PrimaryType:     p.PrimaryType,
		Types:           p.Types,
		Rating:          p.Rating,
		UserRatingCount: p.UserRatingCount,
		Location:        p.Location,
	}
	if len(p.Photos) > 0 {
		c.PhotoRef = p.Photos[0].Name
	}
	return c
}
