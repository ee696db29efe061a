package places

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchNearby_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/places:searchNearby", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))
		assert.Contains(t, r.Header.Get("X-Goog-FieldMask"), "places.primaryType")

		var body searchNearbyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"restaurant"}, body.IncludedTypes)
		assert.Equal(t, 20, body.MaxResultCount)
		assert.InDelta(t, 1500.0, body.LocationRestriction.Circle.Radius, 0.001)

		rating := 4.4
		count := 210
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SearchNearbyResponse{
			Places: []place{
				{
					ID:              "ChIJ-cafe1",
					DisplayName:     displayName{Text: "Corner Cafe"},
					PrimaryType:     "cafe",
					Types:           []string{"cafe", "food", "point_of_interest"},
					Rating:          &rating,
					UserRatingCount: &count,
					Photos:          []photo{{Name: "places/ChIJ-cafe1/photos/abc"}},
				},
			},
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.SearchNearby(context.Background(), LatLng{Latitude: -26.1, Longitude: 28.05}, 1500, []string{"restaurant"})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ChIJ-cafe1", got[0].PlaceID)
	assert.Equal(t, "Corner Cafe", got[0].Name)
	assert.Equal(t, "cafe", got[0].PrimaryType)
	assert.InDelta(t, 4.4, *got[0].Rating, 0.001)
	assert.Equal(t, "places/ChIJ-cafe1/photos/abc", got[0].PhotoRef)
}

func TestSearchText_BiasedQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/places:searchText", r.URL.Path)

		var body textSearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "coffee shop near Braamfontein", body.TextQuery)
		require.NotNil(t, body.LocationBias)
		assert.InDelta(t, -26.19, body.LocationBias.Circle.Center.Latitude, 0.001)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(TextSearchResponse{
			Places: []place{{ID: "ChIJ-1", DisplayName: displayName{Text: "Bean There"}}},
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	center := LatLng{Latitude: -26.19, Longitude: 28.03}
	got, err := client.SearchText(context.Background(), "coffee shop near Braamfontein", &center, 2000)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bean There", got[0].Name)
}

func TestSearchText_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(TextSearchResponse{Places: nil})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.SearchText(context.Background(), "nonexistent", nil, 0)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchNearby_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": "invalid API key"}`)) //nolint:errcheck
	}))
	defer srv.Close()

	client := NewClient("bad-key", WithBaseURL(srv.URL))
	got, err := client.SearchNearby(context.Background(), LatLng{}, 1000, nil)

	assert.Error(t, err)
	assert.Nil(t, got)
	assert.Contains(t, err.Error(), "403")
}

func TestSearchNearby_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	got, err := client.SearchNearby(ctx, LatLng{}, 1000, nil)

	assert.Error(t, err)
	assert.Nil(t, got)
}
