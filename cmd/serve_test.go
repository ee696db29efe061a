package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibrhmmrana/hunter2.0-sub002/internal/compete"
)

type stubStore struct {
	records []compete.Record
	fail    bool
}

func (s *stubStore) ListCompetitors(_ context.Context, _ string, _ compete.Tier, offset, limit int) ([]compete.Record, error) {
	if s.fail {
		return nil, eris.New("connection refused")
	}
	if offset >= len(s.records) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.records) {
		end = len(s.records)
	}
	return s.records[offset:end], nil
}

func (s *stubStore) CountCompetitors(context.Context, string) (int, error) {
	if s.fail {
		return 0, eris.New("connection refused")
	}
	return len(s.records), nil
}

func (s *stubStore) InsertCompetitors(_ context.Context, _ string, records []compete.Record) (int64, error) {
	return int64(len(records)), nil
}

func postJSON(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleClassify(t *testing.T) {
	rec := postJSON(t, handleClassify, classifyRequest{
		Primary:    "Thai Restaurant",
		Categories: []string{"Asian Restaurant"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Primary  string `json:"primary"`
		Vertical string `json:"vertical"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "thai restaurant", got.Primary)
	assert.Equal(t, "food_dining", got.Vertical)
}

func TestHandleClassify_BadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	handleClassify(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleScore(t *testing.T) {
	body := scoreRequest{Subject: classifyRequest{Primary: "Thai Restaurant"}}
	body.Candidate.Types = []string{"thai_restaurant", "restaurant"}
	body.Candidate.Name = "Bangkok Kitchen"

	rec := postJSON(t, handleScore, body)

	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Score         int  `json:"score"`
		VerticalMatch bool `json:"vertical_match"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 6, got.Score)
	assert.True(t, got.VerticalMatch)
}

func TestHandleAnchor(t *testing.T) {
	rec := postJSON(t, handleAnchor, anchorRequest{
		Label: "thai restaurant",
		Types: []string{"restaurant"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got["passes"])
}

func TestHandleGaps_EmptyInputs(t *testing.T) {
	rec := postJSON(t, handleGaps, map[string]any{})

	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		OverallScore int             `json:"overall_score"`
		Cards        json.RawMessage `json:"cards"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 12, got.OverallScore)
}

func TestHandleCompetitors_Page(t *testing.T) {
	reviews := 120
	store := &stubStore{records: []compete.Record{
		{PlaceID: "p1", Name: "Corner Cafe", ReviewsTotal: &reviews},
	}}

	rec := postJSON(t, handleCompetitors(store), competitorsRequest{SubjectID: "subj-1"})

	require.Equal(t, http.StatusOK, rec.Code)
	var page compete.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Competitors, 1)
	assert.Equal(t, "p1", page.Competitors[0].PlaceID)
	assert.False(t, page.HasMore)
}

func TestHandleCompetitors_MissingSubject(t *testing.T) {
	rec := postJSON(t, handleCompetitors(&stubStore{}), competitorsRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCompetitors_StoreFailureIsBadGateway(t *testing.T) {
	rec := postJSON(t, handleCompetitors(&stubStore{fail: true}), competitorsRequest{SubjectID: "subj-1"})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "retrieval failed")
}
