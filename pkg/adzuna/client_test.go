package adzuna

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSearchURL(t *testing.T) {
	c, err := NewClient(Config{AppID: "id", AppKey: "key", BaseURL: "https://api.example/", PageSize: 80})
	require.NoError(t, err)
	assert.Equal(t, maxPageSize, c.PageSize())

	raw, err := c.buildSearchURL(SearchParams{What: "go developer", Where: "Pune", Remote: true, Page: 3})
	require.NoError(t, err)

	assert.Contains(t, raw, "https://api.example/v1/api/jobs/in/search/3?")
	assert.Contains(t, raw, "what=go+developer")
	assert.Contains(t, raw, "where=Pune")
	assert.Contains(t, raw, "what_and=remote")
	assert.Contains(t, raw, "results_per_page=50")
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{AppID: "id"})
	assert.Error(t, err)
}

func TestSearchJobsDecodesAndToleratesBadDates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/api/jobs/in/search/1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":2,"results":[
			{"id":"1","title":" Go Dev ","company":{"display_name":"Acme"},"location":{"display_name":"Pune"},
			 "redirect_url":"https://adzuna/1","created":"2025-02-27T10:00:00Z"},
			{"id":"2","title":"SRE","redirect_url":"https://adzuna/2","created":"yesterday"}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{AppID: "id", AppKey: "key", BaseURL: srv.URL})
	require.NoError(t, err)

	jobs, err := c.SearchJobs(context.Background(), SearchParams{What: "go", Page: 1})
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "Go Dev", jobs[0].Title)
	assert.Equal(t, "Acme", jobs[0].CompanyName)
	require.NotNil(t, jobs[0].PostedAt)
	assert.Equal(t, 27, jobs[0].PostedAt.Day())
	assert.Nil(t, jobs[1].PostedAt)
}

func TestSearchJobsReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, err := NewClient(Config{AppID: "id", AppKey: "key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.SearchJobs(context.Background(), SearchParams{What: "go"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "quota exceeded", apiErr.Body)
}
