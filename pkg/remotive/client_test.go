package remotive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 2, 27, 10, 30, 0, 0, time.UTC)

	for _, in := range []string{"2025-02-27T10:30:00", "2025-02-27T10:30:00Z", "2025-02-27 10:30:00"} {
		got := ParseDate(in)
		require.NotNil(t, got, in)
		assert.True(t, want.Equal(*got), in)
	}

	day := ParseDate("2025-02-27")
	require.NotNil(t, day)
	assert.Equal(t, 27, day.Day())

	assert.Nil(t, ParseDate(""))
	assert.Nil(t, ParseDate("last week"))
}

func TestSearchJobs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/remote-jobs", r.URL.Path)
		assert.Equal(t, "go developer", r.URL.Query().Get("search"))
		_, _ = w.Write([]byte(`{"jobs":[{"id":7,"url":"https://remotive/7","title":"Go Dev",
			"company_name":"Acme","publication_date":"2025-02-27T10:30:00",
			"candidate_required_location":"Worldwide"}]}`))
	}))
	defer srv.Close()

	jobs, err := NewClient(Config{BaseURL: srv.URL}).SearchJobs(context.Background(), "go developer")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Acme", jobs[0].CompanyName)
	assert.Equal(t, "Worldwide", jobs[0].CandidateRequiredLocation)
	assert.NotNil(t, jobs[0].PostedAt)
}

func TestSearchJobsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(Config{BaseURL: srv.URL}).SearchJobs(context.Background(), "go")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}
