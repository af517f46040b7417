package remotive

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobflow/internal/domain"
	"github.com/honeycarbs/jobflow/pkg/remotive"
)

type fakeClient struct {
	jobs []remotive.Job
	err  error
}

func (f fakeClient) SearchJobs(context.Context, string) ([]remotive.Job, error) {
	return f.jobs, f.err
}

func TestFetchMapsAndCaps(t *testing.T) {
	p, err := NewProvider(fakeClient{jobs: []remotive.Job{
		{Title: "Go Dev", CompanyName: "Acme", URL: "https://r/1", CandidateRequiredLocation: "USA"},
		{Title: "", URL: "https://r/2"},
		{Title: "SRE", URL: "https://r/3"},
		{Title: "Data", URL: "https://r/4"},
	}}, nil)
	require.NoError(t, err)

	jobs := p.Fetch(context.Background(), domain.Query{Title: "go", Location: "Berlin"}, 2)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Berlin", jobs[0].Location)
	assert.Equal(t, "remotive", jobs[0].Source)
	assert.Equal(t, "SRE", jobs[1].Title)

}

func TestFetchIgnoresUpstreamLocation(t *testing.T) {
	p, err := NewProvider(fakeClient{jobs: []remotive.Job{
		{Title: "Go Dev", CompanyName: "Acme", URL: "https://r/1", CandidateRequiredLocation: "USA"},
	}}, nil)
	require.NoError(t, err)

	jobs := p.Fetch(context.Background(), domain.Query{Title: "go"}, 10)
	require.Len(t, jobs, 1)
	assert.Empty(t, jobs[0].Location)
}

func TestFetchAbsorbsErrors(t *testing.T) {
	p, _ := NewProvider(fakeClient{err: errors.New("dial tcp: timeout")}, nil)
	assert.Empty(t, p.Fetch(context.Background(), domain.Query{Title: "go"}, 10))
}
