package neo4j

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobflow/internal/domain"
	"github.com/honeycarbs/jobflow/internal/domain/job"
)

func TestParamsRoundTrip(t *testing.T) {
	posted := time.Date(2025, 2, 27, 10, 0, 0, 0, time.UTC)
	in := []domain.Job{
		job.Normalize(domain.RawJob{Source: "adzuna", Title: "Go Dev", Company: "Acme", Location: "Pune",
			ApplyURL: "https://a/1", PostedAt: &posted}),
		job.Normalize(domain.RawJob{Source: "naukri", Title: "SRE", ApplyURL: "https://n/2"}),
	}

	params := toParams(in)
	require.Len(t, params, 2)
	assert.Equal(t, in[0].ID.String(), params[0]["id"])
	assert.Equal(t, posted, params[0]["postedAt"])
	assert.Nil(t, params[1]["postedAt"])

	out, ok := fromProps(params[0], "Acme")
	require.True(t, ok)
	assert.Equal(t, in[0], out)

	out, ok = fromProps(params[1], "")
	require.True(t, ok)
	assert.Equal(t, in[1], out)

	_, ok = fromProps(map[string]any{"id": "nope"}, "")
	assert.False(t, ok)
}
