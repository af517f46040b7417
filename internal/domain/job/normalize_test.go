package job

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobflow/internal/domain"
)

func ptr(t time.Time) *time.Time { return &t }

func TestNormalizeIDIsDeterministic(t *testing.T) {
	raw := domain.RawJob{Source: "adzuna", Title: "Go Dev", ApplyURL: "https://x/1"}

	a := Normalize(raw)
	b := Normalize(raw)
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, JobIDFor("adzuna", "https://x/1"), a.ID)

	other := Normalize(domain.RawJob{Source: "remotive", Title: "Go Dev", ApplyURL: "https://x/1"})
	assert.NotEqual(t, a.ID, other.ID)
}

func TestMergePoolDedupFirstWins(t *testing.T) {
	shared := domain.RawJob{Title: "Go Dev", Company: "Acme", Location: "Pune", ApplyURL: "https://x/1"}
	a := shared
	a.Source = "adzuna"
	b := shared
	b.Source = "remotive"
	b.PostedAt = ptr(time.Now())

	pool := mergePool([][]domain.RawJob{{a}, {b}}, PoolCap)
	require.Len(t, pool, 1)
	assert.Equal(t, "adzuna", pool[0].Source)
	assert.Nil(t, pool[0].PostedAt)
}

func TestMergePoolSortIsStableAndNilsLast(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	batches := [][]domain.RawJob{
		{
			{Source: "a", Title: "u1", ApplyURL: "1"},
			{Source: "a", Title: "old", ApplyURL: "2", PostedAt: ptr(now.Add(-48 * time.Hour))},
		},
		{
			{Source: "b", Title: "u2", ApplyURL: "3"},
			{Source: "b", Title: "new", ApplyURL: "4", PostedAt: ptr(now)},
			{Source: "b", Title: "tie", ApplyURL: "5", PostedAt: ptr(now.Add(-48 * time.Hour))},
		},
	}

	pool := mergePool(batches, PoolCap)
	var titles []string
	for _, j := range pool {
		titles = append(titles, j.Title)
	}
	assert.Equal(t, []string{"new", "old", "tie", "u1", "u2"}, titles)
}

func TestMergePoolCaps(t *testing.T) {
	batch := make([]domain.RawJob, 0, 250)
	for i := 0; i < 250; i++ {
		batch = append(batch, domain.RawJob{Source: "a", Title: "t", ApplyURL: fmt.Sprintf("https://a.example/%d", i)})
	}
	pool := mergePool([][]domain.RawJob{batch}, PoolCap)
	assert.Len(t, pool, PoolCap)
}

func TestCopyNIsIndependent(t *testing.T) {
	ts := time.Now()
	src := []domain.Job{{Title: "a", PostedAt: &ts}, {Title: "b"}}

	out := copyN(src, 5)
	require.Len(t, out, 2)
	out[0].Title = "changed"
	*out[0].PostedAt = ts.Add(time.Hour)

	assert.Equal(t, "a", src[0].Title)
	assert.True(t, src[0].PostedAt.Equal(ts))
}
