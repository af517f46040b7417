package job

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobflow/internal/domain"
)

var jobNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/honeycarbs/jobflow/jobs"))

// JobIDFor derives the stable id of a posting from its source and apply URL
func JobIDFor(source, applyURL string) domain.JobID {
	return uuid.NewSHA1(jobNamespace, []byte(source+"|"+applyURL))
}

// Normalize assigns the stable id to a raw posting
func Normalize(raw domain.RawJob) domain.Job {
	return domain.Job{
		ID:       JobIDFor(raw.Source, raw.ApplyURL),
		Title:    raw.Title,
		Company:  raw.Company,
		Location: raw.Location,
		Source:   raw.Source,
		ApplyURL: raw.ApplyURL,
		PostedAt: cloneTime(raw.PostedAt),
	}
}

// SortByRecency orders jobs newest first with undated jobs last.
// Ties keep their relative order.
func SortByRecency(jobs []domain.Job) {
	sort.SliceStable(jobs, func(i, j int) bool {
		return newer(jobs[i].PostedAt, jobs[j].PostedAt)
	})
}

func newer(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.After(*b)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// mergePool normalizes batches in order, drops duplicates keeping the first
// occurrence, sorts by recency and caps the result.
func mergePool(batches [][]domain.RawJob, limit int) []domain.Job {
	seen := make(map[domain.DedupKey]struct{})
	pool := make([]domain.Job, 0)

	for _, batch := range batches {
		for _, raw := range batch {
			j := Normalize(raw)
			k := j.DedupKey()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			pool = append(pool, j)
		}
	}

	SortByRecency(pool)
	if len(pool) > limit {
		pool = pool[:limit:limit]
	}
	return pool
}

// copyN returns an independent copy of the first n jobs
func copyN(jobs []domain.Job, n int) []domain.Job {
	if n > len(jobs) {
		n = len(jobs)
	}
	out := make([]domain.Job, n)
	for i := 0; i < n; i++ {
		out[i] = jobs[i]
		out[i].PostedAt = cloneTime(jobs[i].PostedAt)
	}
	return out
}
