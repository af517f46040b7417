package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// JobID uniquely identifies a normalized job
type JobID = uuid.UUID

// PreferenceID identifies a stored search preference
type PreferenceID = uuid.UUID

// RawJob is a posting as returned by a single source adapter
type RawJob struct {
	Source      string
	Title       string
	Company     string
	Location    string
	ApplyURL    string
	PostedAt    *time.Time
	Description string
}

// Job is the normalized job posting entity.
// Two jobs are duplicates when their DedupKey values are equal; source and
// posting time do not take part, so a posting mirrored by two sources collapses.
type Job struct {
	ID       JobID
	Title    string
	Company  string
	Location string
	Source   string
	ApplyURL string
	PostedAt *time.Time
}

// DedupKey is the equality key used when merging sources
type DedupKey struct {
	ApplyURL string
	Title    string
	Company  string
	Location string
}

// DedupKey returns the content key of the job
func (j Job) DedupKey() DedupKey {
	return DedupKey{
		ApplyURL: j.ApplyURL,
		Title:    j.Title,
		Company:  j.Company,
		Location: j.Location,
	}
}

// View maps the job to its response shape
func (j Job) View() JobView {
	return JobView{
		ID:       j.ID,
		Title:    j.Title,
		Company:  j.Company,
		Location: j.Location,
		Source:   j.Source,
		ApplyURL: j.ApplyURL,
		PostedAt: j.PostedAt,
	}
}

// Query is what a caller asks the sources for
type Query struct {
	Title      string
	Location   string
	RemoteOnly bool
}

// QueryKey is the normalized form of a Query used as a cache key
type QueryKey struct {
	Title      string
	Location   string
	RemoteOnly bool
}

// Key lower-cases and trims the query
func (q Query) Key() QueryKey {
	return QueryKey{
		Title:      strings.ToLower(strings.TrimSpace(q.Title)),
		Location:   strings.ToLower(strings.TrimSpace(q.Location)),
		RemoteOnly: q.RemoteOnly,
	}
}

func (k QueryKey) String() string {
	return fmt.Sprintf("%s|%s|%t", k.Title, k.Location, k.RemoteOnly)
}

// Preference is a stored job search profile
type Preference struct {
	ID         PreferenceID `json:"id"`
	JobTitle   string       `json:"jobTitle"`
	Experience string       `json:"experience,omitempty"`
	Location   string       `json:"location,omitempty"`
	RemoteOnly bool         `json:"remoteOnly"`
}

// Query builds the source query for the preference
func (p Preference) Query() Query {
	return Query{
		Title:      p.JobTitle,
		Location:   p.Location,
		RemoteOnly: p.RemoteOnly,
	}
}

// JobView is the response-friendly job view
type JobView struct {
	ID       JobID      `json:"id"`
	Title    string     `json:"title"`
	Company  string     `json:"company"`
	Location string     `json:"location"`
	Source   string     `json:"source"`
	ApplyURL string     `json:"applyUrl"`
	PostedAt *time.Time `json:"postedAt,omitempty"`
}

// ResultPage is one page of a filtered result set.
// Total is the post-filter count, not the size of the pool.
type ResultPage[T any] struct {
	Items []T `json:"items"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Total int `json:"total"`
}

// RecencyWindows are the cumulative recency buckets, in days
var RecencyWindows = []int{1, 3, 7, 14, 30}

// RecencyAny is the bucket counting every filtered posting
const RecencyAny = "any"

// FacetCounts aggregates a filtered pool by source and recency
type FacetCounts struct {
	SourceCounts  map[string]int `json:"sourceCounts"`
	RecencyCounts map[string]int `json:"recencyCounts"`
	Total         int            `json:"total"`
}
