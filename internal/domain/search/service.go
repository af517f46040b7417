package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/honeycarbs/jobflow/internal/domain"
	"github.com/honeycarbs/jobflow/internal/domain/job"
	"github.com/honeycarbs/jobflow/pkg/logging"
)

const (
	// SourceAll disables the source filter
	SourceAll = "all"
	// SortRecency orders newest first; anything else keeps pool order
	SortRecency = "recency"
)

// Params describe a filtered, paginated search
type Params struct {
	PreferenceID     domain.PreferenceID
	Page             int
	Size             int
	Source           string
	PostedWithinDays int
	CompanyContains  string
	SortBy           string
}

// Option configures Service
type Option func(*Service)

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// Service filters, sorts, paginates and aggregates the job pool
type Service struct {
	pool   Pool
	prefs  PreferenceLookup
	clock  func() time.Time
	logger *logging.Logger
}

// NewService builds the query engine
func NewService(pool Pool, prefs PreferenceLookup, opts ...Option) (*Service, error) {
	if pool == nil {
		return nil, fmt.Errorf("search.Service: pool is required")
	}
	if prefs == nil {
		return nil, fmt.Errorf("search.Service: preference lookup is required")
	}

	s := &Service{pool: pool, prefs: prefs, clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.logger = s.logger.Component("search")
	return s, nil
}

// Search returns one page of the preference's pool after filtering.
// Filters apply in order: source, posting age, company. Undated postings never
// pass the posting age filter.
func (s *Service) Search(ctx context.Context, p Params) (domain.ResultPage[domain.JobView], error) {
	pool, err := s.loadPool(ctx, p.PreferenceID)
	if err != nil {
		return domain.ResultPage[domain.JobView]{}, err
	}

	now := s.clock()
	filtered := make([]domain.Job, 0, len(pool))
	for _, j := range pool {
		if !matchesSource(j, p.Source) ||
			!postedWithin(j, p.PostedWithinDays, now) ||
			!companyMatches(j, p.CompanyContains) {
			continue
		}
		filtered = append(filtered, j)
	}

	if strings.EqualFold(strings.TrimSpace(p.SortBy), SortRecency) {
		job.SortByRecency(filtered)
	}

	page, size := max(p.Page, 0), max(p.Size, 0)
	from, to := pageBounds(page, size, len(filtered))

	items := make([]domain.JobView, 0, to-from)
	for _, j := range filtered[from:to] {
		items = append(items, j.View())
	}

	return domain.ResultPage[domain.JobView]{
		Items: items,
		Page:  page,
		Size:  size,
		Total: len(filtered),
	}, nil
}

// Facets counts the preference's pool by source and recency.
// Only the company filter applies. Undated postings count toward "any" only.
// sortBy does not affect counts.
func (s *Service) Facets(ctx context.Context, prefID domain.PreferenceID, companyContains, sortBy string) (domain.FacetCounts, error) {
	pool, err := s.loadPool(ctx, prefID)
	if err != nil {
		return domain.FacetCounts{}, err
	}

	filtered := make([]domain.Job, 0, len(pool))
	for _, j := range pool {
		if companyMatches(j, companyContains) {
			filtered = append(filtered, j)
		}
	}

	sources := make(map[string]int)
	for _, key := range s.pool.SourceKeys() {
		sources[strings.ToLower(key)] = 0
	}
	for _, j := range filtered {
		key := strings.ToLower(strings.TrimSpace(j.Source))
		if key == "" {
			key = "unknown"
		}
		sources[key]++
	}

	recency := make(map[string]int, len(domain.RecencyWindows)+1)
	for _, w := range domain.RecencyWindows {
		recency[strconv.Itoa(w)] = 0
	}
	now := s.clock()
	for _, j := range filtered {
		if j.PostedAt == nil {
			continue
		}
		days := int(now.Sub(*j.PostedAt) / (24 * time.Hour))
		for _, w := range domain.RecencyWindows {
			if days <= w {
				recency[strconv.Itoa(w)]++
			}
		}
	}
	recency[domain.RecencyAny] = len(filtered)

	return domain.FacetCounts{
		SourceCounts:  sources,
		RecencyCounts: recency,
		Total:         len(filtered),
	}, nil
}

func (s *Service) loadPool(ctx context.Context, prefID domain.PreferenceID) ([]domain.Job, error) {
	pref, err := s.prefs.Get(ctx, prefID)
	if err != nil {
		return nil, errors.Wrapf(err, "preference %s", prefID)
	}

	pool, err := s.pool.FetchAll(ctx, pref.Query(), job.PoolCap)
	if err != nil {
		s.logger.Warn("pool fetch interrupted", "err", err, "preference", prefID.String())
		return nil, errors.Wrap(err, "fetch pool")
	}
	return pool, nil
}

func matchesSource(j domain.Job, source string) bool {
	source = strings.TrimSpace(source)
	if source == "" || strings.EqualFold(source, SourceAll) {
		return true
	}
	return strings.EqualFold(j.Source, source)
}

func postedWithin(j domain.Job, days int, now time.Time) bool {
	if days <= 0 {
		return true
	}
	if j.PostedAt == nil {
		return false
	}
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)
	return !j.PostedAt.Before(cutoff)
}

func companyMatches(j domain.Job, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(j.Company), strings.ToLower(needle))
}

// pageBounds returns the slice window for page/size over total items.
// It always satisfies 0 <= from <= to <= total.
func pageBounds(page, size, total int) (from, to int) {
	page, size = max(page, 0), max(size, 0)
	if size > 0 && page > total/size {
		return total, total
	}
	from = min(page*size, total)
	if size > total-from {
		return from, total
	}
	return from, from + size
}
