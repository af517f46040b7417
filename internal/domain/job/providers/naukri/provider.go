package naukri

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	"github.com/honeycarbs/jobflow/internal/domain"
	jobdomain "github.com/honeycarbs/jobflow/internal/domain/job"
	"github.com/honeycarbs/jobflow/pkg/logging"
	"github.com/honeycarbs/jobflow/pkg/ttlcache"
)

const (
	sourceKey = "naukri"

	defaultBaseURL    = "https://www.naukri.com"
	defaultUserAgent  = "JobFlowBot/0.1 (+https://github.com/honeycarbs/jobflow)"
	defaultCacheTTL   = 15 * time.Minute
	defaultMaxResults = 50
	defaultMinDelay   = 300 * time.Millisecond

	defaultBootstrapTimeout = 5 * time.Second

	maxBodyBytes   = 5 << 20
	previewLength  = 400
	requestTimeout = 15 * time.Second
)

// Config defines scraper settings
type Config struct {
	BaseURL          string
	UserAgent        string
	CacheTTL         time.Duration
	MaxResults       int
	MinDelay         time.Duration
	// BootstrapTimeout bounds the cookie visit to the site root
	BootstrapTimeout time.Duration
	HTTPClient       *http.Client
	Clock            func() time.Time
}

// Provider implements job.Adapter by scraping Naukri listing pages
type Provider struct {
	base       *url.URL
	userAgent  string
	maxResults int
	bootstrap  time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *ttlcache.Cache[domain.QueryKey, []domain.RawJob]
	clock      func() time.Time
	logger     *logging.Logger
}

// NewProvider builds a scraper with its own cookie jar and result cache
func NewProvider(cfg Config, logger *logging.Logger) (*Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	if cfg.MinDelay <= 0 {
		cfg.MinDelay = defaultMinDelay
	}
	if cfg.BootstrapTimeout <= 0 {
		cfg.BootstrapTimeout = defaultBootstrapTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("naukri provider: invalid base url %q", cfg.BaseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("naukri provider: cookie jar: %w", err)
	}

	httpClient := &http.Client{Timeout: requestTimeout}
	if cfg.HTTPClient != nil {
		c := *cfg.HTTPClient
		httpClient = &c
	}
	httpClient.Jar = jar

	return &Provider{
		base:       base,
		userAgent:  cfg.UserAgent,
		maxResults: cfg.MaxResults,
		bootstrap:  cfg.BootstrapTimeout,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Every(cfg.MinDelay), 1),
		cache:      ttlcache.New[domain.QueryKey, []domain.RawJob](cfg.CacheTTL, ttlcache.WithClock(cfg.Clock)),
		clock:      cfg.Clock,
		logger:     logger.With("source", sourceKey),
	}, nil
}

// SourceKey returns provider identifier
func (p *Provider) SourceKey() string {
	return sourceKey
}

// Fetch serves from the scraper cache or scrapes the listing pages.
// Failed scrapes are not cached.
func (p *Provider) Fetch(ctx context.Context, q domain.Query, max int) []domain.RawJob {
	if max <= 0 {
		return nil
	}

	jobs, err := p.cache.GetOrCompute(q.Key(), func() ([]domain.RawJob, error) {
		return p.scrape(ctx, q)
	})
	if err != nil {
		p.logger.Warn("scrape failed", "err", err, "query", q.Key().String())
		return nil
	}

	n := min(len(jobs), max)
	out := make([]domain.RawJob, n)
	copy(out, jobs[:n])
	return out
}

// Clear drops cached scrapes
func (p *Provider) Clear() {
	p.cache.Clear()
}

func (p *Provider) scrape(ctx context.Context, q domain.Query) ([]domain.RawJob, error) {
	p.visitRoot(ctx)

	pc := ParseContext{Base: p.base, Location: q.Location, Now: p.clock()}

	var lastErr error
	for _, candidate := range []string{pathURL(p.base.String(), q), queryURL(p.base.String(), q)} {
		body, err := p.get(ctx, candidate)
		if err != nil {
			p.logger.Warn("listing request failed", "url", candidate, "err", err)
			lastErr = err
			continue
		}

		jobs, layout, err := ParseListing(bytes.NewReader(body), pc)
		if err != nil {
			p.logger.Warn("listing parse failed", "url", candidate, "err", err)
			continue
		}
		if len(jobs) == 0 {
			p.logger.Debug("no postings on listing", "url", candidate)
			continue
		}

		if len(jobs) > p.maxResults {
			jobs = jobs[:p.maxResults]
		}
		p.logger.Debug("listing parsed", "url", candidate, "layout", layout, "jobs", len(jobs))
		return jobs, nil
	}

	return nil, lastErr
}

// visitRoot loads the site root so the jar holds session cookies.
// It runs under its own deadline and a failure does not stop the scrape.
func (p *Provider) visitRoot(ctx context.Context) {
	bctx, cancel := context.WithTimeout(ctx, p.bootstrap)
	defer cancel()

	if _, err := p.get(bctx, p.base.String()+"/"); err != nil {
		p.logger.Warn("bootstrap failed", "err", err)
	}
}

func (p *Provider) get(ctx context.Context, target string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "politeness wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", p.base.String()+"/")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, domain.Upstream(err, "naukri request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.Upstream(err, "naukri read body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusForbidden {
			p.logger.Warn("blocked by upstream", "url", target, "preview", preview(body))
		}
		return nil, errors.Mark(errors.Newf("naukri status %d", resp.StatusCode), domain.ErrUpstreamUnavailable)
	}
	return body, nil
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > previewLength {
		s = s[:previewLength]
	}
	return s
}

var _ jobdomain.Adapter = (*Provider)(nil)
