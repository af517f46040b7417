package job

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/honeycarbs/jobflow/internal/domain"
	"github.com/honeycarbs/jobflow/pkg/logging"
	"github.com/honeycarbs/jobflow/pkg/ttlcache"
)

const (
	// PoolCap bounds the merged pool kept per query
	PoolCap = 200

	defaultCacheTTL       = 10 * time.Minute
	defaultFetchTimeout   = 20 * time.Second
	defaultAdapterTimeout = 15 * time.Second
	defaultWorkers        = 4
)

// Option configures Orchestrator
type Option func(*config)

type config struct {
	adapters        []Adapter
	repo            Repository
	clock           func() time.Time
	logger          *logging.Logger
	cacheTTL        time.Duration
	cacheMaxEntries int
	coalesce        bool
	fetchTimeout    time.Duration
	adapterTimeout  time.Duration
	workers         int
}

// WithAdapters sets the sources, in registration order
func WithAdapters(adapters ...Adapter) Option {
	return func(c *config) {
		c.adapters = adapters
	}
}

// WithRepository archives every freshly merged pool
func WithRepository(repo Repository) Option {
	return func(c *config) {
		c.repo = repo
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithCache sets the merged pool cache TTL and soft size bound
func WithCache(ttl time.Duration, maxEntries int) Option {
	return func(c *config) {
		if ttl > 0 {
			c.cacheTTL = ttl
		}
		c.cacheMaxEntries = maxEntries
	}
}

// WithCoalescing lets concurrent misses on one query share a single fan-out
func WithCoalescing(enabled bool) Option {
	return func(c *config) {
		c.coalesce = enabled
	}
}

// WithTimeouts sets the overall fan-out budget and the per-adapter budget
func WithTimeouts(fetch, adapter time.Duration) Option {
	return func(c *config) {
		if fetch > 0 {
			c.fetchTimeout = fetch
		}
		if adapter > 0 {
			c.adapterTimeout = adapter
		}
	}
}

// WithWorkers bounds how many adapters run at once
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// Orchestrator fans a query out to every adapter and caches the merged pool
type Orchestrator struct {
	adapters       []Adapter
	sourceKeys     []string
	repo           Repository
	cache          *ttlcache.Cache[domain.QueryKey, []domain.Job]
	logger         *logging.Logger
	fetchTimeout   time.Duration
	adapterTimeout time.Duration
	workers        int
}

// NewOrchestrator builds Orchestrator from options
func NewOrchestrator(opts ...Option) (*Orchestrator, error) {
	cfg := &config{
		clock:          time.Now,
		cacheTTL:       defaultCacheTTL,
		fetchTimeout:   defaultFetchTimeout,
		adapterTimeout: defaultAdapterTimeout,
		workers:        defaultWorkers,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if len(cfg.adapters) == 0 {
		return nil, errors.New("job.Orchestrator: at least one adapter is required")
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}

	keys := make([]string, 0, len(cfg.adapters))
	for _, a := range cfg.adapters {
		if a == nil {
			return nil, errors.New("job.Orchestrator: nil adapter")
		}
		keys = append(keys, a.SourceKey())
	}

	cacheOpts := []ttlcache.Option{
		ttlcache.WithClock(cfg.clock),
		ttlcache.WithMaxEntries(cfg.cacheMaxEntries),
	}
	if cfg.coalesce {
		cacheOpts = append(cacheOpts, ttlcache.WithCoalescing())
	}

	logger := cfg.logger.Component("orchestrator")
	logger.Info("sources registered", "sources", keys)

	return &Orchestrator{
		adapters:       cfg.adapters,
		sourceKeys:     keys,
		repo:           cfg.repo,
		cache:          ttlcache.New[domain.QueryKey, []domain.Job](cfg.cacheTTL, cacheOpts...),
		logger:         logger,
		fetchTimeout:   cfg.fetchTimeout,
		adapterTimeout: cfg.adapterTimeout,
		workers:        cfg.workers,
	}, nil
}

// NewOrchestratorWithDeps creates an Orchestrator with direct dependencies (Wire-compatible)
func NewOrchestratorWithDeps(adapters []Adapter, repo Repository, logger *logging.Logger, opts ...Option) (*Orchestrator, error) {
	base := []Option{WithAdapters(adapters...), WithLogger(logger)}
	if repo != nil {
		base = append(base, WithRepository(repo))
	}
	return NewOrchestrator(append(base, opts...)...)
}

// SourceKeys lists the registered sources in registration order
func (o *Orchestrator) SourceKeys() []string {
	out := make([]string, len(o.sourceKeys))
	copy(out, o.sourceKeys)
	return out
}

// FetchAll returns at most max jobs (at least one slot) of the merged pool for q.
// The result is a copy; the cached pool is never exposed.
// If ctx ends mid fan-out the partial merge is returned with ctx's error.
// A pool cut short by the fetch deadline is returned without error.
// Neither is cached.
func (o *Orchestrator) FetchAll(ctx context.Context, q domain.Query, max int) ([]domain.Job, error) {
	if max < 1 {
		max = 1
	}

	pool, err := o.cache.GetOrCompute(q.Key(), func() ([]domain.Job, error) {
		merged, err := o.fanOut(ctx, q)
		if err != nil {
			return nil, err
		}
		o.archive(ctx, merged)
		return merged, nil
	})
	if err != nil {
		var short *partialPool
		if errors.As(err, &short) {
			return copyN(short.jobs, max), short.cause
		}
		return nil, err
	}
	return copyN(pool, max), nil
}

// partialPool carries a merge that must not be cached. A nil cause means
// the fetch deadline cut the fan-out short.
type partialPool struct {
	jobs  []domain.Job
	cause error
}

func (p *partialPool) Error() string {
	if p.cause == nil {
		return "fetch all: fetch deadline reached"
	}
	return p.cause.Error()
}

func (p *partialPool) Unwrap() error { return p.cause }

// Invalidate drops the cached pool for q
func (o *Orchestrator) Invalidate(q domain.Query) {
	o.cache.Invalidate(q.Key())
}

// Clear drops every cached pool
func (o *Orchestrator) Clear() {
	o.cache.Clear()
}

func (o *Orchestrator) fanOut(ctx context.Context, q domain.Query) ([]domain.Job, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, o.fetchTimeout)
	defer cancel()

	batches := make([][]domain.RawJob, len(o.adapters))

	g := new(errgroup.Group)
	g.SetLimit(o.workers)
	for i, a := range o.adapters {
		g.Go(func() error {
			batches[i] = o.fetchOne(fetchCtx, a, o.sourceKeys[i], q)
			return nil
		})
	}
	_ = g.Wait()

	merged := mergePool(batches, PoolCap)
	if err := ctx.Err(); err != nil {
		return nil, &partialPool{jobs: merged, cause: errors.Wrap(err, "fetch all")}
	}
	if fetchCtx.Err() != nil {
		o.logger.Warn("fetch deadline reached, pool not cached", "query", q.Key().String(), "jobs", len(merged))
		o.archive(ctx, merged)
		return nil, &partialPool{jobs: merged}
	}

	o.logger.Debug("pool merged", "query", q.Key().String(), "jobs", len(merged))
	return merged, nil
}

// fetchOne runs a single adapter under its own deadline.
// A panic or a missed deadline yields no postings.
func (o *Orchestrator) fetchOne(ctx context.Context, a Adapter, source string, q domain.Query) []domain.RawJob {
	log := o.logger.With("source", source)

	ctx, cancel := context.WithTimeout(ctx, o.adapterTimeout)
	defer cancel()

	done := make(chan []domain.RawJob, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("adapter panicked", "panic", r)
				done <- nil
			}
		}()
		done <- a.Fetch(ctx, q, PoolCap)
	}()

	select {
	case jobs := <-done:
		log.Debug("adapter finished", "jobs", len(jobs))
		return jobs
	case <-ctx.Done():
		log.Warn("adapter abandoned", "err", ctx.Err())
		return nil
	}
}

func (o *Orchestrator) archive(ctx context.Context, jobs []domain.Job) {
	if o.repo == nil || len(jobs) == 0 {
		return
	}
	if err := o.repo.UpsertJobs(ctx, jobs); err != nil {
		o.logger.Warn("archive failed", "err", err, "jobs", len(jobs))
	}
}
