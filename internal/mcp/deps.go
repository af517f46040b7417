package mcp

import (
	"context"

	"github.com/honeycarbs/jobflow/internal/config"
	"github.com/honeycarbs/jobflow/internal/domain"
	"github.com/honeycarbs/jobflow/internal/domain/alert"
	"github.com/honeycarbs/jobflow/internal/domain/job"
	adzunaProvider "github.com/honeycarbs/jobflow/internal/domain/job/providers/adzuna"
	naukriProvider "github.com/honeycarbs/jobflow/internal/domain/job/providers/naukri"
	remotiveProvider "github.com/honeycarbs/jobflow/internal/domain/job/providers/remotive"
	"github.com/honeycarbs/jobflow/internal/domain/preference"
	"github.com/honeycarbs/jobflow/internal/domain/search"
	"github.com/honeycarbs/jobflow/internal/mcp/tools"
	"github.com/honeycarbs/jobflow/internal/notify"
	"github.com/honeycarbs/jobflow/internal/storage/memory"
	storage "github.com/honeycarbs/jobflow/internal/storage/neo4j"
	pgstore "github.com/honeycarbs/jobflow/internal/storage/postgres"
	redisstore "github.com/honeycarbs/jobflow/internal/storage/redis"
	"github.com/honeycarbs/jobflow/pkg/adzuna"
	"github.com/honeycarbs/jobflow/pkg/logging"
	n4j "github.com/honeycarbs/jobflow/pkg/neo4j"
	"github.com/honeycarbs/jobflow/pkg/postgres"
	"github.com/honeycarbs/jobflow/pkg/redis"
	"github.com/honeycarbs/jobflow/pkg/remotive"
	sheetsclient "github.com/honeycarbs/jobflow/pkg/sheets"
)

// Resources holds the services behind the MCP tools
type Resources struct {
	Orchestrator *job.Orchestrator
	Search       *search.Service
	Preferences  *preference.Service
	Alerts       *alert.Service
	Archive      *storage.JobRepository
	Sheets       tools.SheetsClient
}

// NotifierOptions registers one notifier per configured channel
type NotifierOptions []alert.Option

func noop() {}

// provideAdapters builds every enabled and configured source in registration order
func provideAdapters(cfg config.Config, logger *logging.Logger) []job.Adapter {
	var adapters []job.Adapter

	if cfg.Adzuna.Enabled {
		if a, err := buildAdzuna(cfg, logger); err != nil {
			logger.Warn("adzuna source disabled", "err", err)
		} else {
			adapters = append(adapters, a)
		}
	}

	if cfg.Remotive.Enabled {
		client := remotive.NewClient(remotive.Config{BaseURL: cfg.Remotive.BaseURL})
		if a, err := remotiveProvider.NewProvider(client, logger); err != nil {
			logger.Warn("remotive source disabled", "err", err)
		} else {
			adapters = append(adapters, a)
		}
	}

	if cfg.Naukri.Enabled {
		a, err := naukriProvider.NewProvider(naukriProvider.Config{
			BaseURL:          cfg.Naukri.BaseURL,
			UserAgent:        cfg.Naukri.UserAgent,
			CacheTTL:         cfg.Naukri.CacheTTL,
			MaxResults:       cfg.Naukri.MaxResults,
			MinDelay:         cfg.Naukri.MinDelay,
			BootstrapTimeout: cfg.Naukri.BootstrapTimeout,
		}, logger)
		if err != nil {
			logger.Warn("naukri source disabled", "err", err)
		} else {
			adapters = append(adapters, a)
		}
	}

	return adapters
}

func buildAdzuna(cfg config.Config, logger *logging.Logger) (job.Adapter, error) {
	client, err := adzuna.NewClient(adzuna.Config{
		AppID:    cfg.Adzuna.AppID,
		AppKey:   cfg.Adzuna.AppKey,
		Country:  cfg.Adzuna.Country,
		PageSize: cfg.Adzuna.ResultsPerPage,
	})
	if err != nil {
		return nil, err
	}
	return adzunaProvider.NewProvider(client, logger)
}

// provideArchive connects the Neo4j archive; an unset or unreachable database disables it
func provideArchive(ctx context.Context, cfg config.Config, logger *logging.Logger) (*storage.JobRepository, func()) {
	ncfg := n4j.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
	}
	if !ncfg.Enabled() {
		logger.Info("job archive disabled (NEO4J_URI not set)")
		return nil, noop
	}

	client, err := n4j.NewClient(ctx, ncfg)
	if err != nil {
		logger.Warn("job archive disabled", "err", err)
		return nil, noop
	}

	repo := storage.NewJobRepository(client)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Warn("neo4j schema setup failed", "err", err)
	}

	logger.Info("Neo4j client initialized", "uri", cfg.Neo4j.URI)
	return repo, func() { _ = client.Shutdown(context.Background()) }
}

// provideOrchestrator builds the pool orchestrator over the configured sources
func provideOrchestrator(cfg config.Config, adapters []job.Adapter, archive *storage.JobRepository, logger *logging.Logger) (*job.Orchestrator, error) {
	var repo job.Repository
	if archive != nil {
		repo = archive
	}

	return job.NewOrchestratorWithDeps(adapters, repo, logger,
		job.WithCache(cfg.Fetch.CacheTTL, cfg.Fetch.CacheMaxEntries),
		job.WithCoalescing(cfg.Fetch.Coalesce),
		job.WithTimeouts(cfg.Fetch.Timeout, cfg.Fetch.AdapterTimeout),
		job.WithWorkers(cfg.Fetch.Workers),
	)
}

// providePreferenceStore selects Redis when REDIS_URL is set, memory otherwise
func providePreferenceStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (preference.Store, func(), error) {
	if cfg.RedisURL == "" {
		logger.Info("preferences kept in memory (REDIS_URL not set)")
		return memory.NewPreferenceStore(), noop, nil
	}

	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	store, err := redisstore.NewPreferenceStore(client)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	logger.Info("preferences stored in redis")
	return store, func() { _ = client.Close() }, nil
}

func providePreferenceService(store preference.Store, logger *logging.Logger) (*preference.Service, error) {
	return preference.NewService(store, logger)
}

func provideSearchService(orch *job.Orchestrator, prefs *preference.Service, logger *logging.Logger) (*search.Service, error) {
	return search.NewService(orch, prefs, search.WithLogger(logger))
}

// provideSavedSearchStore selects Postgres when DATABASE_URL is set, memory otherwise
func provideSavedSearchStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (alert.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Info("saved searches kept in memory (DATABASE_URL not set)")
		return memory.NewSavedSearchStore(), noop, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := pgstore.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}
	store, err := pgstore.NewSavedSearchStore(pool)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	logger.Info("saved searches stored in postgres")
	return store, pool.Close, nil
}

// provideSheetsClient returns nil when no credentials are configured
func provideSheetsClient(ctx context.Context, cfg config.Config, logger *logging.Logger) *sheetsclient.Client {
	if cfg.SheetsCredentialsPath == "" {
		logger.Info("Google Sheets disabled (GOOGLE_SHEETS_CREDENTIALS_PATH not set)")
		return nil
	}

	client, err := sheetsclient.NewClient(ctx, sheetsclient.Config{CredentialsPath: cfg.SheetsCredentialsPath})
	if err != nil {
		logger.Warn("Google Sheets disabled", "err", err)
		return nil
	}
	return client
}

func provideSheetsExporter(client *sheetsclient.Client) tools.SheetsClient {
	return &sheetsClientAdapter{client: client}
}

// provideNotifiers builds a notifier for every channel whose settings are present
func provideNotifiers(cfg config.Config, sheets *sheetsclient.Client, logger *logging.Logger) (NotifierOptions, func()) {
	var opts NotifierOptions
	cleanup := noop

	smtpCfg := notify.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}
	if smtpCfg.Enabled() {
		if n, err := notify.NewEmail(smtpCfg, logger); err != nil {
			logger.Warn("email alerts disabled", "err", err)
		} else {
			opts = append(opts, alert.WithNotifier(domain.ChannelEmail, n))
		}
	} else {
		logger.Warn("email alerts disabled (SMTP_HOST or SMTP_FROM not set)")
	}

	twilioCfg := notify.TwilioConfig{
		AccountSID: cfg.Twilio.AccountSID,
		AuthToken:  cfg.Twilio.AuthToken,
		FromNumber: cfg.Twilio.FromNumber,
	}
	if twilioCfg.Enabled() {
		if n, err := notify.NewWhatsApp(twilioCfg, logger); err != nil {
			logger.Warn("whatsapp alerts disabled", "err", err)
		} else {
			opts = append(opts, alert.WithNotifier(domain.ChannelWhatsApp, n))
		}
	} else {
		logger.Warn("whatsapp alerts disabled (Twilio credentials not set)")
	}

	if sheets != nil {
		if n, err := notify.NewSheets(sheets, logger); err != nil {
			logger.Warn("sheets alerts disabled", "err", err)
		} else {
			opts = append(opts, alert.WithNotifier(domain.ChannelSheets, n))
		}
	}

	queueCfg := notify.QueueConfig{
		URL:        cfg.RabbitMQ.URL,
		Exchange:   cfg.RabbitMQ.Exchange,
		RoutingKey: cfg.RabbitMQ.RoutingKey,
		QueueName:  cfg.RabbitMQ.QueueName,
	}
	if queueCfg.Enabled() {
		q, err := notify.NewQueue(queueCfg, logger)
		if err != nil {
			logger.Warn("queue alerts disabled", "err", err)
		} else {
			opts = append(opts, alert.WithNotifier(domain.ChannelQueue, q))
			cleanup = func() { _ = q.Shutdown(context.Background()) }
		}
	}

	return opts, cleanup
}

func provideAlertService(store alert.Store, prefs *preference.Service, searchSvc *search.Service, notifiers NotifierOptions, logger *logging.Logger) (*alert.Service, error) {
	opts := append([]alert.Option{alert.WithLogger(logger)}, notifiers...)
	return alert.NewService(store, prefs, searchSvc, opts...)
}

func newResources(
	orch *job.Orchestrator,
	searchSvc *search.Service,
	prefs *preference.Service,
	alerts *alert.Service,
	archive *storage.JobRepository,
	sheets tools.SheetsClient,
) *Resources {
	return &Resources{
		Orchestrator: orch,
		Search:       searchSvc,
		Preferences:  prefs,
		Alerts:       alerts,
		Archive:      archive,
		Sheets:       sheets,
	}
}

// toolOptions selects the tools backed by res
func toolOptions(res *Resources, logger *logging.Logger) []tools.Option {
	var finder tools.JobFinder
	if res.Archive != nil {
		finder = res.Archive
	}

	return []tools.Option{
		tools.WithJobSearch(res.Search, logger),
		tools.WithFetchJobs(res.Orchestrator, logger),
		tools.WithPreferences(res.Preferences, logger),
		tools.WithAlerts(res.Alerts, logger),
		tools.WithSheetsExport(res.Sheets, finder, res.Search, logger),
	}
}
