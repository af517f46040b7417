//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/honeycarbs/jobflow/internal/domain"
	pgclient "github.com/honeycarbs/jobflow/pkg/postgres"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	store     *SavedSearchStore
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := tcpostgres.Run(s.ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("jobflow_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	pool, err := pgclient.NewPool(s.ctx, connStr)
	s.Require().NoError(err)
	s.pool = pool

	s.Require().NoError(Migrate(s.ctx, pool))
	s.Require().NoError(Migrate(s.ctx, pool))

	store, err := NewSavedSearchStore(pool)
	s.Require().NoError(err)
	s.store = store
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.pool.Exec(s.ctx, "DELETE FROM saved_searches")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) TestSaveGetUpdate() {
	created := time.Now().UTC().Truncate(time.Microsecond)
	saved := domain.SavedSearch{
		ID:           uuid.New(),
		PreferenceID: uuid.New(),
		Contact:      "dev@example.com",
		Channel:      domain.ChannelEmail,
		Frequency:    domain.FrequencyWeekly,
		CreatedAt:    created,
	}
	s.Require().NoError(s.store.Save(s.ctx, saved))

	got, err := s.store.Get(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal(saved.PreferenceID, got.PreferenceID)
	s.Equal(domain.FrequencyWeekly, got.Frequency)
	s.True(created.Equal(got.CreatedAt))
	s.Nil(got.LastSentAt)

	sent := created.Add(time.Hour)
	saved.LastSentAt = &sent
	saved.Channel = domain.ChannelQueue
	s.Require().NoError(s.store.Save(s.ctx, saved))

	got, err = s.store.Get(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.Equal(domain.ChannelQueue, got.Channel)
	s.Require().NotNil(got.LastSentAt)
	s.True(sent.Equal(*got.LastSentAt))
}

func (s *PostgresIntegrationSuite) TestListOrderAndDelete() {
	base := time.Now().UTC().Truncate(time.Microsecond)
	later := domain.SavedSearch{ID: uuid.New(), PreferenceID: uuid.New(), Contact: "b",
		Channel: domain.ChannelEmail, Frequency: domain.FrequencyDaily, CreatedAt: base.Add(time.Minute)}
	earlier := domain.SavedSearch{ID: uuid.New(), PreferenceID: uuid.New(), Contact: "a",
		Channel: domain.ChannelEmail, Frequency: domain.FrequencyDaily, CreatedAt: base}

	s.Require().NoError(s.store.Save(s.ctx, later))
	s.Require().NoError(s.store.Save(s.ctx, earlier))

	list, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("a", list[0].Contact)

	s.Require().NoError(s.store.Delete(s.ctx, earlier.ID))
	s.True(errors.Is(s.store.Delete(s.ctx, earlier.ID), domain.ErrNotFound))

	_, err = s.store.Get(s.ctx, earlier.ID)
	s.True(errors.Is(err, domain.ErrNotFound))
}
