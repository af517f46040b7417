//go:build integration

package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/honeycarbs/jobflow/internal/domain"
	redisclient "github.com/honeycarbs/jobflow/pkg/redis"
)

type RedisIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container testcontainers.Container
	store     *PreferenceStore
}

func (s *RedisIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	endpoint, err := container.Endpoint(s.ctx, "")
	s.Require().NoError(err)

	client, err := redisclient.NewClient(s.ctx, fmt.Sprintf("redis://%s/0", endpoint))
	s.Require().NoError(err)

	store, err := NewPreferenceStore(client)
	s.Require().NoError(err)
	s.store = store
}

func (s *RedisIntegrationSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func TestRedisIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RedisIntegrationSuite))
}

func (s *RedisIntegrationSuite) TestSaveAndGet() {
	p := domain.Preference{ID: uuid.New(), JobTitle: "Go Developer", Location: "Pune", RemoteOnly: true}
	s.Require().NoError(s.store.Save(s.ctx, p))

	got, err := s.store.Get(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(p, got)
}

func (s *RedisIntegrationSuite) TestMissingIsNotFound() {
	_, err := s.store.Get(s.ctx, uuid.New())
	s.True(errors.Is(err, domain.ErrNotFound))
}
