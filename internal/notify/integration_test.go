//go:build integration

package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/honeycarbs/jobflow/pkg/logging"
)

type QueueIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *rabbitmq.RabbitMQContainer
	amqpURL   string
}

func (s *QueueIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := rabbitmq.Run(s.ctx,
		"rabbitmq:3.13-management-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	amqpURL, err := container.AmqpURL(s.ctx)
	s.Require().NoError(err)
	s.amqpURL = amqpURL
}

func (s *QueueIntegrationSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func TestQueueIntegrationSuite(t *testing.T) {
	suite.Run(t, new(QueueIntegrationSuite))
}

func (s *QueueIntegrationSuite) TestPublishDigest() {
	cfg := QueueConfig{
		URL:        s.amqpURL,
		Exchange:   "jobflow-test",
		RoutingKey: "alerts-test",
		QueueName:  "alerts-test",
	}

	q, err := NewQueue(cfg, logging.NewNop())
	s.Require().NoError(err)
	defer func() { _ = q.Shutdown(s.ctx) }()

	s.Require().NoError(q.Send(s.ctx, sampleDigest("dev@example.com")))

	conn, err := amqp.Dial(s.amqpURL)
	s.Require().NoError(err)
	defer conn.Close()

	ch, err := conn.Channel()
	s.Require().NoError(err)
	defer ch.Close()

	msgs, err := ch.Consume(cfg.QueueName, "", true, false, false, false, nil)
	s.Require().NoError(err)

	select {
	case msg := <-msgs:
		var got DigestMessage
		s.Require().NoError(json.Unmarshal(msg.Body, &got))
		s.Equal("dev@example.com", got.Contact)
		s.Len(got.Jobs, 2)
		s.Equal(uint8(amqp.Persistent), msg.DeliveryMode)
	case <-time.After(5 * time.Second):
		s.Fail("timeout waiting for digest")
	}
}
