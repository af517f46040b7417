package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobflow/pkg/logging"
)

type capturePublisher struct {
	exchange, key string
	msg           amqp.Publishing
}

func (c *capturePublisher) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	c.exchange, c.key, c.msg = exchange, key, msg
	return nil
}

func TestQueueSendPublishesJSON(t *testing.T) {
	pub := &capturePublisher{}
	now := time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC)
	q := &Queue{
		channel:    pub,
		exchange:   "jobflow",
		routingKey: "alerts",
		clock:      func() time.Time { return now },
		logger:     logging.NewNop(),
	}

	require.NoError(t, q.Send(context.Background(), sampleDigest("dev@example.com")))

	assert.Equal(t, "jobflow", pub.exchange)
	assert.Equal(t, "alerts", pub.key)
	assert.Equal(t, "application/json", pub.msg.ContentType)
	assert.Equal(t, uint8(amqp.Persistent), pub.msg.DeliveryMode)

	var got DigestMessage
	require.NoError(t, json.Unmarshal(pub.msg.Body, &got))
	assert.Equal(t, "dev@example.com", got.Contact)
	assert.Equal(t, "New Go Developer jobs for you!", got.Subject)
	assert.Len(t, got.Jobs, 2)
	assert.True(t, got.SentAt.Equal(now))
}
