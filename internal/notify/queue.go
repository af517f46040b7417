package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/honeycarbs/jobflow/internal/domain"
	"github.com/honeycarbs/jobflow/pkg/logging"
)

// QueueConfig holds RabbitMQ publisher settings
type QueueConfig struct {
	URL        string
	Exchange   string
	RoutingKey string
	QueueName  string
}

// Enabled reports whether a broker is configured
func (c QueueConfig) Enabled() bool {
	return c.URL != ""
}

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Queue publishes digests as JSON messages to RabbitMQ
type Queue struct {
	conn       *amqp.Connection
	channel    publisher
	closer     func() error
	exchange   string
	routingKey string
	clock      func() time.Time
	logger     *logging.Logger
}

// DigestMessage is the JSON body published for every digest
type DigestMessage struct {
	Contact string           `json:"contact"`
	Subject string           `json:"subject"`
	Jobs    []domain.JobView `json:"jobs"`
	SentAt  time.Time        `json:"sentAt"`
}

// NewQueue dials the broker and declares the exchange, queue and binding
func NewQueue(cfg QueueConfig, logger *logging.Logger) (*Queue, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, "direct", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(cfg.QueueName, true, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	logger = logger.Component("queue")
	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
		"routing_key", cfg.RoutingKey,
	)

	return &Queue{
		conn:       conn,
		channel:    ch,
		closer:     ch.Close,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		clock:      time.Now,
		logger:     logger,
	}, nil
}

// Send publishes the digest as a persistent message
func (q *Queue) Send(ctx context.Context, d domain.Digest) error {
	msg := DigestMessage{
		Contact: d.Contact,
		Subject: d.Subject,
		Jobs:    d.Jobs,
		SentAt:  q.clock().UTC(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal digest: %w", err)
	}

	err = q.channel.PublishWithContext(
		ctx,
		q.exchange,
		q.routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    msg.SentAt,
		},
	)
	if err != nil {
		return fmt.Errorf("publish digest: %w", err)
	}

	q.logger.Debug("published digest", "contact", d.Contact, "jobs", len(d.Jobs))
	return nil
}

// Shutdown closes the channel and connection
func (q *Queue) Shutdown(context.Context) error {
	if q.closer != nil {
		_ = q.closer()
	}
	if q.conn != nil {
		return q.conn.Close()
	}
	return nil
}
