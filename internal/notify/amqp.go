package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"medidispatch/internal/config"
	"medidispatch/internal/domain"
)

const (
	amqpMaxRetries    = 5
	amqpRetryInterval = 3 * time.Second
)

// AMQPPublisher publishes notification jobs on a topic exchange with
// routing key "dispatch.notify.<category>", so responder apps can bind
// per category.
type AMQPPublisher struct {
	logger  *slog.Logger
	cfg     config.AMQPConfig
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex // serializes publishes on the shared channel
}

func NewAMQPPublisher(logger *slog.Logger, cfg config.AMQPConfig) (*AMQPPublisher, error) {
	p := &AMQPPublisher{logger: logger, cfg: cfg}

	var err error
	for attempt := 1; attempt <= amqpMaxRetries; attempt++ {
		if err = p.connect(); err == nil {
			logger.Info("Connected to AMQP broker", slog.String("exchange", cfg.Exchange))
			return p, nil
		}
		logger.Warn("AMQP connect failed",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)
		time.Sleep(amqpRetryInterval)
	}
	return nil, fmt.Errorf("amqp connect after %d attempts: %w", amqpMaxRetries, err)
}

func (p *AMQPPublisher) connect() error {
	conn, err := amqp.Dial(p.cfg.URL)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare exchange %s: %w", p.cfg.Exchange, err)
	}
	p.conn = conn
	p.channel = ch
	return nil
}

func (p *AMQPPublisher) Send(ctx context.Context, job domain.NotificationJob) error {
	body, err := json.Marshal(job)
	if err != nil {
		return err
	}

	routingKey := "dispatch.notify." + string(job.Category)

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx,
		p.cfg.Exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.logger.Error("amqp publish failed",
			slog.String("routing_key", routingKey),
			slog.String("candidate_id", job.CandidateID.String()),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
