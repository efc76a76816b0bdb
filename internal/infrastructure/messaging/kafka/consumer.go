package kafka

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/config"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
)

// ErrConsumerRunning is returned when Run is called twice.
var ErrConsumerRunning = errors.New(errors.CodeConflict, "kafka consumer already running")

// Handler processes one decoded event. A non-nil error marks the message as
// failed; the offset is committed either way because pipeline failures are
// recorded in the analysis row, not replayed through the broker.
type Handler func(ctx context.Context, env *EventEnvelope) error

// readerAPI is the slice of kafka.Reader the consumer uses, narrowed for
// testing.
type readerAPI interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads one topic as part of a consumer group and dispatches each
// message to a Handler.
type Consumer struct {
	reader  readerAPI
	handler Handler
	logger  logging.Logger
	running atomic.Bool
}

// NewConsumer builds a group consumer for the given topic.
func NewConsumer(cfg config.KafkaConfig, topic string, handler Handler, log logging.Logger) (*Consumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New(errors.CodeValidation, "kafka brokers required")
	}
	if handler == nil {
		return nil, errors.New(errors.CodeValidation, "handler required")
	}

	startOffset := kafka.FirstOffset
	if cfg.AutoOffsetReset == "latest" {
		startOffset = kafka.LastOffset
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       topic,
		StartOffset: startOffset,
		MinBytes:    1,
		MaxBytes:    10 * 1024 * 1024,
	})

	return &Consumer{
		reader:  reader,
		handler: handler,
		logger:  log.Named("kafka_consumer").With(logging.String("topic", topic)),
	}, nil
}

// Run consumes until ctx is cancelled. It returns nil on cancellation and an
// error only when the consumer was already running.
func (c *Consumer) Run(ctx context.Context) error {
	if c.running.Swap(true) {
		return ErrConsumerRunning
	}
	defer c.running.Store(false)

	c.logger.Info("consumer started")
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("consumer stopped")
				return nil
			}
			c.logger.Error("fetch message failed", logging.Err(err))
			time.Sleep(time.Second)
			continue
		}

		c.dispatch(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			c.logger.Error("commit failed", logging.Err(err))
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, msg kafka.Message) {
	env, err := DecodeEnvelope(msg.Value)
	if err != nil {
		c.logger.Warn("dropping undecodable message",
			logging.Int64("offset", msg.Offset), logging.Err(err))
		return
	}

	if err := c.handler(ctx, env); err != nil {
		c.logger.Error("event handler failed",
			logging.String("event_id", env.EventID),
			logging.String("event_type", env.EventType),
			logging.Err(err))
	}
}

// Close closes the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
