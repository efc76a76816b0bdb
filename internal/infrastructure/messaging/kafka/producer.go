package kafka

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/config"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/analysis"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// ErrProducerClosed is returned when publishing after Close.
var ErrProducerClosed = errors.New(errors.CodeInternal, "kafka producer is closed")

// writerAPI is the slice of kafka.Writer the producer uses, narrowed for
// testing.
type writerAPI interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes lifecycle events. It implements the orchestrator's
// EventPublisher contract and the API server's request trigger.
type Producer struct {
	writer writerAPI
	source string
	logger logging.Logger
	closed atomic.Bool
}

// NewProducer builds a Producer on the configured brokers. Messages are keyed
// by session ID so per-session ordering holds across partitions.
func NewProducer(cfg config.KafkaConfig, source string, log logging.Logger) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New(errors.CodeValidation, "kafka brokers required")
	}

	batchTimeout := cfg.BatchTimeout
	if batchTimeout == 0 {
		batchTimeout = time.Second
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		MaxAttempts:  cfg.ProducerRetries + 1,
		BatchTimeout: batchTimeout,
		RequiredAcks: kafka.RequireAll,
	}

	return &Producer{
		writer: writer,
		source: source,
		logger: log.Named("kafka_producer"),
	}, nil
}

// PublishAnalysisRequested asks a worker to run the pipeline for a session.
func (p *Producer) PublishAnalysisRequested(ctx context.Context, sessionID common.ID) error {
	env, err := NewEventEnvelope(TopicAnalysisRequested, p.source, AnalysisRequestedPayload{
		SessionID: sessionID,
	})
	if err != nil {
		return err
	}
	return p.publish(ctx, TopicAnalysisRequested, []byte(sessionID), env)
}

// PublishAnalysisCompleted announces a finished run.
func (p *Producer) PublishAnalysisCompleted(ctx context.Context, result *analysis.Result) error {
	payload := AnalysisCompletedPayload{
		SessionID:   result.SessionID,
		AnalysisID:  result.ID,
		Status:      string(result.Status),
		CompletedAt: result.CompletedAt,
	}
	if result.RiskScore != nil {
		score := result.RiskScore.OverallScore
		payload.RiskScore = &score
		payload.RiskLevel = string(result.RiskScore.Level())
	}

	env, err := NewEventEnvelope(TopicAnalysisCompleted, p.source, payload)
	if err != nil {
		return err
	}
	return p.publish(ctx, TopicAnalysisCompleted, []byte(result.SessionID), env)
}

func (p *Producer) publish(ctx context.Context, topic string, key []byte, env *EventEnvelope) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}

	value, err := json.Marshal(env)
	if err != nil {
		return errors.Wrap(err, errors.CodeSerialization, "encode event envelope")
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
		Time:  env.Timestamp,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(env.EventType)},
			{Key: "source_service", Value: []byte(env.Source)},
			{Key: "schema_version", Value: []byte(env.SchemaVersion)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrapf(err, errors.CodeExternalService, "publish to %s", topic)
	}

	p.logger.Debug("event published",
		logging.String("topic", topic),
		logging.String("event_id", env.EventID))
	return nil
}

// Close flushes and closes the underlying writer. Idempotent.
func (p *Producer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	return p.writer.Close()
}
