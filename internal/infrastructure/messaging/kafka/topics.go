// Package kafka carries the analysis lifecycle events between the API server
// and the background workers.
package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

const (
	// TopicAnalysisRequested triggers a worker to run the pipeline for a
	// session. Keyed by session ID so retries land on the same partition.
	TopicAnalysisRequested = "analysis.requested"

	// TopicAnalysisCompleted announces a finished run.
	TopicAnalysisCompleted = "analysis.completed"
)

// EventEnvelope is the wire format shared by all topics.
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	SchemaVersion string          `json:"schema_version"`
	Payload       json.RawMessage `json:"payload"`
}

// AnalysisRequestedPayload asks a worker to analyze a session's documents.
type AnalysisRequestedPayload struct {
	SessionID common.ID `json:"session_id"`
}

// AnalysisCompletedPayload summarizes a finished run. The full result stays
// in the database; consumers interested in more than the headline re-read it.
type AnalysisCompletedPayload struct {
	SessionID   common.ID  `json:"session_id"`
	AnalysisID  common.ID  `json:"analysis_id"`
	Status      string     `json:"status"`
	RiskScore   *float64   `json:"risk_score,omitempty"`
	RiskLevel   string     `json:"risk_level,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewEventEnvelope wraps a payload in a fresh envelope.
func NewEventEnvelope(eventType, source string, payload interface{}) (*EventEnvelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSerialization, "encode event payload")
	}
	return &EventEnvelope{
		EventID:       uuid.New().String(),
		EventType:     eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		SchemaVersion: "v1",
		Payload:       data,
	}, nil
}

// DecodePayload unmarshals the envelope payload into target.
func (e *EventEnvelope) DecodePayload(target interface{}) error {
	if len(e.Payload) == 0 || string(e.Payload) == "null" {
		return errors.New(errors.CodeValidation, "event payload is empty")
	}
	if err := json.Unmarshal(e.Payload, target); err != nil {
		return errors.Wrap(err, errors.CodeSerialization, "decode event payload")
	}
	return nil
}

// DecodeEnvelope parses a raw message value into an envelope.
func DecodeEnvelope(value []byte) (*EventEnvelope, error) {
	if len(value) == 0 {
		return nil, errors.New(errors.CodeValidation, "empty message value")
	}
	var env EventEnvelope
	if err := json.Unmarshal(value, &env); err != nil {
		return nil, errors.Wrap(err, errors.CodeSerialization, "decode event envelope")
	}
	return &env, nil
}
