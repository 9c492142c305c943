// Package messaging publishes quote audit events to Kafka.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cargo_underwriting/internal/domain/entities"
	"cargo_underwriting/internal/usecase/interfaces"

	"github.com/segmentio/kafka-go"
)

const (
	DefaultAuditTopic = "quote-audit-events"
	eventTypeHeader   = "event-type"
)

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

var _ MessageWriter = (*kafka.Writer)(nil)

type auditEvent struct {
	ID        string                `json:"id"`
	QuoteID   string                `json:"quote_id"`
	Action    entities.AuditAction  `json:"action"`
	Details   entities.AuditDetails `json:"details"`
	Timestamp time.Time             `json:"timestamp"`
}

// KafkaAuditPublisher streams every audit entry to a topic keyed by quote id,
// so a consumer sees each quote's transitions in order.
type KafkaAuditPublisher struct {
	writer MessageWriter
}

var _ interfaces.IAuditLogSink = (*KafkaAuditPublisher)(nil)

func NewKafkaAuditPublisher(w MessageWriter) *KafkaAuditPublisher {
	return &KafkaAuditPublisher{writer: w}
}

// NewKafkaWriter builds the writer used in production. Hash balancing keeps
// all events of a quote on one partition.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	if topic == "" {
		topic = DefaultAuditTopic
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
}

func (p *KafkaAuditPublisher) Append(ctx context.Context, e entities.AuditLogEntry) error {
	body, err := json.Marshal(auditEvent{
		ID:        e.ID,
		QuoteID:   e.QuoteID,
		Action:    e.Action,
		Details:   e.Details,
		Timestamp: e.Timestamp,
	})
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.QuoteID),
		Value: body,
		Time:  e.Timestamp,
		Headers: []kafka.Header{
			{Key: eventTypeHeader, Value: []byte("quote." + string(e.Action))},
		},
	})
}

// FanOutAuditSink appends to every sink and reports all failures together.
// A failing sink does not stop the others.
type FanOutAuditSink struct {
	sinks []interfaces.IAuditLogSink
}

var _ interfaces.IAuditLogSink = (*FanOutAuditSink)(nil)

func NewFanOutAuditSink(sinks ...interfaces.IAuditLogSink) *FanOutAuditSink {
	out := make([]interfaces.IAuditLogSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return &FanOutAuditSink{sinks: out}
}

func (f *FanOutAuditSink) Append(ctx context.Context, e entities.AuditLogEntry) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Append(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
