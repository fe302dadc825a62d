package kafka

import (
	"context"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/backendlab/httpkit/pkg/jsonenc"
)

// Producer publishes messages to Kafka. Payloads are serialized with the
// shared JSON encoder, so log records and wire messages agree on shape.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer creates a Producer for the configured brokers.
func NewProducer(cfg Config) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: cfg.BatchTimeout,
		},
	}
}

// Send serializes the payload and publishes it to the topic. The key may be
// empty; messages with the same key land on the same partition. Each message
// carries a trace id header, adopted from the context when present and
// generated otherwise.
func (p *Producer) Send(ctx context.Context, topic, key string, payload any) error {
	msg, err := buildMessage(ctx, topic, key, payload)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

// SendRaw publishes pre-serialized bytes without touching them.
func (p *Producer) SendRaw(ctx context.Context, topic, key string, value []byte) error {
	msg := kafka.Message{
		Topic:   topic,
		Value:   value,
		Headers: []kafka.Header{traceHeader(ctx)},
	}
	if key != "" {
		msg.Key = []byte(key)
	}
	return p.writer.WriteMessages(ctx, msg)
}

// Close flushes pending messages and releases the writer.
// Use with httpkit.WithShutdownHook via Shutdown.
func (p *Producer) Close() error {
	return p.writer.Close()
}

// Shutdown returns a shutdown hook that closes the producer.
func (p *Producer) Shutdown() func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return p.Close()
	}
}

func buildMessage(ctx context.Context, topic, key string, payload any) (kafka.Message, error) {
	serialized, err := jsonenc.Serialize(payload)
	if err != nil {
		return kafka.Message{}, err
	}

	msg := kafka.Message{
		Topic:   topic,
		Value:   []byte(serialized),
		Headers: []kafka.Header{traceHeader(ctx)},
	}
	if key != "" {
		msg.Key = []byte(key)
	}
	return msg, nil
}

func traceHeader(ctx context.Context) kafka.Header {
	traceID := TraceIDFromContext(ctx)
	if traceID == "" {
		traceID = uuid.NewString()
	}
	return kafka.Header{Key: TraceHeader, Value: []byte(traceID)}
}
