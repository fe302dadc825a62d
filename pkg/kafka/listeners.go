package kafka

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	json "github.com/goccy/go-json"
)

// Handler processes one message's raw payload.
type Handler func(ctx context.Context, value []byte) error

// Listeners maps topics to handlers. Register everything before handing the
// registry to a Consumer; registration is not safe during consumption.
type Listeners struct {
	handlers map[string]Handler
}

// NewListeners creates an empty registry.
func NewListeners() *Listeners {
	return &Listeners{handlers: make(map[string]Handler)}
}

// Add registers a handler for a topic, replacing any previous one.
func (l *Listeners) Add(topic string, h Handler) {
	l.handlers[topic] = h
}

// AddJSON registers a handler that receives the payload decoded into T.
func AddJSON[T any](l *Listeners, topic string, h func(ctx context.Context, payload T) error) {
	l.Add(topic, func(ctx context.Context, value []byte) error {
		var payload T
		if err := json.Unmarshal(value, &payload); err != nil {
			return fmt.Errorf("kafka: decode message on %s: %w", topic, err)
		}
		return h(ctx, payload)
	})
}

// Topics returns the registered topics.
func (l *Listeners) Topics() []string {
	topics := make([]string, 0, len(l.handlers))
	for topic := range l.handlers {
		topics = append(topics, topic)
	}
	return topics
}

// Dispatch routes a message to its topic's handler. The handling context
// carries the message's trace id header, or a fresh id when absent.
// Messages on topics without a handler are dropped silently.
func (l *Listeners) Dispatch(ctx context.Context, msg kafka.Message) error {
	h, ok := l.handlers[msg.Topic]
	if !ok {
		return nil
	}

	traceID := ""
	for _, header := range msg.Headers {
		if header.Key == TraceHeader {
			traceID = string(header.Value)
			break
		}
	}
	if traceID == "" {
		traceID = uuid.NewString()
	}

	return h(ContextWithTraceID(ctx, traceID), msg.Value)
}
