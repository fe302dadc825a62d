package kafka

import (
	"context"
	"errors"
	"log/slog"

	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"
)

// Consumer runs one reader per registered topic and dispatches messages to
// the listener registry.
type Consumer struct {
	cfg       Config
	listeners *Listeners
	logger    *slog.Logger
}

// NewConsumer creates a Consumer. The logger may be nil.
func NewConsumer(cfg Config, listeners *Listeners, log *slog.Logger) *Consumer {
	if log == nil {
		log = slog.Default()
	}
	return &Consumer{cfg: cfg, listeners: listeners, logger: log}
}

// Run consumes all registered topics until the context is cancelled. Handler
// failures are logged and the message is committed anyway; redelivery is the
// producer's retry concern, not this loop's.
func (c *Consumer) Run(ctx context.Context) error {
	topics := c.listeners.Topics()
	if len(topics) == 0 {
		return errors.New("kafka: no topic listeners registered")
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, topic := range topics {
		g.Go(func() error {
			return c.consumeTopic(ctx, topic)
		})
	}
	return g.Wait()
}

func (c *Consumer) consumeTopic(ctx context.Context, topic string) error {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  c.cfg.Brokers,
		GroupID:  c.cfg.GroupID,
		Topic:    topic,
		MinBytes: c.cfg.MinBytes,
		MaxBytes: c.cfg.MaxBytes,
	})
	defer func() {
		if err := reader.Close(); err != nil {
			c.logger.Error("kafka reader close failed",
				slog.String("topic", topic),
				slog.String("error", err.Error()),
			)
		}
	}()

	c.logger.Info("kafka consumer started", slog.String("topic", topic))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		if err := c.listeners.Dispatch(ctx, msg); err != nil {
			c.logger.Error("kafka message handling failed",
				slog.String("topic", msg.Topic),
				slog.Int64("offset", msg.Offset),
				slog.String("error", err.Error()),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}
