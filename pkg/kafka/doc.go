// Package kafka provides thin producer and consumer wrappers over
// segmentio/kafka-go. The producer serializes payloads with the shared JSON
// encoder and stamps a trace id header on every message; the consumer runs
// one reader per registered topic and dispatches messages to listeners.
//
//	listeners := kafka.NewListeners()
//	kafka.AddJSON(listeners, "user.created", func(ctx context.Context, evt UserCreated) error {
//	    return onUserCreated(ctx, evt)
//	})
//
//	consumer := kafka.NewConsumer(cfg, listeners, log)
//	err := consumer.Run(ctx)
package kafka
