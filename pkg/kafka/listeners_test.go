package kafka

import (
	"context"
	"testing"

	segmentio "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenersDispatch(t *testing.T) {
	t.Parallel()

	t.Run("routes by topic", func(t *testing.T) {
		t.Parallel()

		l := NewListeners()
		var got []byte
		l.Add("orders", func(ctx context.Context, value []byte) error {
			got = value
			return nil
		})

		err := l.Dispatch(context.Background(), segmentio.Message{
			Topic: "orders",
			Value: []byte(`{"id":1}`),
		})
		require.NoError(t, err)
		assert.Equal(t, `{"id":1}`, string(got))
	})

	t.Run("unknown topic dropped silently", func(t *testing.T) {
		t.Parallel()

		l := NewListeners()
		err := l.Dispatch(context.Background(), segmentio.Message{Topic: "unknown"})
		assert.NoError(t, err)
	})

	t.Run("adopts trace header", func(t *testing.T) {
		t.Parallel()

		l := NewListeners()
		var seen string
		l.Add("orders", func(ctx context.Context, value []byte) error {
			seen = TraceIDFromContext(ctx)
			return nil
		})

		err := l.Dispatch(context.Background(), segmentio.Message{
			Topic:   "orders",
			Headers: []segmentio.Header{{Key: TraceHeader, Value: []byte("trace-9")}},
		})
		require.NoError(t, err)
		assert.Equal(t, "trace-9", seen)
	})

	t.Run("generates trace id when header absent", func(t *testing.T) {
		t.Parallel()

		l := NewListeners()
		var seen string
		l.Add("orders", func(ctx context.Context, value []byte) error {
			seen = TraceIDFromContext(ctx)
			return nil
		})

		require.NoError(t, l.Dispatch(context.Background(), segmentio.Message{Topic: "orders"}))
		assert.NotEmpty(t, seen)
	})
}

func TestAddJSON(t *testing.T) {
	t.Parallel()

	type userCreated struct {
		UserID string `json:"user_id"`
	}

	t.Run("decodes payload", func(t *testing.T) {
		t.Parallel()

		l := NewListeners()
		var got userCreated
		AddJSON(l, "user.created", func(ctx context.Context, evt userCreated) error {
			got = evt
			return nil
		})

		err := l.Dispatch(context.Background(), segmentio.Message{
			Topic: "user.created",
			Value: []byte(`{"user_id":"u-1"}`),
		})
		require.NoError(t, err)
		assert.Equal(t, "u-1", got.UserID)
	})

	t.Run("malformed payload is an error", func(t *testing.T) {
		t.Parallel()

		l := NewListeners()
		AddJSON(l, "user.created", func(ctx context.Context, evt userCreated) error {
			t.Fatal("handler must not run")
			return nil
		})

		err := l.Dispatch(context.Background(), segmentio.Message{
			Topic: "user.created",
			Value: []byte(`{broken`),
		})
		assert.Error(t, err)
	})
}

func TestTopics(t *testing.T) {
	t.Parallel()

	l := NewListeners()
	l.Add("a", func(context.Context, []byte) error { return nil })
	l.Add("b", func(context.Context, []byte) error { return nil })

	assert.ElementsMatch(t, []string{"a", "b"}, l.Topics())
}

func TestBuildMessage(t *testing.T) {
	t.Parallel()

	t.Run("serializes with sorted keys", func(t *testing.T) {
		t.Parallel()

		msg, err := buildMessage(context.Background(), "orders", "k-1", map[string]any{"b": 2, "a": 1})
		require.NoError(t, err)

		assert.Equal(t, "orders", msg.Topic)
		assert.Equal(t, []byte("k-1"), msg.Key)
		assert.Equal(t, `{"a":1,"b":2}`, string(msg.Value))
	})

	t.Run("adopts context trace id", func(t *testing.T) {
		t.Parallel()

		ctx := ContextWithTraceID(context.Background(), "trace-5")
		msg, err := buildMessage(ctx, "orders", "", nil)
		require.NoError(t, err)

		require.Len(t, msg.Headers, 1)
		assert.Equal(t, TraceHeader, msg.Headers[0].Key)
		assert.Equal(t, "trace-5", string(msg.Headers[0].Value))
		assert.Nil(t, msg.Key)
	})

	t.Run("generates trace id otherwise", func(t *testing.T) {
		t.Parallel()

		msg, err := buildMessage(context.Background(), "orders", "", "payload")
		require.NoError(t, err)

		require.Len(t, msg.Headers, 1)
		assert.NotEmpty(t, msg.Headers[0].Value)
	})
}
