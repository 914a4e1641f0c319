package mq

import (
	"context"
	"testing"

	"cloud.google.com/go/pubsub"
	"github.com/healthassist/healthassist/config"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loopback struct {
	handlers map[string][]Handler
	closed   bool
}

func (l *loopback) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	for _, h := range l.handlers[channel] {
		if err := h(ctx, Message{ID: "1", Data: data, Attributes: attrs}); err != nil {
			return "", err
		}
	}
	return "1", nil
}

func (l *loopback) Subscribe(ctx context.Context, channel string, handler Handler) error {
	if l.handlers == nil {
		l.handlers = map[string][]Handler{}
	}
	l.handlers[channel] = append(l.handlers[channel], handler)
	return nil
}

func (l *loopback) Close() error {
	l.closed = true
	return nil
}

func TestMQDelegatesToBackend(t *testing.T) {
	backend := &loopback{}
	broker := New(backend)

	var got []Message
	require.NoError(t, broker.Subscribe(context.Background(), "health.derived", func(ctx context.Context, msg Message) error {
		got = append(got, msg)
		return nil
	}))

	id, err := broker.Publish(context.Background(), "health.derived", []byte(`{"name":"john"}`), map[string]string{"name": "john"})
	require.NoError(t, err)
	assert.Equal(t, "1", id)

	require.Len(t, got, 1)
	assert.Equal(t, `{"name":"john"}`, string(got[0].Data))
	assert.Equal(t, "john", got[0].Attributes["name"])

	require.NoError(t, broker.Close())
	assert.True(t, backend.closed)
}

func TestOpenRequiresBackend(t *testing.T) {
	_, err := Open(context.Background(), config.MQConfig{})
	assert.ErrorIs(t, err, ErrNoBackend)

	_, err = Open(context.Background(), config.MQConfig{Backend: "kafka"})
	assert.Error(t, err)
}

func TestOpenValidatesBackendConfig(t *testing.T) {
	_, err := Open(context.Background(), config.MQConfig{Backend: "rabbitmq"})
	assert.ErrorContains(t, err, "rabbitmq url is required")

	_, err = Open(context.Background(), config.MQConfig{Backend: "pubsub"})
	assert.ErrorContains(t, err, "pubsub project id is required")
}

func TestPubSubOutgoingMessageOrdersByName(t *testing.T) {
	attrs := map[string]string{"name": "jane", "content_type": "application/json"}
	msg := outgoingMessage([]byte(`{"name":"jane"}`), attrs)

	assert.Equal(t, "jane", msg.OrderingKey)
	assert.Equal(t, "application/json", msg.Attributes["content_type"])
	assert.Equal(t, "jane", msg.Attributes["name"])
	assert.Equal(t, `{"name":"jane"}`, string(msg.Data))

	msg.Attributes["extra"] = "x"
	assert.NotContains(t, attrs, "extra")
}

func TestPubSubOutgoingMessageDefaults(t *testing.T) {
	msg := outgoingMessage([]byte("raw"), nil)

	assert.Empty(t, msg.OrderingKey)
	assert.Equal(t, map[string]string{"content_type": "application/octet-stream"}, msg.Attributes)
}

func TestPubSubIncomingMessage(t *testing.T) {
	got := incomingMessage(&pubsub.Message{
		ID:          "42",
		Data:        []byte("{}"),
		OrderingKey: "john",
	})

	assert.Equal(t, "42", got.ID)
	assert.Equal(t, "john", got.Attributes["name"])
	assert.Equal(t, "application/octet-stream", got.Attributes["content_type"])
}

func TestRabbitMQSplitAttributes(t *testing.T) {
	contentType, headers := splitAttributes(map[string]string{"name": "jane", "content_type": "application/json"})
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, amqp.Table{"name": "jane"}, headers)

	contentType, headers = splitAttributes(nil)
	assert.Equal(t, "application/octet-stream", contentType)
	assert.Empty(t, headers)

	assert.Equal(t, map[string]string{"name": "jane", "retries": "2"},
		headersToAttributes(amqp.Table{"name": []byte("jane"), "retries": int32(2)}))
}
