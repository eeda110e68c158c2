//go:build integration

package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/contract-validity/internal/lib/sl"
)

func setupRabbitMQ(t *testing.T) string {
	t.Helper()
	if uri := os.Getenv("TEST_RABBITMQ_URL"); uri != "" {
		t.Logf("Using external RabbitMQ service: %s", uri)
		return uri
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "rabbitmq:3-management",
		ExposedPorts: []string{"5672/tcp"},
		Env: map[string]string{
			"RABBITMQ_DEFAULT_USER": "guest",
			"RABBITMQ_DEFAULT_PASS": "guest",
		},
		WaitingFor: wait.ForListeningPort("5672/tcp").
			WithStartupTimeout(2 * time.Minute),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate rabbitmq container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5672/tcp")
	require.NoError(t, err)
	return fmt.Sprintf("amqp://guest:guest@%s:%s/", host, port.Port())
}

func openChannel(t *testing.T, uri string) *amqp.Channel {
	t.Helper()
	conn, err := Connect(uri, 5, time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ch, err := SetupChannel(conn, GetNotificationQueues())
	require.NoError(t, err)
	t.Cleanup(func() { _ = ch.Close() })
	return ch
}

func TestSetupChannel_DeclaresQueues(t *testing.T) {
	ch := openChannel(t, setupRabbitMQ(t))

	for _, q := range GetNotificationQueues() {
		queue, err := ch.QueueInspect(q.QueueName)
		require.NoError(t, err)
		assert.Equal(t, q.QueueName, queue.Name)
	}
}

func TestPublisher_RoutesToQueue(t *testing.T) {
	ch := openChannel(t, setupRabbitMQ(t))

	msg := map[string]any{"contract_id": float64(7)}
	require.NoError(t, NewPublisher(ch).Publish(context.Background(), ContractExpiringKey, msg))

	deliveries, err := ch.Consume(ContractExpiringQueue, "test-consumer", true, false, false, false, nil)
	require.NoError(t, err)

	select {
	case d := <-deliveries:
		var got map[string]any
		require.NoError(t, json.Unmarshal(d.Body, &got))
		assert.Equal(t, msg, got)
		assert.Equal(t, "application/json", d.ContentType)
	case <-time.After(10 * time.Second):
		t.Fatal("timeout waiting for message via exchange")
	}
}

func TestPublishMessage_MarshalError(t *testing.T) {
	ch := openChannel(t, setupRabbitMQ(t))

	err := PublishMessage(ch, NotificationsExchange, ContractExpiringKey, struct {
		Ch chan int `json:"ch"`
	}{Ch: make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rabbitmq.PublishMessage")
}

func TestConsumerMessage_AcksAndRequeues(t *testing.T) {
	ch := openChannel(t, setupRabbitMQ(t))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var (
		mu       sync.Mutex
		attempts = map[string]int{}
		done     = make(chan struct{})
		once     sync.Once
	)
	handler := func(body []byte) error {
		mu.Lock()
		defer mu.Unlock()
		attempts[string(body)]++
		if string(body) == `"retry"` && attempts[string(body)] == 1 {
			return errors.New("temporary failure")
		}
		if attempts[`"ok"`] >= 1 && attempts[`"retry"`] >= 2 {
			once.Do(func() { close(done) })
		}
		return nil
	}

	require.NoError(t, ConsumerMessage(ctx, ch, ContractExpiringQueue, sl.Discard(), handler))

	publisher := NewPublisher(ch)
	require.NoError(t, publisher.Publish(ctx, ContractExpiringKey, "ok"))
	require.NoError(t, publisher.Publish(ctx, ContractExpiringKey, "retry"))

	select {
	case <-done:
	case <-time.After(15 * time.Second):
		t.Fatal("Timeout waiting for messages to be processed")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, attempts[`"ok"`])
	assert.Equal(t, 2, attempts[`"retry"`])
}
