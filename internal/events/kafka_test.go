package events

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_EncodesEvent(t *testing.T) {
	t.Parallel()

	ev := New(InstrumentalCreated, map[string]any{"id": 7})
	msg, err := message("catalog_events", "7", ev)
	require.NoError(t, err)

	assert.Equal(t, "catalog_events", msg.Topic)
	assert.Equal(t, []byte("7"), msg.Key)

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, InstrumentalCreated, got["type"])
	assert.EqualValues(t, 7, got["payload"].(map[string]any)["id"])
	assert.NotEmpty(t, got["occurredAt"])
}

func TestMessage_Unencodable(t *testing.T) {
	t.Parallel()

	_, err := message("t", "k", make(chan int))
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	t.Parallel()

	var p Publisher = Noop{}
	assert.NoError(t, p.Publish(context.Background(), "t", "k", New(UserRegistered, nil)))
	assert.NoError(t, p.Close())
}

func TestKafkaPublisher_Integration(t *testing.T) {
	brokers := os.Getenv("KAFKA_TEST_BROKERS")
	if brokers == "" {
		t.Skip("KAFKA_TEST_BROKERS is not set")
	}
	addrs := strings.Split(brokers, ",")
	topic := "epicbeats_test_" + time.Now().Format("20060102150405")

	p := NewKafkaPublisher(addrs)
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	// the first write can race the auto-created topic's leader election
	for i := 0; i < 5; i++ {
		if err = p.Publish(ctx, topic, "1", New(InstrumentalCreated, map[string]any{"id": 1})); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err)

	r := kafka.NewReader(kafka.ReaderConfig{Brokers: addrs, Topic: topic, MaxBytes: 10e6})
	defer r.Close()

	m, err := r.ReadMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", string(m.Key))
	assert.Contains(t, string(m.Value), InstrumentalCreated)
}
