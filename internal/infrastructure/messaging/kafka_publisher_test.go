package messaging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublisher_NoBrokers(t *testing.T) {
	p, closeFn := NewPublisher(nil, "booking.confirmed")
	_, ok := p.(NoopPublisher)
	assert.True(t, ok)
	require.NoError(t, p.Publish(context.Background(), "b-1", map[string]string{"a": "b"}))
	require.NoError(t, closeFn())
}

func TestNewPublisher_WithBrokers(t *testing.T) {
	p, closeFn := NewPublisher([]string{"localhost:9092"}, "booking.confirmed")
	kp, ok := p.(*KafkaPublisher)
	require.True(t, ok)
	assert.Equal(t, "booking.confirmed", kp.writer.Topic)
	require.NoError(t, closeFn())
}

func TestKafkaPublisher_MarshalError(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"}, "t")
	defer p.Close()

	err := p.Publish(context.Background(), "k", make(chan int))
	assert.ErrorContains(t, err, "marshal event")
}
