package event

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revolck-lab/api-advancemais-sub001/pkg/kafka"
)

type capturingProducer struct {
	topic string
	event *kafka.Event
	err   error
}

func (c *capturingProducer) Publish(_ context.Context, topic string, event *kafka.Event) error {
	c.topic = topic
	c.event = event
	return c.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestPublisher_UserRegistered(t *testing.T) {
	prod := &capturingProducer{}
	pub := NewPublisher(prod, discardLogger())

	pub.UserRegistered(context.Background(), UserRegistered{
		UserID: "u-1", Email: "ana@example.com", Name: "Ana", RoleName: "Aluno",
	})

	require.NotNil(t, prod.event)
	assert.Equal(t, TopicUserRegistered, prod.topic)
	assert.Equal(t, TypeUserRegistered, prod.event.EventType)
	assert.Equal(t, "u-1", prod.event.AggregateID)

	var payload UserRegistered
	require.NoError(t, prod.event.UnmarshalData(&payload))
	assert.Equal(t, "ana@example.com", payload.Email)
}

func TestPublisher_SubscriptionChanged(t *testing.T) {
	prod := &capturingProducer{}
	pub := NewPublisher(prod, discardLogger())

	pub.SubscriptionChanged(context.Background(), SubscriptionChanged{
		CompanyID: "c-1", PlanID: 2, DisabledJobs: 3,
	})

	require.NotNil(t, prod.event)
	assert.Equal(t, TopicSubscriptionChanged, prod.topic)
	assert.Equal(t, "c-1", prod.event.AggregateID)
}

func TestPublisher_BrokerFailureIsSwallowed(t *testing.T) {
	prod := &capturingProducer{err: errors.New("broker down")}
	pub := NewPublisher(prod, discardLogger())

	assert.NotPanics(t, func() {
		pub.CompanyRegistered(context.Background(), CompanyRegistered{CompanyID: "c-1"})
	})
}

func TestPublisher_NilProducerIsNoop(t *testing.T) {
	pub := NewPublisher(nil, discardLogger())

	assert.NotPanics(t, func() {
		pub.UserRegistered(context.Background(), UserRegistered{UserID: "u-1"})
	})
}
