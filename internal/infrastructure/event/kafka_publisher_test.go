package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockProducer) Close() error {
	return m.Called().Error(0)
}

func TestKafkaPublisher_Handle(t *testing.T) {
	producer := new(MockProducer)
	publisher := NewKafkaPublisher(producer, zap.NewNop())
	ev := newTestEvent("OrderPlaced")

	var written []kafka.Message
	producer.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]kafka.Message) }).
		Return(nil)

	require.NoError(t, publisher.Handle(context.Background(), ev))
	require.Len(t, written, 1)

	msg := written[0]
	assert.Equal(t, ev.AggregateID().String(), string(msg.Key))
	assert.Equal(t, "event-type", msg.Headers[0].Key)
	assert.Equal(t, "OrderPlaced", string(msg.Headers[0].Value))

	var env envelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, "OrderPlaced", env.EventType)
	assert.Equal(t, "Order", env.AggregateType)
	assert.Equal(t, ev.EventID().String(), env.EventID)
	assert.Contains(t, string(env.Payload), `"note":"hi"`)
	assert.Nil(t, publisher.EventTypes())
	producer.AssertExpectations(t)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	producer := new(MockProducer)
	producer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker down"))
	producer.On("Close").Return(nil)
	publisher := NewKafkaPublisher(producer, zap.NewNop())

	err := publisher.Handle(context.Background(), newTestEvent("SaleRecorded"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.NoError(t, publisher.Close())
}
