package kafka_test

import (
	"testing"

	"leonine/infras/kafka"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	Type  string `json:"type"`
	Email string `json:"email"`
}

func TestMessageRoundTrip(t *testing.T) {
	msg := kafka.Message{Key: "guest@leonine.test", Value: event{Type: "booking.admitted", Email: "guest@leonine.test"}}

	encoded, err := msg.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("guest@leonine.test"), encoded.Key)
	assert.JSONEq(t, `{"type":"booking.admitted","email":"guest@leonine.test"}`, string(encoded.Value))

	decoded, err := kafka.DecodeKafkaMessage[event](encoded)
	require.NoError(t, err)
	assert.Equal(t, "booking.admitted", decoded.Type)
}

func TestDecodeInvalidPayload(t *testing.T) {
	_, err := kafka.DecodeKafkaMessage[event](kafkaGo.Message{Value: []byte("{")})
	assert.Error(t, err)
}

func TestUnmarshalableValue(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}
