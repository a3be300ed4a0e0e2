package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"leonine/config"
	"leonine/infras/otel"
	"leonine/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	otelAttrTopic = "kafka.topic"
	otelAttrKey   = "kafka.key"

	writeTimeout = 10 * time.Second
)

type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	jsonValue, err := json.Marshal(m.Value)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal message value to JSON")

		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	return kafkaGo.Message{
		Key:   []byte(m.Key),
		Value: jsonValue,
	}, nil
}

// DecodeKafkaMessage unmarshals the JSON value of msg into T.
func DecodeKafkaMessage[T any](msg kafkaGo.Message) (T, error) {
	var value T

	if err := json.Unmarshal(msg.Value, &value); err != nil {
		log.Error().Err(err).Str("key", string(msg.Key)).Msg("Failed to unmarshal Kafka message value from JSON")

		return value, fmt.Errorf("failed to unmarshal Kafka message value from JSON: %w", err)
	}

	return value, nil
}

// Handler processes one message. Returning an error only logs it; the offset is
// committed either way so a poison message cannot stall the partition.
type Handler func(ctx context.Context, message kafkaGo.Message) error

type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
	Consume(ctx context.Context, consumerGroup, topic string, handler Handler) error
}

type kafkaClientImpl struct {
	config    *config.Config
	otel      otel.Otel
	dialer    *kafkaGo.Dialer
	transport *kafkaGo.Transport
	address   net.Addr
}

func New(config *config.Config, otel otel.Otel) Client {
	var (
		dialer    = &kafkaGo.Dialer{DualStack: true, Timeout: writeTimeout}
		transport = &kafkaGo.Transport{}
	)

	if config.Kafka.SASL.Username != constant.Empty {
		mechanism := plain.Mechanism{
			Username: config.Kafka.SASL.Username,
			Password: config.Kafka.SASL.Password,
		}

		dialer.SASLMechanism = mechanism
		transport.SASL = mechanism
	}

	log.Info().Strs("brokers", config.Kafka.Brokers).Msg("Kafka client initialized")

	return &kafkaClientImpl{
		config:    config,
		otel:      otel,
		dialer:    dialer,
		transport: transport,
		address:   kafkaGo.TCP(config.Kafka.Brokers...),
	}
}

func (k *kafkaClientImpl) reader(consumerGroup, topic string) *kafkaGo.Reader {
	groupID := k.config.Kafka.ConsumerGroup
	if consumerGroup != constant.Empty {
		groupID = consumerGroup
	}

	return kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:           k.config.Kafka.Brokers,
		Topic:             topic,
		GroupID:           groupID,
		Dialer:            k.dialer,
		StartOffset:       kafkaGo.FirstOffset,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	})
}

func (k *kafkaClientImpl) SendMessages(ctx context.Context, topic string, messages ...Message) (err error) {
	ctx, scope := k.otel.NewScope(ctx, constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".SendMessages")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute(otelAttrTopic, topic)

	writer := &kafkaGo.Writer{
		Addr:                   k.address,
		Topic:                  topic,
		Transport:              k.transport,
		Balancer:               &kafkaGo.Hash{},
		AllowAutoTopicCreation: true,
		WriteTimeout:           writeTimeout,
	}
	defer writer.Close()

	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage()
		if err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to convert message to Kafka message.")

			return fmt.Errorf("failed to convert message to Kafka message: %w", err)
		}

		msgs = append(msgs, msg)
	}

	if err = writer.WriteMessages(ctx, msgs...); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to send message to Kafka.")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	log.Info().Str("topic", topic).Int("count", len(msgs)).Msg("Sent message successfully.")

	return nil
}

// Consume reads topic with the consumer group until ctx is cancelled. Messages
// are handled one at a time in partition order.
func (k *kafkaClientImpl) Consume(ctx context.Context, consumerGroup, topic string, handler Handler) error {
	if topic == constant.Empty {
		return errors.New("topic name cannot be empty when creating Kafka reader")
	}

	reader := k.reader(consumerGroup, topic)
	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka reader.")
		}
	}()

	log.Info().Str("topic", topic).Str("group", reader.Config().GroupID).Msg("Consumer started.")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Msg("Consumer context done.")

				return nil
			}

			log.Error().Err(err).Str("topic", topic).Msg("Failed to read message from Kafka.")

			return fmt.Errorf("failed to read message from Kafka: %w", err)
		}

		k.handle(ctx, msg, handler)

		if err := reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Str("topic", topic).Int64("offset", msg.Offset).Msg("Failed to commit Kafka message.")
		}
	}
}

func (k *kafkaClientImpl) handle(ctx context.Context, msg kafkaGo.Message, handler Handler) {
	ctx, scope := k.otel.NewScope(ctx, constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".handle")
	defer scope.End()

	scope.SetAttributes(map[string]any{
		otelAttrTopic: msg.Topic,
		otelAttrKey:   string(msg.Key),
	})

	log.Info().Str("topic", msg.Topic).Str("key", string(msg.Key)).Msg("Received message from Kafka.")

	if err := handler(ctx, msg); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("topic", msg.Topic).Int64("offset", msg.Offset).Msg("Failed to handle Kafka message.")
	}
}
