package publisher

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=../mocks/publisher_mock.go -package=mocks

import (
	"context"
	"fmt"

	"leonine/config"
	"leonine/infras/kafka"
	"leonine/infras/otel"
	"leonine/internal/domains/notification/model"
	"leonine/shared/constant"

	"github.com/rs/zerolog/log"
)

type Publisher interface {
	Publish(ctx context.Context, event model.Event) error
}

type publisherImpl struct {
	kafka kafka.Client
	cfg   *config.Config
	otel  otel.Otel
}

func New(kafka kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		kafka: kafka,
		cfg:   cfg,
		otel:  otel,
	}
}

func (p *publisherImpl) Publish(ctx context.Context, event model.Event) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttribute("event.type", event.Type)

	err = p.kafka.SendMessages(ctx, p.cfg.Kafka.NotificationTopic, kafka.Message{
		Key:   event.Email,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("type", event.Type).Msg("failed to publish notification")

		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}
