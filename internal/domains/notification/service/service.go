package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"leonine/config"
	"leonine/infras/kafka"
	"leonine/infras/mailer"
	"leonine/infras/otel"
	"leonine/infras/s3"
	"leonine/internal/domains/notification/model"
	"leonine/shared/constant"
	"leonine/shared/timezone"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const (
	receiptDirectory = "receipts"
	displayFormat    = "Mon, 02 Jan 2006 15:04 MST"

	templateBookingAdmitted = "booking_admitted.html"
	templateAccountOTP      = "account_otp.html"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Notification turns events from the notification topic into emails.
type Notification interface {
	Run(ctx context.Context) error
	Handle(ctx context.Context, message kafkaGo.Message) error
}

type serviceImpl struct {
	kafka  kafka.Client
	mailer mailer.Mailer
	s3     s3.S3
	cfg    *config.Config
	otel   otel.Otel
}

func New(kafka kafka.Client, mailer mailer.Mailer, s3 s3.S3, cfg *config.Config, otel otel.Otel) Notification {
	return &serviceImpl{
		kafka:  kafka,
		mailer: mailer,
		s3:     s3,
		cfg:    cfg,
		otel:   otel,
	}
}

// Run consumes the notification topic until ctx is done.
func (s *serviceImpl) Run(ctx context.Context) error {
	log.Info().
		Str("topic", s.cfg.Kafka.NotificationTopic).
		Str("group", s.cfg.Kafka.ConsumerGroup).
		Msg("notification worker started")

	if err := s.kafka.Consume(ctx, s.cfg.Kafka.ConsumerGroup, s.cfg.Kafka.NotificationTopic, s.Handle); err != nil {
		return fmt.Errorf("failed to consume notifications: %w", err)
	}

	return nil
}

// Handle delivers one event. Delivery failures are logged and dropped; only an
// undecodable or unrenderable event is returned as an error.
func (s *serviceImpl) Handle(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Handle")
	defer scope.End()
	defer scope.TraceIfError(&err)

	event, err := kafka.DecodeKafkaMessage[model.Event](message)
	if err != nil {
		log.Error().Err(err).Int64("offset", message.Offset).Msg("failed to decode notification event")

		return fmt.Errorf("failed to decode notification event: %w", err)
	}

	scope.SetAttributes(map[string]any{"event.type": event.Type})

	var mail mailer.Mail

	switch event.Type {
	case model.EventBookingAdmitted:
		mail, err = s.bookingMail(ctx, event)
	case model.EventAccountOTP:
		mail, err = s.otpMail(event)
	default:
		log.Warn().Str("type", event.Type).Msg("skipping unknown notification event")

		return nil
	}

	if err != nil {
		return err
	}

	s.deliver(ctx, mail)

	return nil
}

func (s *serviceImpl) bookingMail(ctx context.Context, event model.Event) (mailer.Mail, error) {
	if event.Booking == nil {
		return mailer.Mail{}, fmt.Errorf("booking event for %s carries no booking", event.Email)
	}

	booking := event.Booking

	html, err := render(templateBookingAdmitted, map[string]any{
		"AppName":   s.cfg.App.Name,
		"ID":        booking.ID,
		"RoomID":    booking.RoomID,
		"Arrival":   timezone.Format(booking.Start, displayFormat),
		"Departure": timezone.Format(booking.End, displayFormat),
		"Status":    booking.Status,
		"Notes":     booking.Notes,
	})
	if err != nil {
		return mailer.Mail{}, err
	}

	s.archive(ctx, booking.ID, html)

	return mailer.Mail{
		To:      event.Email,
		Subject: fmt.Sprintf("Booking confirmation #%d", booking.ID),
		HTML:    html,
	}, nil
}

func (s *serviceImpl) otpMail(event model.Event) (mailer.Mail, error) {
	html, err := render(templateAccountOTP, map[string]any{
		"AppName":          s.cfg.App.Name,
		"Name":             event.Name,
		"OTP":              event.OTP,
		"ExpiresInMinutes": max(1, s.cfg.Auth.OTPTTLSeconds/60),
	})
	if err != nil {
		return mailer.Mail{}, err
	}

	return mailer.Mail{
		To:      event.Email,
		Subject: "Your verification code",
		HTML:    html,
	}, nil
}

// archive stores the rendered confirmation as a receipt; failures are logged only.
func (s *serviceImpl) archive(ctx context.Context, bookingID int64, html string) {
	fileName := "booking-" + strconv.FormatInt(bookingID, 10) + ".html"

	url, err := s.s3.UploadFileBytes(ctx, constant.Empty, receiptDirectory, fileName, constant.ContentTypeHTML, []byte(html))
	if err != nil {
		log.Error().Err(err).Int64("booking_id", bookingID).Msg("failed to archive booking receipt")

		return
	}

	log.Info().Int64("booking_id", bookingID).Str("url", url).Msg("booking receipt archived")
}

// deliver sends mail, retrying with a doubling wait up to the configured attempts.
func (s *serviceImpl) deliver(ctx context.Context, mail mailer.Mail) {
	attempts := max(1, s.cfg.Notification.MaxAttempts)
	wait := time.Duration(s.cfg.Notification.RetryWaitSeconds) * time.Second

	for attempt := 1; ; attempt++ {
		err := s.mailer.Send(ctx, mail)
		if err == nil {
			return
		}

		if attempt >= attempts {
			log.Error().Err(err).Str("to", mail.To).Int("attempts", attempt).Msg("giving up on notification email")

			return
		}

		log.Warn().Err(err).Str("to", mail.To).Int("attempt", attempt).Dur("wait", wait).Msg("failed to send notification email, retrying")

		select {
		case <-ctx.Done():
			log.Warn().Str("to", mail.To).Msg("notification email abandoned on shutdown")

			return
		case <-time.After(wait):
		}

		wait *= 2
	}
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer

	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("failed to render notification")

		return constant.Empty, fmt.Errorf("failed to render %s: %w", name, err)
	}

	return buf.String(), nil
}
