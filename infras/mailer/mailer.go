package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"

	"leonine/config"
	"leonine/infras/otel"
	"leonine/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	otelAttrRecipient = "mail.recipient"
	otelAttrSubject   = "mail.subject"
)

var ErrNoRecipient = errors.New("mail has no recipient")

type Mail struct {
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, mail Mail) (err error)
}

type sendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

type mailerImpl struct {
	config *config.Config
	otel   otel.Otel
	send   sendFunc
}

func New(config *config.Config, otel otel.Otel) Mailer {
	return &mailerImpl{
		config: config,
		otel:   otel,
		send:   smtp.SendMail,
	}
}

func (m *mailerImpl) Send(ctx context.Context, mail Mail) (err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if strings.TrimSpace(mail.To) == constant.Empty {
		return ErrNoRecipient
	}

	scope.SetAttributes(map[string]any{
		otelAttrRecipient: mail.To,
		otelAttrSubject:   mail.Subject,
	})

	smtpCfg := m.config.External.SMTP

	var auth smtp.Auth
	if smtpCfg.Username != constant.Empty {
		auth = smtp.PlainAuth(constant.Empty, smtpCfg.Username, smtpCfg.Password, smtpCfg.Host)
	}

	addr := net.JoinHostPort(smtpCfg.Host, smtpCfg.Port)

	if err = m.send(addr, auth, smtpCfg.From, []string{mail.To}, compose(smtpCfg.From, mail)); err != nil {
		log.Error().Err(err).Str("to", mail.To).Str("subject", mail.Subject).Msg("failed to send mail")

		return fmt.Errorf("failed to send mail: %w", err)
	}

	log.Info().Str("to", mail.To).Str("subject", mail.Subject).Msg("mail sent")

	return nil
}

func compose(from string, mail Mail) []byte {
	var builder strings.Builder

	builder.WriteString("From: " + from + "\r\n")
	builder.WriteString("To: " + mail.To + "\r\n")
	builder.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", mail.Subject) + "\r\n")
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString(constant.RequestHeaderContentType + ": " + constant.ContentTypeHTML + "\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(mail.HTML)

	return []byte(builder.String())
}
