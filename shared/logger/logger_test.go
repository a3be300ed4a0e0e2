package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"leonine/config"
	"leonine/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInitLogger(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()

	logger.InitLogger()

	if zerolog.TimeFieldFormat != zerolog.TimeFormatUnix {
		t.Errorf("expected TimeFieldFormat to be %s, got %s", zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	}

	if zerolog.GlobalLevel() != zerolog.TraceLevel {
		t.Errorf("expected global level to be %s, got %s", zerolog.TraceLevel, zerolog.GlobalLevel())
	}
}

func TestErrorWithStack(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("insert booking failed"))

	if !bytes.Contains(buf.Bytes(), []byte("insert booking failed")) {
		t.Errorf("expected log output to contain the error, got %q", buf.String())
	}

	if !bytes.Contains(buf.Bytes(), []byte(`"level":"error"`)) {
		t.Errorf("expected an error level entry, got %q", buf.String())
	}
}

func TestSetLogLevel(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(originalLevel)

	tests := []struct {
		name          string
		logLevel      string
		expectedLevel zerolog.Level
	}{
		{name: "debug level", logLevel: "debug", expectedLevel: zerolog.DebugLevel},
		{name: "warn level", logLevel: "warn", expectedLevel: zerolog.WarnLevel},
		{name: "invalid level defaults to trace", logLevel: "loud", expectedLevel: zerolog.TraceLevel},
		{name: "unset level defaults to trace", logLevel: "", expectedLevel: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			if zerolog.GlobalLevel() != tt.expectedLevel {
				t.Errorf("expected global level to be %s, got %s", tt.expectedLevel, zerolog.GlobalLevel())
			}
		})
	}
}

func TestSetComponent(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	cfg := &config.Config{}
	cfg.App.Name = "leonine"

	logger.SetComponent(cfg, "worker")
	log.Info().Msg("ready")

	if !bytes.Contains(buf.Bytes(), []byte(`"component":"worker"`)) {
		t.Errorf("expected component field, got %q", buf.String())
	}

	if !bytes.Contains(buf.Bytes(), []byte(`"app":"leonine"`)) {
		t.Errorf("expected app field, got %q", buf.String())
	}
}
