package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT"      default:"8080"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"leonine"`
		Timezone string `envconfig:"TIMEZONE" default:"UTC"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Auth struct {
		OTPTTLSeconds int `envconfig:"OTP_TTL_SECONDS" default:"600"`
	} `envconfig:"AUTH"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"15"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"       default:"3"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MigrationTable string `envconfig:"MIGRATION_TABLE"`
			MigrationPath  string `envconfig:"MIGRATION_PATH" default:"file://migrations/postgres"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Prefix         string `envconfig:"PREFIX"`
			Read           struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Brokers []string `envconfig:"BROKERS"`
		SASL    struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		ConsumerGroup     string `envconfig:"CONSUMER_GROUP" default:"leonine-notification"`
		NotificationTopic string `envconfig:"NOTIFICATION_TOPIC" default:"leonine.notifications"`
	} `envconfig:"KAFKA"`

	Notification struct {
		MaxAttempts      int `envconfig:"MAX_ATTEMPTS" default:"3"`
		RetryWaitSeconds int `envconfig:"RETRY_WAIT_SECONDS" default:"2"`
	} `envconfig:"NOTIFICATION"`

	External struct {
		Otel struct {
			Endpoint    string  `envconfig:"ENDPOINT"`
			SampleRatio float64 `envconfig:"SAMPLE_RATIO" default:"1"`
		} `envconfig:"OTEL"`
		S3 struct {
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		} `envconfig:"S3"`
		SMTP struct {
			Host     string `envconfig:"HOST"`
			Port     string `envconfig:"PORT"`
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
			From     string `envconfig:"FROM"`
		} `envconfig:"SMTP"`
	} `envconfig:"EXTERNAL"`
}

var errMissing = errors.New("missing required configuration")

var load = sync.OnceValues(func() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded, using the process environment")
	}

	cfg, err := Process()
	if err != nil {
		return nil, err
	}

	log.Info().Str("env", cfg.Server.Env).Msg("Service configuration initialized successfully")

	return cfg, nil
})

// Process reads the environment into a fresh Config and checks the settings
// no binary can run without.
func Process() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	required := map[string]string{
		"JWT_ACCESS_SECRET":      c.JWT.AccessSecret,
		"JWT_REFRESH_SECRET":     c.JWT.RefreshSecret,
		"DB_POSTGRES_WRITE_HOST": c.DB.Postgres.Write.Host,
	}

	missing := []string{}

	for name, value := range required {
		if value == "" {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		slices.Sort(missing)

		return fmt.Errorf("%w: %s", errMissing, strings.Join(missing, ", "))
	}

	return nil
}

// Get returns the process-wide configuration, exiting when it cannot be loaded.
func Get() *Config {
	cfg, err := load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize configuration")
	}

	return cfg
}
