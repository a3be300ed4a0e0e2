package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"time"

	"leonine/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxIdleConnections = 10
	maxOpenConnections = 10
	connMaxLifetime    = 30 * time.Minute
)

// Connection splits reads from writes; both may point at the same server.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// endpoint mirrors the read and write blocks of the postgres config.
type endpoint struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	Timezone string
	SSLMode  string
}

func New(config *config.Config) *Connection {
	pg := config.DB.Postgres

	return &Connection{
		Read:  connect("read", dsn(endpoint(pg.Read), pg.Prefix), pg.MaxRetry, pg.RetryWaitTime),
		Write: connect("write", dsn(endpoint(pg.Write), pg.Prefix), pg.MaxRetry, pg.RetryWaitTime),
	}
}

// WriteDSN is the primary connection string; migrations run against it.
func WriteDSN(config *config.Config) *url.URL {
	return dsn(endpoint(config.DB.Postgres.Write), config.DB.Postgres.Prefix)
}

func dsn(ep endpoint, prefix string) *url.URL {
	query := url.Values{}

	if ep.SSLMode != "" {
		query.Set("sslmode", ep.SSLMode)
	}

	if ep.Timezone != "" {
		query.Set("timezone", ep.Timezone)
	}

	return &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(ep.Username, ep.Password),
		Host:     net.JoinHostPort(ep.Host, ep.Port),
		Path:     "/" + prefix + ep.Name,
		RawQuery: query.Encode(),
	}
}

// connect retries until the database answers and exits the process when it never does.
func connect(name string, target *url.URL, maxRetry, waitSeconds int) *sqlx.DB {
	logger := log.With().
		Str("name", name).
		Str("host", target.Host).
		Str("db", target.Path[1:]).
		Logger()

	attempts := max(1, maxRetry)

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := sqlx.Connect("postgres", target.String())
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetConnMaxLifetime(connMaxLifetime)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	logger.Fatal().Int("attempts", attempts).Msg("Giving up connecting to database")

	return nil
}
