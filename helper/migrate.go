package helper

//nolint:revive
import (
	"errors"
	"fmt"

	"leonine/config"
	"leonine/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionStepUp  = "step-up"
	ActionDrop    = "drop"
	ActionVersion = "version"
)

var ErrUnknownAction = errors.New("unknown migration action")

var actions = map[string]func(*migrate.Migrate) error{
	ActionUp:     func(m *migrate.Migrate) error { return m.Up() },
	ActionDown:   func(m *migrate.Migrate) error { return m.Steps(-1) },
	ActionStepUp: func(m *migrate.Migrate) error { return m.Steps(1) },
	ActionDrop:   func(m *migrate.Migrate) error { return m.Down() },
	ActionVersion: func(m *migrate.Migrate) error {
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Info().Msg("Database has no migrations applied")

			return nil
		}

		if err == nil {
			log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Database schema version")
		}

		return err
	},
}

func open(config *config.Config) (*migrate.Migrate, error) {
	target := postgres.WriteDSN(config)

	if table := config.DB.Postgres.MigrationTable; table != "" {
		query := target.Query()
		query.Set("x-migrations-table", table)
		target.RawQuery = query.Encode()
	}

	mig, err := migrate.New(config.DB.Postgres.MigrationPath, target.String())
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Runner applies one action against the write database. ErrNoChange is not an error.
func Runner(config *config.Config, action string) error {
	run, ok := actions[action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	mig, err := open(config)
	if err != nil {
		return err
	}
	defer mig.Close()

	if err := run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migration %s: %w", action, err)
	}

	log.Info().Str("action", action).Str("source", config.DB.Postgres.MigrationPath).Msg("Database migration finished")

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, ActionUp)
}
