// Package timezone pins "now" and display formatting to the hotel's configured
// zone (APP_TIMEZONE). Stored instants stay absolute; only presentation moves.
package timezone

import (
	"fmt"
	"sync/atomic"
	"time"
)

var location atomic.Pointer[time.Location]

// Init loads the IANA zone name. An empty name keeps UTC.
func Init(name string) error {
	if name == "" {
		location.Store(time.UTC)

		return nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	location.Store(loc)

	return nil
}

// Location returns the configured zone, UTC until Init succeeds.
func Location() *time.Location {
	if loc := location.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

func Now() time.Time {
	return time.Now().In(Location())
}

func Format(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
