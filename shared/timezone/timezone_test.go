package timezone_test

import (
	"testing"
	"time"

	"leonine/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { _ = timezone.Init("") })

	assert.NoError(t, timezone.Init("Asia/Jakarta"))
	assert.Equal(t, "Asia/Jakarta", timezone.Location().String())
	assert.Equal(t, "Asia/Jakarta", timezone.Now().Location().String())

	assert.Error(t, timezone.Init("Mars/Olympus_Mons"))
	assert.Equal(t, "Asia/Jakarta", timezone.Location().String(), "failed init keeps the previous zone")

	assert.NoError(t, timezone.Init(""))
	assert.Equal(t, time.UTC, timezone.Location())
}

func TestFormatKeepsInstant(t *testing.T) {
	t.Cleanup(func() { _ = timezone.Init("") })

	checkIn := time.Date(2025, 6, 3, 7, 0, 0, 0, time.UTC)

	assert.NoError(t, timezone.Init("Asia/Jakarta"))

	formatted := timezone.Format(checkIn, time.RFC3339)
	assert.Equal(t, "2025-06-03T14:00:00+07:00", formatted)

	parsed, err := time.Parse(time.RFC3339, formatted)
	assert.NoError(t, err)
	assert.True(t, parsed.Equal(checkIn))
}
