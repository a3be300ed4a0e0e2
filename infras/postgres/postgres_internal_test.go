package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	target := dsn(endpoint{
		Host:     "db.internal",
		Port:     "5432",
		Username: "leonine",
		Password: "p@ss/word",
		Name:     "hotel",
		Timezone: "Asia/Jakarta",
		SSLMode:  "disable",
	}, "staging_")

	assert.Equal(t, "postgres", target.Scheme)
	assert.Equal(t, "db.internal:5432", target.Host)
	assert.Equal(t, "/staging_hotel", target.Path)
	assert.Equal(t, "disable", target.Query().Get("sslmode"))
	assert.Equal(t, "Asia/Jakarta", target.Query().Get("timezone"))

	password, _ := target.User.Password()
	assert.Equal(t, "p@ss/word", password)
	assert.Contains(t, target.String(), "p%40ss%2Fword")
}

func TestDSN_OmitsEmptyOptions(t *testing.T) {
	target := dsn(endpoint{Host: "localhost", Port: "5432", Username: "u", Name: "hotel"}, "")

	assert.Empty(t, target.RawQuery)
	assert.Equal(t, "/hotel", target.Path)
}
