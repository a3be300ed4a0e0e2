package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type roomRate struct {
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

func TestEncodeDecode(t *testing.T) {
	t.Run("strings stored raw", func(t *testing.T) {
		raw, err := encode("4821")
		assert.NoError(t, err)
		assert.Equal(t, []byte("4821"), raw)

		var otp string
		assert.NoError(t, decode(raw, &otp))
		assert.Equal(t, "4821", otp)
	})

	t.Run("structs stored as json", func(t *testing.T) {
		raw, err := encode(roomRate{Category: "Deluxe", Price: 120})
		assert.NoError(t, err)
		assert.JSONEq(t, `{"category":"Deluxe","price":120}`, string(raw))

		var got roomRate
		assert.NoError(t, decode(raw, &got))
		assert.Equal(t, "Deluxe", got.Category)
	})

	t.Run("corrupt value", func(t *testing.T) {
		var got roomRate
		assert.Error(t, decode([]byte("{"), &got))
	})

	t.Run("unencodable value", func(t *testing.T) {
		_, err := encode(make(chan int))
		assert.Error(t, err)
	})
}
