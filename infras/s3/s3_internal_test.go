package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURL(t *testing.T) {
	assert.Equal(t, "https://cdn.leonine.test/receipts/booking-7.html", objectURL("https://cdn.leonine.test/", "receipts/booking-7.html"))
	assert.Equal(t, "https://cdn.leonine.test/receipts/booking-7.html", objectURL("https://cdn.leonine.test", "receipts/booking-7.html"))
}
