package model

import (
	"leonine/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldRoomID    = "room_id"
	FieldCategory  = "category"
	FieldAvailable = "available"
	FieldMaxGuests = "max_guests"
	FieldPhotos    = "photos"

	DefaultMaxGuests = 2
)

// Room is a physical room. Available is an administrative switch and says
// nothing about bookings.
type Room struct {
	RoomID             int64          `db:"room_id"`
	Category           string         `db:"category"`
	Available          bool           `db:"available"`
	MaxGuests          int            `db:"max_guests"`
	Photos             pq.StringArray `db:"photos"`
	SpecialDescription string         `db:"special_description"`
	Notes              string         `db:"notes"`
	model.Metadata
}
