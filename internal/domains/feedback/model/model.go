package model

import "leonine/shared/model"

const (
	TableName  = "feedbacks"
	EntityName = "feedback"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldRoomID    = "room_id"
	FieldEmail     = "email"
	FieldRating    = "rating"
	FieldComment   = "comment"
	FieldStatus    = "status"
)

const (
	StatusVisible = "Visible"
	StatusHidden  = "Hidden"
)

type Feedback struct {
	ID        string `db:"id"`
	BookingID int64  `db:"booking_id"`
	RoomID    int64  `db:"room_id"`
	Email     string `db:"email"`
	Rating    int    `db:"rating"`
	Comment   string `db:"comment"`
	Status    string `db:"status"`
	model.Metadata
}
