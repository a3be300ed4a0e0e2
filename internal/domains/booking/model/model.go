package model

import (
	"slices"
	"time"

	"leonine/shared/model"
)

const (
	TableName    = "bookings"
	EntityName   = "booking"
	SequenceName = "bookings_id_seq"

	FieldID      = "id"
	FieldRoomID  = "room_id"
	FieldEmail   = "email"
	FieldStartAt = "start_at"
	FieldEndAt   = "end_at"
	FieldStatus  = "status"
	FieldNotes   = "notes"
	FieldReason  = "reason"
)

const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
	StatusRejected  = "Rejected"
)

// TerminalStatuses never block a room.
var TerminalStatuses = []string{StatusCancelled, StatusRejected}

func IsTerminal(status string) bool {
	return slices.Contains(TerminalStatuses, status)
}

type Booking struct {
	ID      int64     `db:"id"`
	RoomID  int64     `db:"room_id"`
	Email   string    `db:"email"`
	StartAt time.Time `db:"start_at"`
	EndAt   time.Time `db:"end_at"`
	Status  string    `db:"status"`
	Notes   string    `db:"notes"`
	Reason  string    `db:"reason"`
	model.Metadata
}

func (b Booking) Window() Window {
	return Window{Start: b.StartAt, End: b.EndAt}
}
