package model

import "time"

const (
	EventBookingAdmitted = "booking.admitted"
	EventAccountOTP      = "account.otp"
)

// Event is the envelope published on the notification topic, keyed by Email.
type Event struct {
	Type    string   `json:"type"`
	Email   string   `json:"email"`
	Name    string   `json:"name,omitempty"`
	Booking *Booking `json:"booking,omitempty"`
	OTP     string   `json:"otp,omitempty"`
}

type Booking struct {
	ID     int64     `json:"id"`
	RoomID int64     `json:"room_id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Notes  string    `json:"notes,omitempty"`
}

func NewBookingAdmitted(email string, booking Booking) Event {
	return Event{
		Type:    EventBookingAdmitted,
		Email:   email,
		Booking: &booking,
	}
}

func NewAccountOTP(email, name, otp string) Event {
	return Event{
		Type:  EventAccountOTP,
		Email: email,
		Name:  name,
		OTP:   otp,
	}
}
