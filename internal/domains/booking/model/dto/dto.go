package dto

import (
	"time"

	"leonine/internal/domains/booking/model"
	"leonine/shared/constant"
	gDto "leonine/shared/dto"
	"leonine/shared/failure"
	gModel "leonine/shared/model"
	"leonine/shared/timezone"
)

var errInvalidWindow = failure.BadRequestFromString("end must be after start")

type WindowRequest struct {
	Start string `json:"start" validate:"required,rfc3339"`
	End   string `json:"end"   validate:"required,rfc3339"`
}

// Window parses the request into a half-open window, rejecting end <= start.
func (w WindowRequest) Window() (model.Window, error) {
	return parseWindow(w.Start, w.End)
}

type CreateByRoomRequest struct {
	RoomID int64  `json:"room_id" validate:"required,gt=0"`
	Start  string `json:"start"   validate:"required,rfc3339"`
	End    string `json:"end"     validate:"required,rfc3339"`
	Notes  string `json:"notes"   validate:"omitempty,max=2000"`
}

func (c CreateByRoomRequest) Window() (model.Window, error) {
	return parseWindow(c.Start, c.End)
}

type CreateByCategoryRequest struct {
	Category string `json:"category" validate:"required,max=100"`
	Start    string `json:"start"    validate:"required,rfc3339"`
	End      string `json:"end"      validate:"required,rfc3339"`
	Notes    string `json:"notes"    validate:"omitempty,max=2000"`
}

func (c CreateByCategoryRequest) Window() (model.Window, error) {
	return parseWindow(c.Start, c.End)
}

// NewBooking builds a pending booking; the id is assigned on admission.
func NewBooking(roomID int64, email string, window model.Window, notes string) model.Booking {
	return model.Booking{
		RoomID:   roomID,
		Email:    email,
		StartAt:  window.Start,
		EndAt:    window.End,
		Status:   model.StatusPending,
		Notes:    notes,
		Metadata: gModel.NewMetadata(email, timezone.Now()),
	}
}

// UpdateBookingRequest is a partial update. Notes and Reason are pointers so
// that an explicit "" clears them while an omitted key leaves them untouched.
type UpdateBookingRequest struct {
	Status string  `db:"status" json:"status" validate:"omitempty,oneof=Pending Confirmed Cancelled Rejected"`
	Notes  *string `db:"notes"  json:"notes"  validate:"omitempty,max=2000"`
	Reason *string `db:"reason" json:"reason" validate:"omitempty,max=2000"`
	Start  string  `json:"start"  validate:"omitempty,rfc3339"`
	End    string  `json:"end"    validate:"omitempty,rfc3339"`
}

// ApplyWindow merges the supplied dates over current and checks the result.
func (u UpdateBookingRequest) ApplyWindow(current model.Window) (model.Window, error) {
	window := current

	if u.Start != constant.Empty {
		start, err := parseTime(u.Start)
		if err != nil {
			return window, err
		}

		window.Start = start
	}

	if u.End != constant.Empty {
		end, err := parseTime(u.End)
		if err != nil {
			return window, err
		}

		window.End = end
	}

	if !window.Valid() {
		return window, errInvalidWindow
	}

	return window, nil
}

func (u UpdateBookingRequest) ChangesWindow() bool {
	return u.Start != constant.Empty || u.End != constant.Empty
}

func parseTime(value string) (time.Time, error) {
	parsed, err := time.Parse(constant.DateFormat, value)
	if err != nil {
		return time.Time{}, failure.BadRequestFromString("invalid date: " + value) // nolint:wrapcheck
	}

	return parsed, nil
}

func parseWindow(start, end string) (model.Window, error) {
	var (
		window model.Window
		err    error
	)

	if window.Start, err = parseTime(start); err != nil {
		return window, err
	}

	if window.End, err = parseTime(end); err != nil {
		return window, err
	}

	if !window.Valid() {
		return window, errInvalidWindow
	}

	return window, nil
}

type BookingResponse struct {
	ID     int64  `json:"id"`
	RoomID int64  `json:"room_id"`
	Email  string `json:"email"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Status string `json:"status"`
	Notes  string `json:"notes"`
	Reason string `json:"reason"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.Email = model.Email
	r.Start = timezone.Format(model.StartAt, constant.DateFormat)
	r.End = timezone.Format(model.EndAt, constant.DateFormat)
	r.Status = model.Status
	r.Notes = model.Notes
	r.Reason = model.Reason
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking) {
	r.TotalData = len(models)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
