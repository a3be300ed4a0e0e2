package dto

import (
	bookingModel "leonine/internal/domains/booking/model"
	"leonine/internal/domains/feedback/model"
	gDto "leonine/shared/dto"
	gModel "leonine/shared/model"
	"leonine/shared/timezone"

	"github.com/google/uuid"
)

type CreateFeedbackRequest struct {
	BookingID int64  `json:"booking_id" validate:"required,gt=0"`
	Rating    int    `json:"rating"     validate:"required,min=1,max=5"`
	Comment   string `json:"comment"    validate:"required,max=2000"`
}

// ToModel ties the feedback to booking; the room comes from the booking, never the request.
func (r *CreateFeedbackRequest) ToModel(booking bookingModel.Booking, email string) model.Feedback {
	return model.Feedback{
		ID:        uuid.NewString(),
		BookingID: booking.ID,
		RoomID:    booking.RoomID,
		Email:     email,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Status:    model.StatusVisible,
		Metadata:  gModel.NewMetadata(email, timezone.Now()),
	}
}

type UpdateStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=Visible Hidden"`
}

type FeedbackResponse struct {
	ID        string `json:"id"`
	BookingID int64  `json:"booking_id"`
	RoomID    int64  `json:"room_id"`
	Email     string `json:"email"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Status    string `json:"status"`
	gDto.Metadata
}

func (r *FeedbackResponse) FromModel(model model.Feedback) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.RoomID = model.RoomID
	r.Email = model.Email
	r.Rating = model.Rating
	r.Comment = model.Comment
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetFeedbacksResponse struct {
	Feedbacks []FeedbackResponse `json:"feedbacks"`
	TotalData int                `json:"total_data"`
}

func (r *GetFeedbacksResponse) FromModels(models []model.Feedback) {
	r.TotalData = len(models)

	r.Feedbacks = make([]FeedbackResponse, len(models))
	for i, mod := range models {
		r.Feedbacks[i].FromModel(mod)
	}
}
