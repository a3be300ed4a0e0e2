package dto_test

import (
	"testing"

	bookingModel "leonine/internal/domains/booking/model"
	"leonine/internal/domains/feedback/model"
	"leonine/internal/domains/feedback/model/dto"

	"github.com/stretchr/testify/assert"
)

func TestCreateFeedbackRequest_ToModel(t *testing.T) {
	req := dto.CreateFeedbackRequest{BookingID: 7, Rating: 5, Comment: "Lovely stay"}
	booking := bookingModel.Booking{ID: 7, RoomID: 101, Email: "ada@leonine.test"}

	feedback := req.ToModel(booking, "ada@leonine.test")

	assert.NotEmpty(t, feedback.ID)
	assert.Equal(t, int64(7), feedback.BookingID)
	assert.Equal(t, int64(101), feedback.RoomID)
	assert.Equal(t, model.StatusVisible, feedback.Status)
	assert.Equal(t, "ada@leonine.test", feedback.CreatedBy)
}

func TestGetFeedbacksResponse_FromModels(t *testing.T) {
	var res dto.GetFeedbacksResponse

	res.FromModels([]model.Feedback{
		{ID: "f-1", Rating: 4, Status: model.StatusHidden},
		{ID: "f-2", Rating: 5, Status: model.StatusVisible},
	})

	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, "f-1", res.Feedbacks[0].ID)
	assert.Equal(t, model.StatusHidden, res.Feedbacks[0].Status)

	res.FromModels(nil)
	assert.NotNil(t, res.Feedbacks)
	assert.Empty(t, res.Feedbacks)
}
