package dto_test

import (
	"testing"

	"leonine/internal/domains/room/model"
	"leonine/internal/domains/room/model/dto"
	"leonine/shared/validator"

	"github.com/stretchr/testify/assert"
)

func TestCreateRoomRequest_ToModel(t *testing.T) {
	disabled := false

	tests := []struct {
		name          string
		req           dto.CreateRoomRequest
		wantAvailable bool
		wantGuests    int
	}{
		{
			name:          "defaults",
			req:           dto.CreateRoomRequest{RoomID: 101, Category: "Standard"},
			wantAvailable: true,
			wantGuests:    model.DefaultMaxGuests,
		},
		{
			name:          "explicit values",
			req:           dto.CreateRoomRequest{RoomID: 201, Category: "Deluxe", Available: &disabled, MaxGuests: 4},
			wantAvailable: false,
			wantGuests:    4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := tt.req.ToModel("admin@leonine.test")

			assert.Equal(t, tt.req.RoomID, room.RoomID)
			assert.Equal(t, tt.wantAvailable, room.Available)
			assert.Equal(t, tt.wantGuests, room.MaxGuests)
			assert.NotNil(t, room.Photos)
			assert.Equal(t, "admin@leonine.test", room.ModifiedBy)
		})
	}
}

func TestCreateRoomRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateRoomRequest
		wantErr bool
	}{
		{name: "valid", req: dto.CreateRoomRequest{RoomID: 101, Category: "Standard", Photos: []string{"https://cdn.leonine.test/101.jpg"}}},
		{name: "missing room id", req: dto.CreateRoomRequest{Category: "Standard"}, wantErr: true},
		{name: "negative room id", req: dto.CreateRoomRequest{RoomID: -4, Category: "Standard"}, wantErr: true},
		{name: "missing category", req: dto.CreateRoomRequest{RoomID: 101}, wantErr: true},
		{name: "photo not a url", req: dto.CreateRoomRequest{RoomID: 101, Category: "Standard", Photos: []string{"101.jpg"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
