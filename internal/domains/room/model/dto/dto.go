package dto

import (
	"leonine/internal/domains/room/model"
	"leonine/shared"
	gDto "leonine/shared/dto"
	gModel "leonine/shared/model"
	"leonine/shared/timezone"

	"github.com/lib/pq"
)

type CreateRoomRequest struct {
	RoomID             int64    `json:"room_id"             validate:"required,gt=0"`
	Category           string   `json:"category"            validate:"required,max=100"`
	Available          *bool    `json:"available"           validate:"omitempty"`
	MaxGuests          int      `json:"max_guests"          validate:"omitempty,min=1,max=20"`
	Photos             []string `json:"photos"              validate:"omitempty,dive,url"`
	SpecialDescription string   `json:"special_description" validate:"omitempty,max=2000"`
	Notes              string   `json:"notes"               validate:"omitempty,max=2000"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	available := true
	if c.Available != nil {
		available = *c.Available
	}

	maxGuests := c.MaxGuests
	if maxGuests == 0 {
		maxGuests = model.DefaultMaxGuests
	}

	photos := c.Photos
	if photos == nil {
		photos = []string{}
	}

	return model.Room{
		RoomID:             c.RoomID,
		Category:           c.Category,
		Available:          available,
		MaxGuests:          maxGuests,
		Photos:             pq.StringArray(photos),
		SpecialDescription: c.SpecialDescription,
		Notes:              c.Notes,
		Metadata:           gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateRoomRequest struct {
	Category           string         `db:"category"            json:"category"            validate:"omitempty,max=100"`
	Available          *bool          `db:"available"           json:"available"           validate:"omitempty"`
	MaxGuests          *int           `db:"max_guests"          json:"max_guests"          validate:"omitempty,min=1,max=20"`
	Photos             pq.StringArray `db:"photos"              json:"photos"              validate:"omitempty,dive,url"`
	SpecialDescription string         `db:"special_description" json:"special_description" validate:"omitempty,max=2000"`
	Notes              string         `db:"notes"               json:"notes"               validate:"omitempty,max=2000"`
}

type RoomResponse struct {
	RoomID             int64    `json:"room_id"`
	Category           string   `json:"category"`
	Available          bool     `json:"available"`
	MaxGuests          int      `json:"max_guests"`
	Photos             []string `json:"photos"`
	SpecialDescription string   `json:"special_description"`
	Notes              string   `json:"notes"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.RoomID = model.RoomID
	r.Category = model.Category
	r.Available = model.Available
	r.MaxGuests = model.MaxGuests
	r.Photos = []string(model.Photos)
	r.SpecialDescription = model.SpecialDescription
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
