package dto

import (
	"leonine/internal/domains/user/model"
	"leonine/shared"
	"leonine/shared/constant"
	gDto "leonine/shared/dto"
	"leonine/shared/timezone"
)

type UserResponse struct {
	ID            string  `json:"id"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	WhatsApp      string  `json:"whatsapp"`
	Type          string  `json:"type"`
	Disabled      bool    `json:"disabled"`
	EmailVerified bool    `json:"email_verified"`
	LastLogin     *string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.Email = model.Email
	r.Phone = model.Phone
	r.WhatsApp = model.WhatsApp
	r.Type = model.Type
	r.Disabled = model.Disabled
	r.EmailVerified = model.EmailVerified
	r.LastLogin = nil

	if model.LastLogin != nil {
		lastLogin := timezone.Format(*model.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

// DisableUserRequest toggles sign-in for an account. Disabled is a pointer so
// that false still reaches the update.
type DisableUserRequest struct {
	Disabled *bool `db:"disabled" json:"disabled" validate:"required"`
}

type ChangeTypeRequest struct {
	Type string `db:"type" json:"type" validate:"required,oneof=admin user customer"`
}
