package model

import (
	"time"

	"leonine/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID            = "id"
	FieldFirstName     = "first_name"
	FieldLastName      = "last_name"
	FieldEmail         = "email"
	FieldPassword      = "password"
	FieldPhone         = "phone"
	FieldWhatsApp      = "whatsapp"
	FieldType          = "type"
	FieldDisabled      = "disabled"
	FieldEmailVerified = "email_verified"
	FieldLastLogin     = "last_login"
)

type User struct {
	ID            string     `db:"id"`
	FirstName     string     `db:"first_name"`
	LastName      string     `db:"last_name"`
	Email         string     `db:"email"`
	Password      string     `db:"password"`
	Phone         string     `db:"phone"`
	WhatsApp      string     `db:"whatsapp"`
	Type          string     `db:"type"`
	Disabled      bool       `db:"disabled"`
	EmailVerified bool       `db:"email_verified"`
	LastLogin     *time.Time `db:"last_login"`
	model.Metadata
}

func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}

	return u.FirstName + " " + u.LastName
}
