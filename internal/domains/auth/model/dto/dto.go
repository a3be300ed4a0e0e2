package dto

import (
	"strings"
	"time"

	"leonine/infras/jwt"
	userModel "leonine/internal/domains/user/model"
	userDto "leonine/internal/domains/user/model/dto"
	"leonine/shared/constant"
	gModel "leonine/shared/model"
	"leonine/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"required,max=100"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=6,max=72"`
	Phone     string `json:"phone"      validate:"required,max=30"`
	WhatsApp  string `json:"whatsapp"   validate:"required,max=30"`
	Type      string `json:"type"       validate:"omitempty,oneof=user customer"`
}

// ToUserModel builds an unverified, enabled account. Admin accounts are only
// reachable through a type change by another admin.
func (r *RegisterRequest) ToUserModel(username string, hashedPassword string) userModel.User {
	accountType := r.Type
	if accountType == constant.Empty {
		accountType = constant.RoleUser
	}

	now := timezone.Now()

	return userModel.User{
		ID:            uuid.NewString(),
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Email:         NormalizeEmail(r.Email),
		Password:      hashedPassword,
		Phone:         r.Phone,
		WhatsApp:      r.WhatsApp,
		Type:          accountType,
		Disabled:      false,
		EmailVerified: false,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp"   validate:"required,numeric,len=4"`
}

type ResendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

type VerifiedRequest struct {
	EmailVerified bool `db:"email_verified"`
}

type LoginResponse struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	ExpiresIn    int64                `json:"expires_in"`
	User         userDto.UserResponse `json:"user"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6,max=72"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=6"`
}
