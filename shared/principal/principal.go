// Package principal carries the authenticated caller resolved by the auth middleware.
package principal

import (
	"context"

	"leonine/shared/constant"
	"leonine/shared/failure"
)

type Principal struct {
	UserID string
	Email  string
	Role   string
}

// FromContext returns the caller stored by the auth middleware. It reports false
// when the request carried no verified identity.
func FromContext(ctx context.Context) (Principal, bool) {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if userID == constant.Empty || email == constant.Empty {
		return Principal{}, false
	}

	return Principal{
		UserID: userID,
		Email:  email,
		Role:   role,
	}, true
}

// Require is FromContext for handlers that need a caller; it fails with 401.
func Require(ctx context.Context) (Principal, error) {
	p, ok := FromContext(ctx)
	if !ok {
		return p, failure.AuthenticationRequired
	}

	return p, nil
}

// WithContext stores p the same way the auth middleware does.
func WithContext(ctx context.Context, p Principal) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, p.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, p.Email)

	return context.WithValue(ctx, constant.ContextKeyUserRole, p.Role)
}

func (p Principal) IsAdmin() bool {
	return p.Role == constant.RoleAdmin
}

// IsCustomer is true for ordinary accounts; "user" and "customer" are the same role.
func (p Principal) IsCustomer() bool {
	return p.Role == constant.RoleUser || p.Role == constant.RoleCustomer
}
