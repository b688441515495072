package service

import (
	"context"

	"github.com/contactdesk/backend/internal/model"
)

// GoogleUserInfo is the user identity obtained from Google OAuth.
type GoogleUserInfo struct {
	Sub   string
	Email string
	Name  string
}

// AuthService defines the business logic for operator sign-in.
type AuthService interface {
	// GetOrCreateUserFromGoogle resolves the operator account for a Google
	// identity, creating it on first login.
	GetOrCreateUserFromGoogle(ctx context.Context, info *GoogleUserInfo) (*model.User, error)

	// AuthenticateByPassword verifies an email/password pair against the
	// stored bcrypt hash and returns the matching user.
	AuthenticateByPassword(ctx context.Context, email, password string) (*model.User, error)
}
