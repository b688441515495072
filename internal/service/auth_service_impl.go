package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/contactdesk/backend/internal/model"
	"github.com/contactdesk/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any failed password login. The
// reason (unknown email, no password set, wrong password) is deliberately
// not distinguished.
var ErrInvalidCredentials = errors.New("invalid credentials")

// authServiceImpl is the production implementation of AuthService.
type authServiceImpl struct {
	userRepo repository.UserRepository
}

// NewAuthService creates an AuthService backed by the given repository.
func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authServiceImpl{userRepo: userRepo}
}

// GetOrCreateUserFromGoogle resolves the operator account for a Google
// identity, creating it on first login.
func (s *authServiceImpl) GetOrCreateUserFromGoogle(ctx context.Context, info *GoogleUserInfo) (*model.User, error) {
	user, err := s.userRepo.FindByGoogleID(ctx, info.Sub)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user = &model.User{
		Email:    info.Email,
		GoogleID: info.Sub,
		Name:     info.Name,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user from google login: %w", err)
	}
	return user, nil
}

// AuthenticateByPassword verifies an email/password pair.
func (s *authServiceImpl) AuthenticateByPassword(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
