package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"osoc-selections-backend/internal/model"
	"osoc-selections-backend/internal/repository"
	"osoc-selections-backend/pkg/apierror"
)

// UserService covers the account management the auth core itself stays
// out of: listing accounts, changing roles and passwords.
type UserService struct {
	users      *repository.UserRepository
	bcryptCost int
}

func NewUserService(users *repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

func (s *UserService) List(ctx context.Context) ([]model.AuthUser, error) {
	return s.users.List(ctx)
}

// SetRole changes an account's role. Demoting to disabled is the
// admin-side kill switch: the next access token never gets issued
// because login is refused, and role gates reject tokens still alive.
func (s *UserService) SetRole(ctx context.Context, userID string, role string) (model.AuthUser, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if !model.ValidRole(role) {
		return model.AuthUser{}, apierror.BadRequest("invalid role", role)
	}

	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return model.AuthUser{}, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.AuthUser{}, err
	}

	return user.Public(), nil
}

// ChangePassword lets an authenticated account replace its own
// password after proving it still knows the current one.
func (s *UserService) ChangePassword(ctx context.Context, email string, currentPassword string, newPassword string) error {
	if len(newPassword) < 8 {
		return apierror.BadRequest("password must be at least 8 characters", "")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return model.ErrInvalidCredentials
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, user.ID, string(hash))
}
