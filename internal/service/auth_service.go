package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"osoc-selections-backend/internal/auth"
	"osoc-selections-backend/internal/model"
	"osoc-selections-backend/pkg/apierror"
)

// UserDirectory is the read-mostly account store the auth core consults.
// Account lifecycle (role changes, removal) is owned by whoever stands
// behind this interface, not by the auth service.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u model.User) error
}

type AuthService struct {
	tokens     *auth.TokenService
	store      *auth.RevocationStore
	users      UserDirectory
	accessTTL  time.Duration
	refreshTTL time.Duration
	bcryptCost int
}

func NewAuthService(
	tokens *auth.TokenService,
	store *auth.RevocationStore,
	users UserDirectory,
	accessTTL time.Duration,
	refreshTTL time.Duration,
	bcryptCost int,
) *AuthService {
	return &AuthService{
		tokens:     tokens,
		store:      store,
		users:      users,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		bcryptCost: bcryptCost,
	}
}

func (s *AuthService) Login(ctx context.Context, email string, password string) (model.TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.TokenPair{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	if user.Role == model.RoleDisabled {
		return model.TokenPair{}, model.ErrAccountDisabled
	}

	pair, err := s.issuePair(user.Email, []string{user.Role})
	if err != nil {
		return model.TokenPair{}, err
	}

	public := user.Public()
	pair.User = &public
	return pair, nil
}

// Refresh rotates a refresh token: the presented token is verified,
// checked against the revocation store, and atomically replaced by a
// freshly issued pair. A replayed or superseded token loses the race
// in Rotate and is rejected.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return model.TokenPair{}, err
	}

	if !claims.IsRefresh {
		return model.TokenPair{}, fmt.Errorf("%w: access token presented for renewal", model.ErrInvalidToken)
	}

	presented := auth.Fingerprint(refreshToken)
	if !s.store.IsValid(claims.Subject, presented) {
		return model.TokenPair{}, fmt.Errorf("%w: refresh token is not current", model.ErrInvalidToken)
	}

	accessToken, err := s.tokens.Issue(claims.Subject, claims.Roles, s.accessTTL, false)
	if err != nil {
		return model.TokenPair{}, err
	}

	newRefreshToken, err := s.tokens.Issue(claims.Subject, claims.Roles, s.refreshTTL, true)
	if err != nil {
		return model.TokenPair{}, err
	}

	if !s.store.Rotate(claims.Subject, presented, auth.Fingerprint(newRefreshToken)) {
		return model.TokenPair{}, fmt.Errorf("%w: refresh token already rotated", model.ErrInvalidToken)
	}

	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// Logout invalidates every outstanding refresh token for the account
// behind the access token. It is best-effort: a stale or garbled token
// simply makes it a no-op.
func (s *AuthService) Logout(accessToken string) {
	claims, err := s.tokens.Verify(accessToken)
	if err != nil {
		return
	}

	s.store.Invalidate(claims.Subject)
}

// VerifyAccess validates an access token for the request gate. Refresh
// tokens are rejected here even when validly signed.
func (s *AuthService) VerifyAccess(tokenString string) (*model.AuthClaims, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.IsRefresh {
		return nil, fmt.Errorf("%w: refresh token used as access token", model.ErrInvalidToken)
	}

	return claims, nil
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthUser, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = model.RoleDisabled
	}

	if email == "" || req.Password == "" {
		return model.AuthUser{}, apierror.BadRequest("email and password are required", "")
	}
	if !model.ValidRole(role) {
		return model.AuthUser{}, apierror.BadRequest("invalid role", role)
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return model.AuthUser{}, err
	}
	if exists {
		return model.AuthUser{}, model.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return model.AuthUser{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.AuthUser{}, err
	}

	return user.Public(), nil
}

func (s *AuthService) GetUserByEmail(ctx context.Context, email string) (model.AuthUser, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return model.AuthUser{}, err
	}
	return user.Public(), nil
}

func (s *AuthService) issuePair(subject string, roles []string) (model.TokenPair, error) {
	accessToken, err := s.tokens.Issue(subject, roles, s.accessTTL, false)
	if err != nil {
		return model.TokenPair{}, err
	}

	refreshToken, err := s.tokens.Issue(subject, roles, s.refreshTTL, true)
	if err != nil {
		return model.TokenPair{}, err
	}

	s.store.RecordValid(subject, auth.Fingerprint(refreshToken))

	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}
