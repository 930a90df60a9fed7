package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"osoc-selections-backend/internal/auth"
	"osoc-selections-backend/internal/model"
	"osoc-selections-backend/internal/service"
)

type memoryDirectory struct {
	users map[string]model.User
}

func (d *memoryDirectory) FindByEmail(_ context.Context, email string) (model.User, error) {
	user, ok := d.users[strings.ToLower(email)]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return user, nil
}

func (d *memoryDirectory) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := d.users[strings.ToLower(email)]
	return ok, nil
}

func (d *memoryDirectory) Create(_ context.Context, u model.User) error {
	d.users[strings.ToLower(u.Email)] = u
	return nil
}

func newAuthFixture(t *testing.T) *AuthHandler {
	t.Helper()

	secret, err := auth.GenerateSecret()
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	directory := &memoryDirectory{users: map[string]model.User{
		"coach@osoc.be": {
			ID:           "u-1",
			Email:        "coach@osoc.be",
			Name:         "Coach",
			PasswordHash: string(hash),
			Role:         model.RoleCoach,
		},
	}}

	svc := service.NewAuthService(
		auth.NewTokenService(secret, "osoc-selections"),
		auth.NewRevocationStore(),
		directory,
		15*time.Minute,
		6*time.Hour,
		bcrypt.MinCost,
	)

	return NewAuthHandler(svc)
}

func doLogin(t *testing.T, h *AuthHandler) model.TokenPair {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"coach@osoc.be","password":"s3cret"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data model.TokenPair `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestAuthHandlerLogin(t *testing.T) {
	t.Parallel()

	t.Run("returns a bearer pair", func(t *testing.T) {
		h := newAuthFixture(t)

		pair := doLogin(t, h)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)
		require.Equal(t, "Bearer", pair.TokenType)
	})

	t.Run("answers 401 for bad credentials", func(t *testing.T) {
		h := newAuthFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
			strings.NewReader(`{"email":"coach@osoc.be","password":"wrong"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("answers 400 for a broken body", func(t *testing.T) {
		h := newAuthFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		h.Login(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandlerRefresh(t *testing.T) {
	t.Parallel()

	refresh := func(h *AuthHandler, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh",
			strings.NewReader(`{"refresh_token":"`+token+`"}`))
		rec := httptest.NewRecorder()
		h.Refresh(rec, req)
		return rec
	}

	t.Run("rotates a valid refresh token", func(t *testing.T) {
		h := newAuthFixture(t)
		pair := doLogin(t, h)

		rec := refresh(h, pair.RefreshToken)
		require.Equal(t, http.StatusOK, rec.Code)

		var envelope struct {
			Data model.TokenPair `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		require.NotEqual(t, pair.RefreshToken, envelope.Data.RefreshToken)
	})

	t.Run("answers 418 for a replayed refresh token", func(t *testing.T) {
		h := newAuthFixture(t)
		pair := doLogin(t, h)

		require.Equal(t, http.StatusOK, refresh(h, pair.RefreshToken).Code)

		rec := refresh(h, pair.RefreshToken)
		require.Equal(t, http.StatusTeapot, rec.Code)
		require.Contains(t, rec.Body.String(), "REFRESH_FAILED")
	})

	t.Run("answers 418 when an access token is presented", func(t *testing.T) {
		h := newAuthFixture(t)
		pair := doLogin(t, h)

		rec := refresh(h, pair.AccessToken)
		require.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("answers 400 for a missing token", func(t *testing.T) {
		h := newAuthFixture(t)

		rec := refresh(h, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandlerLogout(t *testing.T) {
	t.Parallel()

	t.Run("logout invalidates the refresh token", func(t *testing.T) {
		h := newAuthFixture(t)
		pair := doLogin(t, h)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		rec := httptest.NewRecorder()
		h.Logout(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)

		refreshReq := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh",
			strings.NewReader(`{"refresh_token":"`+pair.RefreshToken+`"}`))
		refreshRec := httptest.NewRecorder()
		h.Refresh(refreshRec, refreshReq)
		require.Equal(t, http.StatusTeapot, refreshRec.Code)
	})

	t.Run("logout never fails, even with a stale token", func(t *testing.T) {
		h := newAuthFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		req.Header.Set("Authorization", "Bearer completely-bogus")
		rec := httptest.NewRecorder()
		h.Logout(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("logout without a header is still a 204", func(t *testing.T) {
		h := newAuthFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		rec := httptest.NewRecorder()
		h.Logout(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})
}
