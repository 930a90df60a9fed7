package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"osoc-selections-backend/internal/model"
)

func newTestService(t *testing.T) *TokenService {
	t.Helper()

	secret, err := GenerateSecret()
	require.NoError(t, err)

	return NewTokenService(secret, "osoc-selections")
}

func TestTokenServiceIssueAndVerify(t *testing.T) {
	t.Parallel()

	t.Run("round-trips subject and roles", func(t *testing.T) {
		svc := newTestService(t)

		token, err := svc.Issue("coach@osoc.be", []string{model.RoleCoach}, 5*time.Minute, false)
		require.NoError(t, err)

		claims, err := svc.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "coach@osoc.be", claims.Subject)
		require.Equal(t, []string{model.RoleCoach}, claims.Roles)
		require.False(t, claims.IsRefresh)
		require.NotEmpty(t, claims.TokenID)
	})

	t.Run("marks refresh tokens", func(t *testing.T) {
		svc := newTestService(t)

		token, err := svc.Issue("coach@osoc.be", []string{model.RoleCoach}, time.Hour, true)
		require.NoError(t, err)

		claims, err := svc.Verify(token)
		require.NoError(t, err)
		require.True(t, claims.IsRefresh)
	})

	t.Run("rejects empty subject", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.Issue("", []string{model.RoleCoach}, time.Minute, false)
		require.Error(t, err)
	})

	t.Run("rejects negative ttl tokens", func(t *testing.T) {
		svc := newTestService(t)

		token, err := svc.Issue("coach@osoc.be", []string{model.RoleCoach}, -time.Minute, false)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("rejects tokens after their ttl elapses", func(t *testing.T) {
		svc := newTestService(t)

		current := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return current }

		token, err := svc.Issue("a@b.com", []string{"ROLE_COACH"}, 5*time.Minute, false)
		require.NoError(t, err)

		claims, err := svc.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "a@b.com", claims.Subject)
		require.Equal(t, []string{"ROLE_COACH"}, claims.Roles)

		current = current.Add(6 * time.Minute)

		_, err = svc.Verify(token)
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})
}

func TestTokenServiceVerifyRejectsForgeries(t *testing.T) {
	t.Parallel()

	t.Run("rejects malformed tokens", func(t *testing.T) {
		svc := newTestService(t)

		_, err := svc.Verify("not.a.token")
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("rejects tokens signed with a different secret", func(t *testing.T) {
		issuer := newTestService(t)
		verifier := newTestService(t)

		token, err := issuer.Issue("coach@osoc.be", []string{model.RoleCoach}, time.Minute, false)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("rejects the none signing method", func(t *testing.T) {
		svc := newTestService(t)

		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub":     "coach@osoc.be",
			"refresh": false,
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})

	t.Run("rejects tokens without a subject", func(t *testing.T) {
		secret, err := GenerateSecret()
		require.NoError(t, err)
		svc := NewTokenService(secret, "osoc-selections")

		anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"refresh": false,
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		token, err := anonymous.SignedString(secret)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		require.ErrorIs(t, err, model.ErrInvalidToken)
	})
}

func TestGenerateSecret(t *testing.T) {
	t.Parallel()

	first, err := GenerateSecret()
	require.NoError(t, err)
	require.Len(t, first, secretLength)

	second, err := GenerateSecret()
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestVerifyErrorIsComparable(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	_, err := svc.Verify("garbage")
	require.True(t, errors.Is(err, model.ErrInvalidToken))
}
