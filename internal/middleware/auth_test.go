package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"osoc-selections-backend/internal/model"
)

type stubVerifier struct {
	claims *model.AuthClaims
	err    error
}

func (s *stubVerifier) VerifyAccess(string) (*model.AuthClaims, error) {
	return s.claims, s.err
}

func okHandler(t *testing.T, wantSubject string) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, wantSubject, claims.Subject)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	coachClaims := &model.AuthClaims{Subject: "coach@osoc.be", Roles: []string{model.RoleCoach}}

	t.Run("passes a verified bearer token through", func(t *testing.T) {
		m := NewAuthMiddleware(&stubVerifier{claims: coachClaims})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/students", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		rec := httptest.NewRecorder()

		m.RequireAuth(okHandler(t, "coach@osoc.be")).ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects requests without a header", func(t *testing.T) {
		m := NewAuthMiddleware(&stubVerifier{claims: coachClaims})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/students", nil)
		rec := httptest.NewRecorder()

		m.RequireAuth(okHandler(t, "")).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "UNAUTHORIZED")
	})

	t.Run("rejects non-bearer schemes", func(t *testing.T) {
		m := NewAuthMiddleware(&stubVerifier{claims: coachClaims})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/students", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()

		m.RequireAuth(okHandler(t, "")).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects tokens the verifier refuses", func(t *testing.T) {
		m := NewAuthMiddleware(&stubVerifier{err: model.ErrInvalidToken})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/students", nil)
		req.Header.Set("Authorization", "Bearer expired-token")
		rec := httptest.NewRecorder()

		m.RequireAuth(okHandler(t, "")).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	t.Parallel()

	protect := func(m *AuthMiddleware, roles ...string) http.Handler {
		inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		return m.RequireAuth(m.RequireRoles(roles...)(inner))
	}

	request := func() (*http.Request, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		return req, httptest.NewRecorder()
	}

	t.Run("allows a claimed role", func(t *testing.T) {
		m := NewAuthMiddleware(&stubVerifier{claims: &model.AuthClaims{
			Subject: "admin@osoc.be", Roles: []string{model.RoleAdmin},
		}})

		req, rec := request()
		protect(m, model.RoleAdmin).ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("responds 403 for a verified token lacking the role", func(t *testing.T) {
		m := NewAuthMiddleware(&stubVerifier{claims: &model.AuthClaims{
			Subject: "coach@osoc.be", Roles: []string{model.RoleCoach},
		}})

		req, rec := request()
		protect(m, model.RoleAdmin).ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), "FORBIDDEN")
	})

	t.Run("disabled accounts never pass a role gate", func(t *testing.T) {
		m := NewAuthMiddleware(&stubVerifier{claims: &model.AuthClaims{
			Subject: "old@osoc.be", Roles: []string{model.RoleDisabled},
		}})

		req, rec := request()
		protect(m, model.RoleAdmin, model.RoleCoach).ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")

	token, ok := BearerToken(req)
	require.True(t, ok)
	require.Equal(t, "abc.def.ghi", token)

	req.Header.Set("Authorization", "Bearer ")
	_, ok = BearerToken(req)
	require.False(t, ok)
}
