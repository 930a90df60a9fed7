package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"osoc-selections-backend/internal/model"
)

// TokenService issues and verifies HS256 signed tokens. Access and
// refresh tokens share the same claim shape and are told apart by the
// boolean "refresh" claim.
type TokenService struct {
	signingKey []byte
	issuer     string
	now        func() time.Time
}

func NewTokenService(signingKey []byte, issuer string) *TokenService {
	return &TokenService{
		signingKey: signingKey,
		issuer:     issuer,
		now:        time.Now,
	}
}

// Issue signs a token for the given subject carrying the role claims.
// A negative ttl produces an already-expired token; verification of
// such a token always fails.
func (s *TokenService) Issue(subject string, roles []string, ttl time.Duration, refresh bool) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("issue token: subject must not be empty")
	}

	now := s.now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":     s.issuer,
		"sub":     subject,
		"roles":   roles,
		"refresh": refresh,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify checks signature and expiry and decodes the claims. Every
// failure mode (malformed structure, signature mismatch, expiry,
// unexpected signing method) surfaces as model.ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unreadable claims", model.ErrInvalidToken)
	}

	claims := &model.AuthClaims{}
	claims.Subject, _ = claimsMap["sub"].(string)
	claims.TokenID, _ = claimsMap["jti"].(string)
	claims.IsRefresh, _ = claimsMap["refresh"].(bool)
	claims.Roles = stringSlice(claimsMap["roles"])

	if exp, expErr := claimsMap.GetExpirationTime(); expErr == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", model.ErrInvalidToken)
	}

	return claims, nil
}

func stringSlice(raw any) []string {
	values, ok := raw.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}

	return out
}
