package model

import "time"

// AuthClaims is the decoded payload of a verified token. Subject is the
// account email; Roles carries the role claims embedded at issue time.
type AuthClaims struct {
	Subject   string    `json:"sub"`
	Roles     []string  `json:"roles"`
	IsRefresh bool      `json:"refresh"`
	TokenID   string    `json:"jti"`
	ExpiresAt time.Time `json:"exp"`
}

// HasRole reports whether the claims carry the given role.
func (c *AuthClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// TokenPair is the login/refresh response payload. User is filled on
// login only; a renewal is derived purely from the presented claims.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"`
	User         *AuthUser `json:"user,omitempty"`
}
