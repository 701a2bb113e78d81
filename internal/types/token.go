package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims of an identity provider token
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname,omitempty"`
	Picture  string `json:"picture,omitempty"`
}

// SubjectID falls back to the registered "sub" claim when user_id is absent
func (c *TokenClaims) SubjectID() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.RegisteredClaims.Subject
}
