package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pageza/mealmate/backend/internal/types"
)

// AuthService validates HS256 tokens issued by the identity provider.
// GenerateToken exists for seeding and tests; the service never logs users in.
type AuthService struct {
	jwtSecret string
}

var _ IAuthService = (*AuthService)(nil)

func NewAuthService(jwtSecret string) *AuthService {
	return &AuthService{jwtSecret: jwtSecret}
}

// GenerateToken signs claims, defaulting the expiry to 24 hours
func (s *AuthService) GenerateToken(claims *types.TokenClaims) (string, error) {
	c := *claims
	if c.ExpiresAt == nil {
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(24 * time.Hour))
	}
	if c.IssuedAt == nil {
		c.IssuedAt = jwt.NewNumericDate(time.Now())
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &c)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.SubjectID() == "" {
		return nil, fmt.Errorf("%w: missing user_id", ErrInvalidToken)
	}
	claims.UserID = claims.SubjectID()
	return claims, nil
}
