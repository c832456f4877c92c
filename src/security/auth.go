// backend/src/security/auth.go
package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService issues and validates the portal's stateless session tokens.
// The token subject is the citizen's Discord user ID; nothing else is stored
// server-side.
type AuthService struct {
	secret []byte
	expiry time.Duration
}

func NewAuthService(jwtSecret string, expiry time.Duration) *AuthService {
	return &AuthService{
		secret: []byte(jwtSecret),
		expiry: expiry,
	}
}

// GenerateToken creates a signed session token for the given Discord user ID.
func (s *AuthService) GenerateToken(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("cannot issue token for empty user id")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		Issuer:    "citizen-portal",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken parses a session token and returns the Discord user ID it was
// issued for.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid session token")
	}
	return claims.Subject, nil
}
