package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValidity is the fixed lifetime of a session token.
const TokenValidity = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the registered claims plus the username, so protected
// handlers never need a user lookup to know who is calling.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// TokenData is the authenticated identity decoded from a session token.
type TokenData struct {
	UserID   string
	Username string
}

// GenerateToken mints a signed HS256 session token for the given user.
func GenerateToken(userID, username string, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		Username: username,
	})
	return token.SignedString(secretKey)
}

// ParseToken validates signature and expiry and returns the identity the
// token carries. Any structural or cryptographic failure yields an error;
// callers must treat it as "unauthenticated", never as a crash.
func ParseToken(tokenString string, secretKey []byte) (*TokenData, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &TokenData{
		UserID:   claims.Subject,
		Username: claims.Username,
	}, nil
}
