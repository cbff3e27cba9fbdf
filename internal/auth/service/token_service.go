package service

//go:generate mockgen -destination=../../mocks/mock_token_manager.go -package=mocks github.com/Shaurya8425/Blogs/internal/auth/service TokenManager

import (
	"errors"
	"fmt"
	"time"

	autherror "github.com/Shaurya8425/Blogs/internal/errors"
	"github.com/golang-jwt/jwt/v5"
)

type TokenManager interface {
	Issue(userID, email string, name *string) (string, error)
	Verify(tokenString string) (*SessionClaims, error)
}

// SessionClaims is the fixed shape embedded in a session token. Name is the
// only optional field.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID string  `json:"user_id"`
	Email  string  `json:"email"`
	Name   *string `json:"name,omitempty"`
}

type TokenService struct {
	Secret string
	Expiry time.Duration

	now func() time.Time
}

func NewTokenService(secret string, expiryHours int) *TokenService {
	return &TokenService{
		Secret: secret,
		Expiry: time.Duration(expiryHours) * time.Hour,
		now:    time.Now,
	}
}

func (ts *TokenService) Issue(userID, email string, name *string) (string, error) {
	if ts.Secret == "" {
		return "", autherror.ErrSecretNotConfigured
	}

	now := ts.now()
	claims := SessionClaims{
		UserID: userID,
		Email:  email,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.Expiry)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.Secret))
	if err != nil {
		return "", err
	}

	return token, nil
}

// Verify parses and validates a session token. The returned errors stay
// distinct (malformed vs expired vs bad signature) so callers can log the
// real cause; the HTTP layer collapses them into one generic message.
func (ts *TokenService) Verify(tokenString string) (*SessionClaims, error) {
	if ts.Secret == "" {
		return nil, autherror.ErrSecretNotConfigured
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.Secret), nil
	}, jwt.WithTimeFunc(ts.now))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, autherror.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, autherror.ErrTokenMalformed
		default:
			return nil, autherror.ErrTokenInvalid
		}
	}

	if !token.Valid || claims.UserID == "" || claims.Email == "" {
		return nil, autherror.ErrTokenMalformed
	}

	return claims, nil
}
