package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMissing indicates the request carried no bearer credential.
	ErrTokenMissing = errors.New("no token provided")
	// ErrTokenMalformed indicates the Authorization header did not parse as
	// a bearer credential.
	ErrTokenMalformed = errors.New("token format is invalid")
	// ErrTokenInvalid covers a bad signature, a tampered payload and an
	// expired token alike.
	ErrTokenInvalid = errors.New("invalid token")
)

// Identity is the verified caller identity decoded from a bearer token. It
// is scoped to a single request and never persisted.
type Identity struct {
	UserID int64
	Email  string
}

// Claims carried by issued tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// TokenService issues and validates signed identity tokens. The signing
// secret is process-wide configuration; the service holds no other state, so
// it is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl}
}

// Issue produces a signed token for the given user, valid for the service's
// configured window from now.
func (s *TokenService) Issue(userID int64, name, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: userID,
		Name:   name,
		Email:  email,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks signature and expiry at call time and returns the decoded
// identity. Expiry is judged against the clock now, not at issuance.
func (s *TokenService) Validate(tokenString string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrTokenInvalid
	}

	return Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

// FromBearer extracts the raw token from an Authorization header value of
// the form "Bearer <token>".
func FromBearer(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", ErrTokenMissing
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrTokenMalformed
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrTokenMalformed
	}
	return token, nil
}
