package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domerrors "github.com/KothuriSowmya/blood-donation-backend/internal/domain/errors"
)

// DefaultTokenTTL is the fixed validity window for issued tokens.
const DefaultTokenTTL = 24 * time.Hour

// TokenIssuer implements ports.TokenIssuer with HS256 over a server-held
// secret. Tokens carry the user ID as subject and an expiry; there is no
// server-side revocation.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

type sessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// NewTokenIssuer creates an issuer for the given secret. An empty secret is a
// configuration error: the service must never sign with a missing key.
func NewTokenIssuer(secret, issuer string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt: signing secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), issuer: issuer, ttl: ttl}, nil
}

func (t *TokenIssuer) Issue(userID string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		UserID: userID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks the signature and expiry and returns the embedded user ID.
// All parse failures collapse into ErrInvalidToken; callers never see whether
// the token was expired, tampered with, or malformed.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return "", domerrors.ErrInvalidToken
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", domerrors.ErrInvalidToken
	}
	return claims.UserID, nil
}
