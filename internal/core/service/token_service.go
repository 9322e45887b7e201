package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bankinfo/bank-information-system/internal/core/domain"
	"github.com/bankinfo/bank-information-system/internal/core/ports"
)

const defaultTokenTTL = time.Hour

// TokenService mints and verifies HS256 session tokens. The signing secret
// is injected once at construction and is the sole trust anchor: validity is
// purely a function of signature and embedded expiry.
type TokenService struct {
	secret   string
	tokenTTL time.Duration
}

func NewTokenService(secret string, tokenTTL time.Duration) *TokenService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &TokenService{secret: secret, tokenTTL: tokenTTL}
}

// Issue produces a signed token embedding the user id and role, expiring
// tokenTTL from now.
func (s *TokenService) Issue(userID string, role domain.Role) (string, error) {
	claims := jwt.MapClaims{
		"id":   userID,
		"role": string(role),
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

// Verify parses and validates a token. Expiry is reported as
// domain.ErrTokenExpired; every other failure (bad signature, malformed
// payload, wrong algorithm, unusable claims) collapses to
// domain.ErrTokenInvalid.
func (s *TokenService) Verify(token string) (*ports.TokenClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !tkn.Valid {
		return nil, domain.ErrTokenInvalid
	}

	id, _ := claims["id"].(string)
	roleStr, _ := claims["role"].(string)
	role := domain.Role(roleStr)
	if id == "" || !role.Valid() {
		return nil, domain.ErrTokenInvalid
	}

	return &ports.TokenClaims{UserID: id, Role: role}, nil
}
