package ports

import (
	"context"

	"github.com/bankinfo/bank-information-system/internal/core/domain"
)

// AuthService implements credential issuance and verification.
type AuthService interface {
	// Register creates a user with role "user" and returns a fresh session
	// token alongside the created record. Email uniqueness is checked
	// strictly before username uniqueness.
	Register(ctx context.Context, username, email, password string) (string, *domain.User, error)

	// Login verifies credentials and issues a session token. Unknown email
	// and wrong password fail identically with domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// TokenClaims is the verified content of a session token.
type TokenClaims struct {
	UserID string
	Role   domain.Role
}

// TokenIssuer mints signed, self-contained session tokens.
type TokenIssuer interface {
	Issue(userID string, role domain.Role) (string, error)
}

// TokenVerifier validates a session token purely from its signature and
// embedded expiry; no revocation list is consulted.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}
