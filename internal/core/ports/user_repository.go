package ports

import (
	"context"

	"github.com/bankinfo/bank-information-system/internal/core/domain"
)

// UserRepository defines persistence for user identity records.
type UserRepository interface {
	// Create persists a new user. Duplicate email or username surfaces as
	// domain.ErrDuplicateEmail / domain.ErrDuplicateUsername.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// FindByID loads a user without the password hash. Used by the access
	// gate to confirm the token's subject still exists.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindByEmail loads a user including the password hash, for login.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindIDsMatching returns the IDs of users whose username and/or email
	// contain the given substrings (case-insensitive). Empty arguments are
	// ignored; at least one must be set.
	FindIDsMatching(ctx context.Context, username, email string) ([]string, error)

	// FindByIDs loads users by ID for owner enrichment of search results.
	FindByIDs(ctx context.Context, ids []string) ([]domain.User, error)
}
