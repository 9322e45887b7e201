package ports

import (
	"context"

	"github.com/bankinfo/bank-information-system/internal/core/domain"
)

// AccountUpdate carries the mutable fields of a bank account for a full
// replace. Values are validated and normalised before reaching the repository.
type AccountUpdate struct {
	IFSCCode          string
	BranchName        string
	BankName          string
	AccountNumber     string
	AccountHolderName string
}

// AccountFilter is the typed predicate the admin search builds. BankName and
// IFSCCode are case-insensitive substring matchers combined with AND.
// OwnerIDs, when non-nil, constrains results to accounts owned by one of the
// listed users.
type AccountFilter struct {
	BankName string
	IFSCCode string
	OwnerIDs []string
}

// AccountRepository defines persistence for bank-account records.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.BankAccount) (*domain.BankAccount, error)

	// FindByOwner returns the owner's accounts, newest first.
	FindByOwner(ctx context.Context, ownerID string) ([]domain.BankAccount, error)

	// ExistsByOwnerAndNumber reports whether the owner already holds an
	// account with the given number.
	ExistsByOwnerAndNumber(ctx context.Context, ownerID, accountNumber string) (bool, error)

	// UpdateOwned applies changes to the account only when both the id and
	// the owner match, in a single conditional write. A miss is classified
	// as domain.ErrAccountNotFound or domain.ErrNotAccountOwner.
	UpdateOwned(ctx context.Context, id, ownerID string, changes AccountUpdate) (*domain.BankAccount, error)

	// DeleteOwned removes the account only when both the id and the owner
	// match, with the same miss classification as UpdateOwned.
	DeleteOwned(ctx context.Context, id, ownerID string) error

	// Search returns accounts matching the filter, newest first.
	Search(ctx context.Context, filter AccountFilter) ([]domain.BankAccount, error)
}
