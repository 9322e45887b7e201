package ports

import (
	"context"

	"github.com/bankinfo/bank-information-system/internal/core/domain"
)

// AccountInput carries the bank-account fields supplied by the caller.
// The IFSC code is normalised to uppercase before validation.
type AccountInput struct {
	IFSCCode          string
	BranchName        string
	BankName          string
	AccountNumber     string
	AccountHolderName string
}

// AccountService defines use-case operations on a caller's own accounts.
// The ownerID is always the resolved caller identity, never client input.
type AccountService interface {
	Create(ctx context.Context, ownerID string, input AccountInput) (*domain.BankAccount, error)
	ListOwned(ctx context.Context, ownerID string) ([]domain.BankAccount, error)
	Update(ctx context.Context, id, ownerID string, input AccountInput) (*domain.BankAccount, error)
	Delete(ctx context.Context, id, ownerID string) error
}
