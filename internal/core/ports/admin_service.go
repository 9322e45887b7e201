package ports

import (
	"context"

	"github.com/bankinfo/bank-information-system/internal/core/domain"
)

// AdminSearchInput holds the optional cross-user search parameters. All
// matching is case-insensitive substring; empty fields are ignored.
type AdminSearchInput struct {
	Username string
	BankName string
	IFSCCode string
	Email    string
}

// AdminService builds and runs cross-user account searches.
type AdminService interface {
	SearchAccounts(ctx context.Context, input AdminSearchInput) ([]domain.AdminAccountView, error)
}
