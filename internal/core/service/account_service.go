package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bankinfo/bank-information-system/internal/core/domain"
	"github.com/bankinfo/bank-information-system/internal/core/ports"
)

// AccountService implements bank-account CRUD for a record's owner. The
// ownerID always comes from the resolved caller identity; ownership checks
// on mutation are pushed down into single conditional writes so no
// read-then-act window exists.
type AccountService struct {
	accounts ports.AccountRepository
	logger   zerolog.Logger
}

func NewAccountService(accounts ports.AccountRepository, logger zerolog.Logger) *AccountService {
	return &AccountService{accounts: accounts, logger: logger}
}

// Create stores a new account for the owner. A duplicate account number for
// the same owner fails with domain.ErrDuplicateAccount; the same number
// under a different owner is allowed.
func (s *AccountService) Create(ctx context.Context, ownerID string, input ports.AccountInput) (*domain.BankAccount, error) {
	input = normalizeInput(input)

	exists, err := s.accounts.ExistsByOwnerAndNumber(ctx, ownerID, input.AccountNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateAccount
	}

	account := &domain.BankAccount{
		OwnerID:           ownerID,
		IFSCCode:          input.IFSCCode,
		BranchName:        input.BranchName,
		BankName:          input.BankName,
		AccountNumber:     input.AccountNumber,
		AccountHolderName: input.AccountHolderName,
		CreatedAt:         time.Now().UTC(),
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", created.ID).Str("owner_id", ownerID).Msg("bank account created")

	return created, nil
}

// ListOwned returns the caller's own accounts, newest first.
func (s *AccountService) ListOwned(ctx context.Context, ownerID string) ([]domain.BankAccount, error) {
	return s.accounts.FindByOwner(ctx, ownerID)
}

// Update replaces the mutable fields of an owned account. A non-owner
// caller gets domain.ErrNotAccountOwner, a missing record
// domain.ErrAccountNotFound.
func (s *AccountService) Update(ctx context.Context, id, ownerID string, input ports.AccountInput) (*domain.BankAccount, error) {
	input = normalizeInput(input)

	updated, err := s.accounts.UpdateOwned(ctx, id, ownerID, ports.AccountUpdate{
		IFSCCode:          input.IFSCCode,
		BranchName:        input.BranchName,
		BankName:          input.BankName,
		AccountNumber:     input.AccountNumber,
		AccountHolderName: input.AccountHolderName,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", id).Str("owner_id", ownerID).Msg("bank account updated")

	return updated, nil
}

// Delete removes an owned account, with the same miss classification as
// Update.
func (s *AccountService) Delete(ctx context.Context, id, ownerID string) error {
	if err := s.accounts.DeleteOwned(ctx, id, ownerID); err != nil {
		return err
	}

	s.logger.Info().Str("account_id", id).Str("owner_id", ownerID).Msg("bank account removed")

	return nil
}

// normalizeInput trims surrounding whitespace and uppercases the IFSC code,
// mirroring how the fields are stored.
func normalizeInput(input ports.AccountInput) ports.AccountInput {
	return ports.AccountInput{
		IFSCCode:          strings.ToUpper(strings.TrimSpace(input.IFSCCode)),
		BranchName:        strings.TrimSpace(input.BranchName),
		BankName:          strings.TrimSpace(input.BankName),
		AccountNumber:     strings.TrimSpace(input.AccountNumber),
		AccountHolderName: strings.TrimSpace(input.AccountHolderName),
	}
}
