package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bankinfo/bank-information-system/internal/core/domain"
	"github.com/bankinfo/bank-information-system/internal/core/ports"
)

// AdminService implements the cross-user account search. Account-side
// filters apply directly; user-side filters (username, email) are resolved
// to an owner-id set first, and an empty resolution short-circuits to an
// empty result without touching the accounts collection.
type AdminService struct {
	accounts ports.AccountRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewAdminService(accounts ports.AccountRepository, users ports.UserRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{accounts: accounts, users: users, logger: logger}
}

// SearchAccounts runs the compound search and enriches each hit with its
// owner's username and email. Results are newest first.
func (s *AdminService) SearchAccounts(ctx context.Context, input ports.AdminSearchInput) ([]domain.AdminAccountView, error) {
	filter := ports.AccountFilter{
		BankName: strings.TrimSpace(input.BankName),
		IFSCCode: strings.TrimSpace(input.IFSCCode),
	}

	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if username != "" || email != "" {
		ownerIDs, err := s.users.FindIDsMatching(ctx, username, email)
		if err != nil {
			return nil, err
		}
		if len(ownerIDs) == 0 {
			return []domain.AdminAccountView{}, nil
		}
		filter.OwnerIDs = ownerIDs
	}

	accounts, err := s.accounts.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	return s.enrichWithOwners(ctx, accounts)
}

func (s *AdminService) enrichWithOwners(ctx context.Context, accounts []domain.BankAccount) ([]domain.AdminAccountView, error) {
	seen := make(map[string]struct{}, len(accounts))
	ownerIDs := make([]string, 0, len(accounts))
	for _, acc := range accounts {
		if _, ok := seen[acc.OwnerID]; ok {
			continue
		}
		seen[acc.OwnerID] = struct{}{}
		ownerIDs = append(ownerIDs, acc.OwnerID)
	}

	byID := make(map[string]domain.User, len(ownerIDs))
	if len(ownerIDs) > 0 {
		owners, err := s.users.FindByIDs(ctx, ownerIDs)
		if err != nil {
			return nil, err
		}
		for _, u := range owners {
			byID[u.ID] = u
		}
	}

	views := make([]domain.AdminAccountView, 0, len(accounts))
	for _, acc := range accounts {
		view := domain.AdminAccountView{BankAccount: acc}
		if owner, ok := byID[acc.OwnerID]; ok {
			view.Owner = domain.AccountOwner{Username: owner.Username, Email: owner.Email}
		}
		views = append(views, view)
	}
	return views, nil
}
