package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bankinfo/bank-information-system/internal/core/domain"
	"github.com/bankinfo/bank-information-system/internal/core/ports"
)

func seedAdminFixtures(users *stubUserRepo, accounts *stubAccountRepo) (alice, bob *domain.User) {
	alice = users.add("alice", "alice@example.com", "pw", domain.RoleUser)
	bob = users.add("bob", "bob@other.org", "pw", domain.RoleUser)

	accounts.accounts["acc_1"] = &domain.BankAccount{
		ID: "acc_1", OwnerID: alice.ID, BankName: "State Bank", IFSCCode: "SBIN0000001",
		AccountNumber: "111111111", CreatedAt: time.Now().Add(-2 * time.Hour),
	}
	accounts.accounts["acc_2"] = &domain.BankAccount{
		ID: "acc_2", OwnerID: alice.ID, BankName: "City Credit", IFSCCode: "CITI0000002",
		AccountNumber: "222222222", CreatedAt: time.Now().Add(-time.Hour),
	}
	accounts.accounts["acc_3"] = &domain.BankAccount{
		ID: "acc_3", OwnerID: bob.ID, BankName: "State Bank", IFSCCode: "SBIN0000003",
		AccountNumber: "333333333", CreatedAt: time.Now(),
	}
	return alice, bob
}

func TestAdminService_Search_ByUsername(t *testing.T) {
	users := newStubUserRepo()
	accounts := newStubAccountRepo()
	alice, _ := seedAdminFixtures(users, accounts)
	svc := NewAdminService(accounts, users, zerolog.Nop())

	views, err := svc.SearchAccounts(context.Background(), ports.AdminSearchInput{Username: "ALI"})
	if err != nil {
		t.Fatalf("SearchAccounts returned error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 results, got %d", len(views))
	}
	for _, v := range views {
		if v.OwnerID != alice.ID {
			t.Fatalf("result %s not owned by alice", v.ID)
		}
		if v.Owner.Username != "alice" || v.Owner.Email != "alice@example.com" {
			t.Fatalf("missing owner enrichment: %+v", v.Owner)
		}
	}
}

func TestAdminService_Search_NoMatchingUserShortCircuits(t *testing.T) {
	users := newStubUserRepo()
	accounts := newStubAccountRepo()
	seedAdminFixtures(users, accounts)
	svc := NewAdminService(accounts, users, zerolog.Nop())

	views, err := svc.SearchAccounts(context.Background(), ports.AdminSearchInput{Username: "nobody"})
	if err != nil {
		t.Fatalf("SearchAccounts returned error: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected empty result, got %d", len(views))
	}
	if accounts.searchCalls != 0 {
		t.Fatalf("account search ran despite empty user resolution")
	}
}

func TestAdminService_Search_AccountFiltersCombineWithAnd(t *testing.T) {
	users := newStubUserRepo()
	accounts := newStubAccountRepo()
	seedAdminFixtures(users, accounts)
	svc := NewAdminService(accounts, users, zerolog.Nop())

	views, err := svc.SearchAccounts(context.Background(), ports.AdminSearchInput{
		BankName: "state",
		IFSCCode: "sbin0000003",
	})
	if err != nil {
		t.Fatalf("SearchAccounts returned error: %v", err)
	}
	if len(views) != 1 || views[0].ID != "acc_3" {
		t.Fatalf("expected exactly acc_3, got %+v", views)
	}
	if views[0].Owner.Username != "bob" {
		t.Fatalf("expected owner bob, got %s", views[0].Owner.Username)
	}
}

func TestAdminService_Search_UserFilterConstrainsAccountFilters(t *testing.T) {
	users := newStubUserRepo()
	accounts := newStubAccountRepo()
	alice, _ := seedAdminFixtures(users, accounts)
	svc := NewAdminService(accounts, users, zerolog.Nop())

	views, err := svc.SearchAccounts(context.Background(), ports.AdminSearchInput{
		Email:    "example.com",
		BankName: "state",
	})
	if err != nil {
		t.Fatalf("SearchAccounts returned error: %v", err)
	}
	if len(views) != 1 || views[0].OwnerID != alice.ID {
		t.Fatalf("expected only alice's State Bank account, got %+v", views)
	}
}

func TestAdminService_Search_NoFiltersReturnsAllNewestFirst(t *testing.T) {
	users := newStubUserRepo()
	accounts := newStubAccountRepo()
	seedAdminFixtures(users, accounts)
	svc := NewAdminService(accounts, users, zerolog.Nop())

	views, err := svc.SearchAccounts(context.Background(), ports.AdminSearchInput{})
	if err != nil {
		t.Fatalf("SearchAccounts returned error: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 results, got %d", len(views))
	}
	if views[0].ID != "acc_3" || views[2].ID != "acc_1" {
		t.Fatalf("expected newest first ordering, got %s ... %s", views[0].ID, views[2].ID)
	}
	if users.matchCalls != 0 {
		t.Fatalf("user resolution ran without user-side filters")
	}
}

func TestAdminService_Search_WhitespaceFiltersIgnored(t *testing.T) {
	users := newStubUserRepo()
	accounts := newStubAccountRepo()
	seedAdminFixtures(users, accounts)
	svc := NewAdminService(accounts, users, zerolog.Nop())

	views, err := svc.SearchAccounts(context.Background(), ports.AdminSearchInput{Username: "   "})
	if err != nil {
		t.Fatalf("SearchAccounts returned error: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("whitespace filter should be ignored, got %d results", len(views))
	}
	if users.matchCalls != 0 {
		t.Fatalf("user resolution ran for whitespace-only filter")
	}
}
