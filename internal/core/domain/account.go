package domain

import (
	"errors"
	"regexp"
	"time"
)

var ErrAccountNotFound = errors.New("bank account not found")
var ErrDuplicateAccount = errors.New("bank account with this number already exists for this user")
var ErrNotAccountOwner = errors.New("not authorized to access this bank account")

// IFSCPattern matches a branch code: 4 letters, a literal zero, 6
// alphanumerics. Codes are normalised to uppercase before matching.
var IFSCPattern = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)

// AccountNumberPattern matches 9 to 18 digits, digits only.
var AccountNumberPattern = regexp.MustCompile(`^[0-9]{9,18}$`)

// BankAccount is a personal bank-account record. A record has exactly one
// owner for its lifetime; (OwnerID, AccountNumber) is unique.
type BankAccount struct {
	ID                string    `json:"id"`
	OwnerID           string    `json:"user"`
	IFSCCode          string    `json:"ifscCode"`
	BranchName        string    `json:"branchName"`
	BankName          string    `json:"bankName"`
	AccountNumber     string    `json:"accountNumber"`
	AccountHolderName string    `json:"accountHolderName"`
	CreatedAt         time.Time `json:"createdAt"`
}

// AccountOwner is the subset of user fields admin search results carry for
// each record's owner.
type AccountOwner struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AdminAccountView is a bank account enriched with its owner's identity,
// returned by the cross-user admin search.
type AdminAccountView struct {
	BankAccount
	Owner AccountOwner `json:"owner"`
}
