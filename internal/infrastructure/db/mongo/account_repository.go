package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bankinfo/bank-information-system/internal/core/domain"
	"github.com/bankinfo/bank-information-system/internal/core/ports"
)

const accountsCollection = "bank_accounts"

// AccountRepository persists bank-account records in MongoDB.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountsCollection)}
}

type mongoAccount struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID           primitive.ObjectID `bson:"owner_id"`
	IFSCCode          string             `bson:"ifsc_code"`
	BranchName        string             `bson:"branch_name"`
	BankName          string             `bson:"bank_name"`
	AccountNumber     string             `bson:"account_number"`
	AccountHolderName string             `bson:"account_holder_name"`
	CreatedAt         time.Time          `bson:"created_at"`
}

func (ma *mongoAccount) toDomain() *domain.BankAccount {
	return &domain.BankAccount{
		ID:                ma.ID.Hex(),
		OwnerID:           ma.OwnerID.Hex(),
		IFSCCode:          ma.IFSCCode,
		BranchName:        ma.BranchName,
		BankName:          ma.BankName,
		AccountNumber:     ma.AccountNumber,
		AccountHolderName: ma.AccountHolderName,
		CreatedAt:         ma.CreatedAt,
	}
}

// Create inserts a new account. The compound unique index on
// (owner_id, account_number) backstops the service's duplicate pre-check.
func (r *AccountRepository) Create(ctx context.Context, account *domain.BankAccount) (*domain.BankAccount, error) {
	ownerOID, err := primitive.ObjectIDFromHex(account.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAccount{
		OwnerID:           ownerOID,
		IFSCCode:          account.IFSCCode,
		BranchName:        account.BranchName,
		BankName:          account.BankName,
		AccountNumber:     account.AccountNumber,
		AccountHolderName: account.AccountHolderName,
		CreatedAt:         account.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("insert bank account: %w", err)
	}

	created := *account
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// FindByOwner returns the owner's accounts, newest first.
func (r *AccountRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.BankAccount, error) {
	ownerOID, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerOID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find accounts by owner: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeAccounts(ctx, cursor)
}

// ExistsByOwnerAndNumber reports whether the owner already holds an account
// with the given number.
func (r *AccountRepository) ExistsByOwnerAndNumber(ctx context.Context, ownerID, accountNumber string) (bool, error) {
	ownerOID, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"owner_id": ownerOID, "account_number": accountNumber}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count accounts: %w", err)
	}
	return n > 0, nil
}

// UpdateOwned applies changes only when both the id and the owner match, in
// a single conditional write: a non-owner request can never race past the
// ownership check. On a miss the record is re-read by id purely to decide
// between "not found" and "not owner" for the response.
func (r *AccountRepository) UpdateOwned(ctx context.Context, id, ownerID string, changes ports.AccountUpdate) (*domain.BankAccount, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}
	ownerOID, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrNotAccountOwner
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"ifsc_code":           changes.IFSCCode,
		"branch_name":         changes.BranchName,
		"bank_name":           changes.BankName,
		"account_number":      changes.AccountNumber,
		"account_holder_name": changes.AccountHolderName,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ma mongoAccount
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid, "owner_id": ownerOID}, update, opts).Decode(&ma)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateAccount
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.classifyMiss(ctx, oid)
		}
		return nil, fmt.Errorf("update bank account: %w", err)
	}
	return ma.toDomain(), nil
}

// DeleteOwned removes the account only when both the id and the owner
// match, with the same miss classification as UpdateOwned.
func (r *AccountRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}
	ownerOID, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return domain.ErrNotAccountOwner
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "owner_id": ownerOID})
	if err != nil {
		return fmt.Errorf("delete bank account: %w", err)
	}
	if res.DeletedCount == 0 {
		return r.classifyMiss(ctx, oid)
	}
	return nil
}

// classifyMiss distinguishes a missing record from an ownership mismatch.
// Existence is leaked to any authenticated caller; ownership is not.
func (r *AccountRepository) classifyMiss(ctx context.Context, oid primitive.ObjectID) error {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("classify account miss: %w", err)
	}
	if n > 0 {
		return domain.ErrNotAccountOwner
	}
	return domain.ErrAccountNotFound
}

// Search returns accounts matching the typed filter, newest first. Substring
// matchers are regex-escaped and case-insensitive; a non-nil OwnerIDs
// constrains results to those owners.
func (r *AccountRepository) Search(ctx context.Context, filter ports.AccountFilter) ([]domain.BankAccount, error) {
	query := bson.M{}
	if filter.BankName != "" {
		query["bank_name"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.BankName), Options: "i"}
	}
	if filter.IFSCCode != "" {
		query["ifsc_code"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.IFSCCode), Options: "i"}
	}
	if filter.OwnerIDs != nil {
		oids := make([]primitive.ObjectID, 0, len(filter.OwnerIDs))
		for _, id := range filter.OwnerIDs {
			if oid, err := primitive.ObjectIDFromHex(id); err == nil {
				oids = append(oids, oid)
			}
		}
		query["owner_id"] = bson.M{"$in": oids}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("search bank accounts: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeAccounts(ctx, cursor)
}

func decodeAccounts(ctx context.Context, cursor *mongo.Cursor) ([]domain.BankAccount, error) {
	accounts := []domain.BankAccount{}
	for cursor.Next(ctx) {
		var ma mongoAccount
		if err := cursor.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode bank account: %w", err)
		}
		accounts = append(accounts, *ma.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate bank accounts: %w", err)
	}
	return accounts, nil
}

// EnsureIndexes creates the indexes on the accounts collection: a compound
// unique index enforcing one account number per owner, and the sort index
// for newest-first listings.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "account_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("owner_account_number_unique"),
		},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
