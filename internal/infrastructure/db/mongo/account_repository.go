package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/k0lab/analysis-gate/internal/core/domain"
	"github.com/k0lab/analysis-gate/internal/core/ports"
)

const accountCollection = "accounts"

// AccountRepository reads the account registry from MongoDB. The gate treats
// the registry as read-only: writes happen through a separate management
// surface, never through this core.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountCollection)}
}

type mongoAccount struct {
	Username       string `bson:"username"`
	PasswordDigest string `bson:"password_digest"`
	DisplayName    string `bson:"display_name"`
	Role           string `bson:"role"`
	Email          string `bson:"email,omitempty"`
}

func (r *AccountRepository) Lookup(ctx context.Context, username string) (*domain.AccountRecord, error) {
	var ma mongoAccount
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ports.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return toAccountRecord(ma)
}

func (r *AccountRepository) List(ctx context.Context) ([]domain.AccountRecord, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "username", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.AccountRecord
	for cur.Next(ctx) {
		var ma mongoAccount
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode account: %w", err)
		}
		rec, err := toAccountRecord(ma)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return out, nil
}

func toAccountRecord(ma mongoAccount) (*domain.AccountRecord, error) {
	role, err := domain.ParseRole(ma.Role)
	if err != nil {
		// A stored role outside the enum is registry corruption, surfaced
		// loudly rather than mapped to a guest default.
		return nil, fmt.Errorf("account %q: %w", ma.Username, err)
	}
	return &domain.AccountRecord{
		Username:       ma.Username,
		PasswordDigest: ma.PasswordDigest,
		DisplayName:    ma.DisplayName,
		Role:           role,
		Email:          ma.Email,
	}, nil
}
