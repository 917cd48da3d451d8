package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/k0lab/analysis-gate/internal/core/domain"
)

const accessCollection = "access_log"

// AccessRepository persists access records as an append-only audit log and
// serves the most recent entries back to the admin surface.
type AccessRepository struct {
	coll *mongo.Collection
}

func NewAccessRepository(db *mongo.Database) *AccessRepository {
	return &AccessRepository{coll: db.Collection(accessCollection)}
}

type mongoAccess struct {
	Subject   string `bson:"subject"`
	IsGuest   bool   `bson:"is_guest"`
	Timestamp int64  `bson:"timestamp"`
	Origin    string `bson:"origin"`
}

func (r *AccessRepository) Record(ctx context.Context, rec domain.AccessRecord) error {
	doc := mongoAccess{
		Subject:   rec.Subject,
		IsGuest:   rec.IsGuest,
		Timestamp: rec.Timestamp.Unix(),
		Origin:    rec.Origin,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert access record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (r *AccessRepository) Recent(ctx context.Context, limit int) ([]domain.AccessRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("query access log: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.AccessRecord
	for cur.Next(ctx) {
		var ma mongoAccess
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode access record: %w", err)
		}
		out = append(out, domain.AccessRecord{
			Subject:   ma.Subject,
			IsGuest:   ma.IsGuest,
			Timestamp: time.Unix(ma.Timestamp, 0).UTC(),
			Origin:    ma.Origin,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("query access log: %w", err)
	}
	return out, nil
}
