package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carebridge/care-platform/internal/core/ports"
)

const collectionCounters = "counters"

// CounterRepository mints sequences with a single findOneAndUpdate per call.
// The $inc plus upsert makes increment-and-fetch atomic server-side, so two
// concurrent callers for the same key never see the same value.
type CounterRepository struct {
	col *mongo.Collection
}

var _ ports.CounterRepository = (*CounterRepository)(nil)

func NewCounterRepository(db *mongo.Database) *CounterRepository {
	return &CounterRepository{col: db.Collection(collectionCounters)}
}

func (r *CounterRepository) Next(ctx context.Context, key string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": key},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next sequence for %s: %w", key, err)
	}
	return doc.Seq, nil
}
