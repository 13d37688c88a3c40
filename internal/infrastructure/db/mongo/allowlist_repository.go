package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carebridge/care-platform/internal/core/domain"
)

const collectionAllowedEmails = "allowed_emails"

type AllowlistRepository struct {
	col *mongo.Collection
}

func NewAllowlistRepository(db *mongo.Database) *AllowlistRepository {
	return &AllowlistRepository{col: db.Collection(collectionAllowedEmails)}
}

func (r *AllowlistRepository) FindByEmail(ctx context.Context, email string) (*domain.AllowedEmail, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var entry domain.AllowedEmail
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAllowedEmailNotFound
		}
		return nil, fmt.Errorf("find allowed email: %w", err)
	}
	return &entry, nil
}

func (r *AllowlistRepository) List(ctx context.Context) ([]domain.AllowedEmail, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "email", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list allowed emails: %w", err)
	}
	defer cursor.Close(ctx)

	entries := make([]domain.AllowedEmail, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode allowed emails: %w", err)
	}
	return entries, nil
}

func (r *AllowlistRepository) Create(ctx context.Context, entry *domain.AllowedEmail) (*domain.AllowedEmail, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *entry
	doc.ID = primitive.NewObjectID().Hex()
	doc.CreatedAt = time.Now().UTC()

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateAllowedEmail
		}
		return nil, fmt.Errorf("insert allowed email: %w", err)
	}
	return &doc, nil
}

func (r *AllowlistRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete allowed email: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAllowedEmailNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the allowed emails collection.
func (r *AllowlistRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
