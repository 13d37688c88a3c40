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

const collectionInvitations = "invitations"

type InvitationRepository struct {
	col *mongo.Collection
}

func NewInvitationRepository(db *mongo.Database) *InvitationRepository {
	return &InvitationRepository{col: db.Collection(collectionInvitations)}
}

func (r *InvitationRepository) Create(ctx context.Context, inv *domain.Invitation) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *inv
	doc.ID = primitive.NewObjectID().Hex()
	doc.CreatedAt = time.Now().UTC()

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert invitation: %w", err)
	}
	return &doc, nil
}

func (r *InvitationRepository) FindByHash(ctx context.Context, tokenHash string) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var inv domain.Invitation
	err := r.col.FindOne(ctx, bson.M{"token_hash": tokenHash}).Decode(&inv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("find invitation: %w", err)
	}
	return &inv, nil
}

// ConsumeByHash deletes and returns the invitation in one findOneAndDelete.
// Under a race exactly one caller receives the row; the rest observe
// domain.ErrInvitationNotFound.
func (r *InvitationRepository) ConsumeByHash(ctx context.Context, tokenHash string) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var inv domain.Invitation
	err := r.col.FindOneAndDelete(ctx, bson.M{"token_hash": tokenHash}).Decode(&inv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("consume invitation: %w", err)
	}
	return &inv, nil
}

// EnsureIndexes creates necessary indexes on the invitations collection.
func (r *InvitationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "token_hash", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
