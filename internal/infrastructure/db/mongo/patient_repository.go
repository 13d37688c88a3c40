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
	"github.com/carebridge/care-platform/internal/core/ports"
)

const collectionPatients = "patients"

type PatientRepository struct {
	col *mongo.Collection
}

func NewPatientRepository(db *mongo.Database) *PatientRepository {
	return &PatientRepository{col: db.Collection(collectionPatients)}
}

func (r *PatientRepository) FindByUID(ctx context.Context, uid string) (*domain.PatientRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var record domain.PatientRecord
	err := r.col.FindOne(ctx, bson.M{"uid": uid}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, fmt.Errorf("find patient: %w", err)
	}
	return &record, nil
}

// Upsert writes the identity-derived fields plus any present patch
// sub-documents, creating the row when absent.
func (r *PatientRepository) Upsert(ctx context.Context, record *domain.PatientRecord, patch ports.PatientPatch) (*domain.PatientRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	set := bson.M{
		"email":      record.Email,
		"first_name": record.FirstName,
		"last_name":  record.LastName,
		"updated_at": now,
	}
	if patch.Bio != nil {
		set["bio"] = *patch.Bio
	}
	if patch.EmergencyContact != nil {
		set["emergency_contact"] = *patch.EmergencyContact
	}

	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID().Hex(),
			"uid":        record.UID,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var out domain.PatientRecord
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"uid": record.UID}, update, opts).Decode(&out); err != nil {
		return nil, fmt.Errorf("upsert patient: %w", err)
	}
	return &out, nil
}

// Patch applies field-presence updates to an existing record.
func (r *PatientRepository) Patch(ctx context.Context, uid string, patch ports.PatientPatch) (*domain.PatientRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.FirstName != nil {
		set["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		set["last_name"] = *patch.LastName
	}
	if patch.Bio != nil {
		set["bio"] = *patch.Bio
	}
	if patch.EmergencyContact != nil {
		set["emergency_contact"] = *patch.EmergencyContact
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out domain.PatientRecord
	err := r.col.FindOneAndUpdate(ctx, bson.M{"uid": uid}, bson.M{"$set": set}, opts).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPatientNotFound
		}
		return nil, fmt.Errorf("patch patient: %w", err)
	}
	return &out, nil
}

// EnsureIndexes creates necessary indexes on the patients collection.
func (r *PatientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "uid", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
