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

const collectionMembers = "department_members"

type MemberRepository struct {
	col *mongo.Collection
}

func NewMemberRepository(db *mongo.Database) *MemberRepository {
	return &MemberRepository{col: db.Collection(collectionMembers)}
}

func (r *MemberRepository) Create(ctx context.Context, member *domain.DepartmentMember) (*domain.DepartmentMember, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := *member
	doc.ID = primitive.NewObjectID().Hex()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateMember
		}
		return nil, fmt.Errorf("insert member: %w", err)
	}
	return &doc, nil
}

func (r *MemberRepository) Find(ctx context.Context, departmentID, uid string) (*domain.DepartmentMember, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m domain.DepartmentMember
	err := r.col.FindOne(ctx, bson.M{"department_id": departmentID, "uid": uid}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("find member: %w", err)
	}
	return &m, nil
}

func (r *MemberRepository) List(ctx context.Context, departmentID string, page, limit int) ([]domain.DepartmentMember, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"department_id": departmentID}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count members: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list members: %w", err)
	}
	defer cursor.Close(ctx)

	members := make([]domain.DepartmentMember, 0, limit)
	if err := cursor.All(ctx, &members); err != nil {
		return nil, 0, fmt.Errorf("decode members: %w", err)
	}
	return members, total, nil
}

func (r *MemberRepository) UpdateRole(ctx context.Context, departmentID, uid string, role domain.MemberRole) (*domain.DepartmentMember, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"role": role, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var m domain.DepartmentMember
	err := r.col.FindOneAndUpdate(ctx, bson.M{"department_id": departmentID, "uid": uid}, update, opts).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("update member role: %w", err)
	}
	return &m, nil
}

func (r *MemberRepository) Delete(ctx context.Context, departmentID, uid string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"department_id": departmentID, "uid": uid})
	if err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the members collection. The
// compound unique index backs the one-row-per-(department, identity) rule.
func (r *MemberRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "department_id", Value: 1}, {Key: "uid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "uid", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
