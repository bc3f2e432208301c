package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guardianlink/portal/internal/core/domain"
)

const collectionLinkedUsers = "linked_users"

type LinkedUserRepository struct {
	col *mongo.Collection
}

func NewLinkedUserRepository(db *mongo.Database) *LinkedUserRepository {
	return &LinkedUserRepository{col: db.Collection(collectionLinkedUsers)}
}

type mongoLinkedUser struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	GuardianID      string             `bson:"user_id"`
	Name            string             `bson:"linked_user_name"`
	RelationType    string             `bson:"relation_type"`
	Age             *int               `bson:"age,omitempty"`
	Phone           string             `bson:"phone_number,omitempty"`
	PriorityLevel   int                `bson:"priority_level"`
	TrackingEnabled bool               `bson:"tracking_enabled"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (r *LinkedUserRepository) Create(ctx context.Context, lu *domain.LinkedUser) (*domain.LinkedUser, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoLinkedUser{
		GuardianID:      lu.GuardianID,
		Name:            lu.Name,
		RelationType:    string(lu.RelationType),
		Age:             lu.Age,
		Phone:           lu.Phone,
		PriorityLevel:   lu.PriorityLevel,
		TrackingEnabled: lu.TrackingEnabled,
		CreatedAt:       lu.CreatedAt,
		UpdatedAt:       lu.UpdatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert linked user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return toDomainLinkedUser(doc), nil
}

// ListByGuardian returns linked users ordered by priority, then name.
func (r *LinkedUserRepository) ListByGuardian(ctx context.Context, guardianID string) ([]*domain.LinkedUser, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "priority_level", Value: 1},
		{Key: "linked_user_name", Value: 1},
	})
	cur, err := r.col.Find(ctx, bson.M{"user_id": guardianID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list linked users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoLinkedUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode linked users: %w", err)
	}

	out := make([]*domain.LinkedUser, len(docs))
	for i, d := range docs {
		out[i] = toDomainLinkedUser(d)
	}
	return out, nil
}

func (r *LinkedUserRepository) Delete(ctx context.Context, guardianID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrLinkedUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid, "user_id": guardianID})
	if err != nil {
		return fmt.Errorf("delete linked user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrLinkedUserNotFound
	}
	return nil
}

// EnsureIndexes creates the guardian lookup index.
func (r *LinkedUserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "priority_level", Value: 1}},
	})
	return err
}

func toDomainLinkedUser(d mongoLinkedUser) *domain.LinkedUser {
	return &domain.LinkedUser{
		ID:              d.ID.Hex(),
		GuardianID:      d.GuardianID,
		Name:            d.Name,
		RelationType:    domain.RelationType(d.RelationType),
		Age:             d.Age,
		Phone:           d.Phone,
		PriorityLevel:   d.PriorityLevel,
		TrackingEnabled: d.TrackingEnabled,
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
	}
}
