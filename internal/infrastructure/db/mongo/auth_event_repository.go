package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guardianlink/portal/internal/core/domain"
	"github.com/guardianlink/portal/internal/core/ports"
)

const collectionAuthEvents = "auth_events"

// AuthEventRepository implements ports.AuthEventRepository using MongoDB.
type AuthEventRepository struct {
	db *mongo.Database
}

// NewAuthEventRepository creates a new AuthEventRepository.
func NewAuthEventRepository(db *mongo.Database) ports.AuthEventRepository {
	return &AuthEventRepository{db: db}
}

// InsertEvent persists an event to the auth_events audit collection.
func (r *AuthEventRepository) InsertEvent(ctx context.Context, event *domain.AuthEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"user_id":     event.UserID,
		"email":       event.Email,
		"kind":        string(event.Kind),
		"occurred_at": event.At.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.IP != "" {
		doc["ip"] = event.IP
	}
	if event.UserAgent != "" {
		doc["user_agent"] = event.UserAgent
	}

	_, err := r.db.Collection(collectionAuthEvents).InsertOne(ctx, doc)
	return err
}

func ensureAuthEventIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := db.Collection(collectionAuthEvents).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "occurred_at", Value: -1}},
	})
	return err
}
