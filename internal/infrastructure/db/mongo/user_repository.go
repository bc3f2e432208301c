package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guardianlink/portal/internal/core/domain"
)

const (
	collectionUsers = "users"

	indexUniqueEmail = "uniq_email"
	indexUniquePhone = "uniq_phone"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type mongoPreferences struct {
	DarkMode bool   `bson:"dark_mode"`
	Language string `bson:"language"`
	TextSize string `bson:"text_size"`
}

type mongoUser struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Email             string             `bson:"email"`
	Phone             string             `bson:"phone"`
	PasswordHash      string             `bson:"password_hash"`
	FirstName         string             `bson:"first_name"`
	LastName          string             `bson:"last_name"`
	Roles             []string           `bson:"roles"`
	IsGuardian        bool               `bson:"is_guardian"`
	IsActive          bool               `bson:"is_active"`
	LoginAttempts     int                `bson:"login_attempts"`
	LockedUntil       *time.Time         `bson:"locked_until,omitempty"`
	LastLogin         *time.Time         `bson:"last_login,omitempty"`
	PasswordChangedAt *time.Time         `bson:"password_changed_at,omitempty"`
	Preferences       mongoPreferences   `bson:"preferences"`
	CreatedAt         time.Time          `bson:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoUser(user)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if dup := duplicateUserError(err); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return toDomainUser(doc), nil
}

// duplicateUserError names the unique index a failed insert collided with.
// It returns nil for any other error.
func duplicateUserError(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return nil
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if strings.Contains(e.Message, "index: "+indexUniquePhone) {
				return domain.ErrPhoneExists
			}
		}
		return domain.ErrUserExists
	}
	if strings.Contains(err.Error(), indexUniquePhone) {
		return domain.ErrPhoneExists
	}
	return domain.ErrUserExists
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"phone": phone})
}

func (r *UserRepository) IncrementLoginAttempts(ctx context.Context, id string) (int, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"login_attempts": 1})

	var out struct {
		LoginAttempts int `bson:"login_attempts"`
	}
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$inc": bson.M{"login_attempts": 1},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
		opts,
	).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("increment login attempts: %w", err)
	}
	return out.LoginAttempts, nil
}

func (r *UserRepository) LockUntil(ctx context.Context, id string, until time.Time) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{"locked_until": until.UTC()}})
}

func (r *UserRepository) ResetLoginAttempts(ctx context.Context, id string) error {
	return r.updateByID(ctx, id, bson.M{
		"$set":   bson.M{"login_attempts": 0},
		"$unset": bson.M{"locked_until": ""},
	})
}

func (r *UserRepository) RecordLogin(ctx context.Context, id string, at time.Time) error {
	return r.updateByID(ctx, id, bson.M{
		"$set":   bson.M{"login_attempts": 0, "last_login": at.UTC()},
		"$unset": bson.M{"locked_until": ""},
	})
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string, at time.Time) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{
		"password_hash":       hash,
		"password_changed_at": at.UTC(),
	}})
}

func (r *UserRepository) UpdatePreferences(ctx context.Context, id string, patch domain.PreferencesPatch) (domain.Preferences, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Preferences{}, domain.ErrUserNotFound
	}

	set := preferencesSet(patch)
	set["updated_at"] = time.Now().UTC()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"preferences": 1})

	var out struct {
		Preferences mongoPreferences `bson:"preferences"`
	}
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Preferences{}, domain.ErrUserNotFound
		}
		return domain.Preferences{}, fmt.Errorf("update preferences: %w", err)
	}
	return domain.Preferences(out.Preferences), nil
}

// preferencesSet addresses each patched field by its dotted path so
// concurrent patches of different fields do not overwrite each other.
func preferencesSet(patch domain.PreferencesPatch) bson.M {
	set := bson.M{}
	if patch.DarkMode != nil {
		set["preferences.dark_mode"] = *patch.DarkMode
	}
	if patch.Language != nil {
		set["preferences.language"] = *patch.Language
	}
	if patch.TextSize != nil {
		set["preferences.text_size"] = *patch.TextSize
	}
	return set
}

// EnsureIndexes creates the unique email and phone indexes.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName(indexUniqueEmail)},
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true).SetName(indexUniquePhone)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomainUser(mu), nil
}

// updateByID applies update and stamps updated_at.
func (r *UserRepository) updateByID(ctx context.Context, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	set, _ := update["$set"].(bson.M)
	if set == nil {
		set = bson.M{}
	}
	set["updated_at"] = time.Now().UTC()
	update["$set"] = set

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		Email:             u.Email,
		Phone:             u.Phone,
		PasswordHash:      u.PasswordHash,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Roles:             domain.RoleStrings(u.Roles),
		IsGuardian:        u.IsGuardian,
		IsActive:          u.IsActive,
		LoginAttempts:     u.LoginAttempts,
		LockedUntil:       u.LockedUntil,
		LastLogin:         u.LastLogin,
		PasswordChangedAt: u.PasswordChangedAt,
		Preferences:       mongoPreferences(u.Preferences),
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func toDomainUser(mu mongoUser) *domain.User {
	return &domain.User{
		ID:                mu.ID.Hex(),
		Email:             mu.Email,
		Phone:             mu.Phone,
		PasswordHash:      mu.PasswordHash,
		FirstName:         mu.FirstName,
		LastName:          mu.LastName,
		Roles:             domain.ParseRoles(mu.Roles),
		IsGuardian:        mu.IsGuardian,
		IsActive:          mu.IsActive,
		LoginAttempts:     mu.LoginAttempts,
		LockedUntil:       utcPtr(mu.LockedUntil),
		LastLogin:         utcPtr(mu.LastLogin),
		PasswordChangedAt: utcPtr(mu.PasswordChangedAt),
		Preferences:       domain.Preferences(mu.Preferences),
		CreatedAt:         mu.CreatedAt.UTC(),
		UpdatedAt:         mu.UpdatedAt.UTC(),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
