package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mvclass/classroom-api/internal/core/domain"
)

const profileCollection = "profiles"

type ProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(profileCollection)}
}

type mongoProfile struct {
	UserID      string `bson:"user_id"`
	Role        string `bson:"role"`
	DisplayName string `bson:"display_name,omitempty"`
	SchoolID    string `bson:"school_id,omitempty"`
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	doc := mongoProfile{
		UserID:      profile.UserID,
		Role:        profile.Role,
		DisplayName: profile.DisplayName,
		SchoolID:    profile.SchoolID,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// One profile per identity; a duplicate create is a no-op.
			return nil
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	var mp mongoProfile
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}

	return &domain.Profile{
		UserID:      mp.UserID,
		Role:        mp.Role,
		DisplayName: mp.DisplayName,
		SchoolID:    mp.SchoolID,
	}, nil
}

// UpdateRole upserts so the bootstrap's role correction also repairs a
// missing profile row.
func (r *ProfileRepository) UpdateRole(ctx context.Context, userID, role string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"role": role}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("update profile role: %w", err)
	}
	return nil
}
