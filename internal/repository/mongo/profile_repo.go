package mongo

import (
	"context"
	"errors"
	"fitchallenge/internal/domain"
	"fitchallenge/internal/repository"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ProfileCollectionName = "Usuario"

// mongoProfileRepository implements repository.ProfileRepository.
type mongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a profile repository on the given database.
func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(ProfileCollectionName),
	}
}

// Create inserts the profile under its caller-supplied ID. An existing ID is never
// overwritten; repository.ErrDuplicateKey is returned instead.
func (r *mongoProfileRepository) Create(ctx context.Context, profile *domain.UserProfile) (string, error) {
	if profile.ID == "" {
		return "", errors.New("profile id is required")
	}

	result, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("profile %q: %w", profile.ID, repository.ErrDuplicateKey)
		}
		return "", err
	}

	insertedID, ok := result.InsertedID.(string)
	if !ok {
		return "", errors.New("failed to convert inserted profile ID")
	}
	return insertedID, nil
}

// GetByID retrieves a profile by its ID.
func (r *mongoProfileRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Exists reports whether a profile with the ID is stored, reading only the key.
func (r *mongoProfileRepository) Exists(ctx context.Context, id string) (bool, error) {
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err := r.collection.FindOne(ctx, bson.M{"_id": id}, opts).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// EnsureProfileIndexes creates secondary indexes for the profile collection.
func EnsureProfileIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
