package mongo

import (
	"context"
	"errors"
	"fitchallenge/internal/domain"
	"fitchallenge/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ChallengeCollectionName = "Reto"

type mongoChallengeRepository struct {
	collection *mongo.Collection
}

// NewMongoChallengeRepository creates a new Challenge repository.
func NewMongoChallengeRepository(db *mongo.Database) repository.ChallengeRepository {
	return &mongoChallengeRepository{
		collection: db.Collection(ChallengeCollectionName),
	}
}

func (r *mongoChallengeRepository) Create(ctx context.Context, challenge *domain.Challenge) (primitive.ObjectID, error) {
	if challenge.Name == "" {
		return primitive.NilObjectID, errors.New("challenge name is required")
	}
	challenge.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, challenge)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted challenge ID")
	}
	return insertedID, nil
}

func (r *mongoChallengeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Challenge, error) {
	var challenge domain.Challenge
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&challenge)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &challenge, nil
}

// List returns every challenge, oldest first.
func (r *mongoChallengeRepository) List(ctx context.Context) ([]domain.Challenge, error) {
	challenges := []domain.Challenge{}
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &challenges); err != nil {
		return nil, err
	}
	return challenges, cursor.Err()
}

// ListNames returns the names of all stored challenges, for prompt construction.
func (r *mongoChallengeRepository) ListNames(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"nombre_reto": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Name string `bson:"nombre_reto"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Name != "" {
			names = append(names, row.Name)
		}
	}
	return names, cursor.Err()
}

// EnsureChallengeIndexes creates necessary indexes for the challenges collection.
func EnsureChallengeIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "nombre_reto", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
