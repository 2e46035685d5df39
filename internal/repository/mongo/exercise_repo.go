package mongo

import (
	"context"
	"errors"
	"fitchallenge/internal/domain"
	"fitchallenge/internal/repository"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ExerciseCollectionName = "Ejercicio"

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
	now        func() time.Time

	mu     sync.Mutex
	lastID int64
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(ExerciseCollectionName),
		now:        time.Now,
	}
}

// nextID returns the creation time in milliseconds, bumped past the last issued ID
// so two inserts in the same millisecond still get increasing keys.
func (r *mongoExerciseRepository) nextID() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.now().UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return strconv.FormatInt(id, 10)
}

// Create assigns a time-based ID and inserts the exercise.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (string, error) {
	if exercise.Name == "" {
		return "", errors.New("exercise name is required")
	}

	exercise.ID = r.nextID()

	_, err := r.collection.InsertOne(ctx, exercise)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("exercise %q: %w", exercise.ID, repository.ErrDuplicateKey)
		}
		return "", err
	}
	return exercise.ID, nil
}

// GetByID retrieves an exercise by its ID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	var exercise domain.Exercise
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// List returns the whole catalog in creation order.
func (r *mongoExerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	exercises := []domain.Exercise{}
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Challenge generation resolves images by exercise name.
			Keys:    bson.D{{Key: "nombre", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "categoria", Value: 1}, {Key: "ubicacion", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
