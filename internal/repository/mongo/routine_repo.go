// internal/repository/mongo/routine_repo.go
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

const RoutineCollectionName = "Rutina"

// mongoRoutineRepository implements repository.RoutineRepository
type mongoRoutineRepository struct {
	collection *mongo.Collection
}

// NewMongoRoutineRepository creates a new Routine repository.
func NewMongoRoutineRepository(db *mongo.Database) repository.RoutineRepository {
	return &mongoRoutineRepository{
		collection: db.Collection(RoutineCollectionName),
	}
}

// Create inserts a routine keyed by its owner's ID. A second routine for the same
// user is rejected with repository.ErrDuplicateKey.
func (r *mongoRoutineRepository) Create(ctx context.Context, routine *domain.Routine) (string, error) {
	if routine.ID == "" {
		return "", errors.New("routine requires the owning user id")
	}

	_, err := r.collection.InsertOne(ctx, routine)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("routine %q: %w", routine.ID, repository.ErrDuplicateKey)
		}
		return "", err
	}
	return routine.ID, nil
}

// GetByID retrieves a single routine by its ID.
func (r *mongoRoutineRepository) GetByID(ctx context.Context, id string) (*domain.Routine, error) {
	var routine domain.Routine
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&routine)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &routine, nil
}

// SetExerciseCompleted sets terminado on exerciseID inside the first session whose
// exercises contain it (positional $ on sesiones, array filter on ejercicios). Later
// sessions are untouched, but the array filter writes every occurrence within that
// first session, so an exercise listed twice in one session flips both entries.
func (r *mongoRoutineRepository) SetExerciseCompleted(ctx context.Context, routineID, exerciseID string, completed bool) error {
	filter := bson.M{
		"_id":                             routineID,
		"sesiones.ejercicios.idEjercicio": exerciseID,
	}
	update := bson.M{
		"$set": bson.M{"sesiones.$.ejercicios.$[elem].terminado": completed},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"elem.idEjercicio": exerciseID}},
	})

	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return err
	}
	if result.ModifiedCount == 0 {
		return repository.ErrUpdateFailed
	}
	return nil
}

// EnsureRoutineIndexes creates the index used by the completion toggle filter.
func EnsureRoutineIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sesiones.ejercicios.idEjercicio", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
