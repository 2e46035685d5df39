// internal/domain/challenge.go
package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// DefaultImageURL is used whenever no catalog or stock image could be resolved.
const DefaultImageURL = "default-image-url.jpg"

// Challenge is a generated plan shared by all users. Names are kept distinct from
// existing challenges through the prompt only; the store does not enforce it.
type Challenge struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"nombre_reto" json:"nombre_reto"`
	Description string             `bson:"descripcion" json:"descripcion"`
	Level       string             `bson:"nivel" json:"nivel"`
	Goal        string             `bson:"objetivo" json:"objetivo"`
	CoverURL    string             `bson:"img" json:"img"`
	Sessions    []ChallengeSession `bson:"sesiones" json:"sesiones"`
}

type ChallengeSession struct {
	Day       string              `bson:"dia" json:"dia"`
	Exercises []ChallengeExercise `bson:"ejercicios" json:"ejercicios"`
}

// ChallengeExercise references a catalog exercise by name; the image is resolved
// from the catalog when the challenge is generated.
type ChallengeExercise struct {
	Name         string `bson:"nombre" json:"nombre"`
	Sets         int    `bson:"series" json:"series"`
	Reps         Reps   `bson:"repeticiones" json:"repeticiones"`
	RestSeconds  int    `bson:"descanso" json:"descanso"`
	Instructions string `bson:"descripcion" json:"descripcion"`
	Load         Load   `bson:"peso" json:"peso"`
	Completed    bool   `bson:"terminado" json:"terminado"`
	ImageURL     string `bson:"img" json:"img"`
}
