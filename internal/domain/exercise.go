// internal/domain/exercise.go
package domain

// Exercise is one entry of the exercise catalog. IDs are generated from the creation
// time in milliseconds, so they sort by creation order.
type Exercise struct {
	ID       string `bson:"_id" json:"_id"`
	Name     string `bson:"nombre" json:"nombre"`
	Location string `bson:"ubicacion" json:"ubicacion"` // "casa" or "gimnasio"
	ImageURL string `bson:"img" json:"img"`
	VideoURL string `bson:"video" json:"video"`
	Category string `bson:"categoria" json:"categoria"` // muscle group, e.g. "Pecho"
}
