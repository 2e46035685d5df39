// internal/domain/profile.go
package domain

// UserProfile is the training profile of one user. Its ID is supplied by the caller
// (the identity provider's user id) and must be unique.
type UserProfile struct {
	ID                string    `bson:"_id" json:"_id"`
	Goal              Attribute `bson:"objetivo" json:"objetivo"`
	Age               Attribute `bson:"edad" json:"edad"`
	Gender            Attribute `bson:"genero" json:"genero"`
	Weight            Attribute `bson:"peso" json:"peso"`
	Experience        Attribute `bson:"experiencia" json:"experiencia"`
	AvailableDays     Attribute `bson:"dias_disponibles" json:"dias_disponibles"`
	Location          Attribute `bson:"ubicacion" json:"ubicacion"`
	PhysicalCondition Attribute `bson:"condicion_fisica" json:"condicion_fisica"`
	SessionMinutes    Attribute `bson:"tiempo_disponible" json:"tiempo_disponible"`
	Name              Attribute `bson:"nombre" json:"nombre"`
	Surname           Attribute `bson:"apellido" json:"apellido"`
	Height            Attribute `bson:"altura" json:"altura"`
	Email             Attribute `bson:"email" json:"email"`
}

// TrainingAttributes is the subset of profile data a generation prompt is built from.
// Generation requests carry it inline instead of reading the stored profile.
type TrainingAttributes struct {
	UserID            string
	Name              Attribute
	Surname           Attribute
	Goal              Attribute
	Age               Attribute
	Gender            Attribute
	Weight            Attribute
	Height            Attribute
	Experience        Attribute
	AvailableDays     Attribute
	Location          Attribute
	PhysicalCondition Attribute
	SessionMinutes    Attribute
}
