// internal/domain/routine.go
package domain

import "strings"

// RestDayLabel marks a routine day without training.
const RestDayLabel = "Descanso"

// DaysPerWeek is the number of sessions every routine carries.
const DaysPerWeek = 7

// WeekDays are the day labels used when a routine has to be padded.
var WeekDays = [DaysPerWeek]string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

// Routine is a generated seven-day plan. Its ID is the owning user's ID, so each user
// has at most one stored routine.
type Routine struct {
	ID          string           `bson:"_id" json:"_id"`
	Name        string           `bson:"nombre_rutina" json:"nombre_rutina"`
	Description string           `bson:"descripcion" json:"descripcion"`
	Level       string           `bson:"nivel" json:"nivel"`
	Goal        string           `bson:"objetivo" json:"objetivo"`
	Sessions    []RoutineSession `bson:"sesiones" json:"sesiones"`
}

type RoutineSession struct {
	Day       string            `bson:"dia" json:"dia"`
	Muscles   string            `bson:"musculos" json:"musculos"`
	Exercises []RoutineExercise `bson:"ejercicios" json:"ejercicios"`
}

// IsRest reports whether the session is a rest day.
func (s RoutineSession) IsRest() bool {
	return isRestLabel(s.Muscles)
}

// RoutineExercise references a catalog exercise by ID.
type RoutineExercise struct {
	ExerciseID   string `bson:"idEjercicio" json:"idEjercicio"`
	Sets         int    `bson:"series" json:"series"`
	Reps         Reps   `bson:"repeticiones" json:"repeticiones"`
	RestSeconds  int    `bson:"descanso" json:"descanso"`
	Instructions string `bson:"descripcion" json:"descripcion"`
	Load         Load   `bson:"peso" json:"peso"`
	Completed    bool   `bson:"terminado" json:"terminado"`
}

// FindExercise returns the first exercise with the given ID, scanning sessions in order.
// A reference repeated across sessions is only reachable through its first occurrence.
func (r *Routine) FindExercise(exerciseID string) (sessionIdx, exerciseIdx int, ok bool) {
	for i, s := range r.Sessions {
		for j, e := range s.Exercises {
			if e.ExerciseID == exerciseID {
				return i, j, true
			}
		}
	}
	return -1, -1, false
}

func isRestLabel(label string) bool {
	return strings.EqualFold(strings.TrimSpace(label), RestDayLabel)
}
