package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"fitchallenge/internal/domain"

	"golang.org/x/text/cases"
)

const maxRepsValue = domain.MaxRepsPlaceholderValue

var leadingInt = regexp.MustCompile(`^\s*(\d+)`)

// looseInt accepts 3, 3.0, "3" and "60 segundos". Null and missing decode to zero.
type looseInt int

func (n *looseInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*n = 0
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			return nil
		}
		m := leadingInt.FindStringSubmatch(s)
		if m == nil {
			return fmt.Errorf("expected a number, got %q", s)
		}
		v, err := strconv.Atoi(m[1])
		if err != nil || v > math.MaxInt32 {
			return fmt.Errorf("number %q out of range", s)
		}
		*n = looseInt(v)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if f < 0 || f > math.MaxInt32 {
		return fmt.Errorf("number %s out of range", data)
	}
	*n = looseInt(f)
	return nil
}

// looseText accepts any scalar and keeps it as text.
type looseText = domain.Attribute

type routinePayload struct {
	Name        *looseText       `json:"nombre_rutina"`
	Description looseText        `json:"descripcion"`
	Level       looseText        `json:"nivel"`
	Goal        looseText        `json:"objetivo"`
	Sessions    []sessionPayload `json:"sesiones"`
}

type challengePayload struct {
	Name        *looseText       `json:"nombre_reto"`
	Description looseText        `json:"descripcion"`
	Level       looseText        `json:"nivel"`
	Goal        looseText        `json:"objetivo"`
	Sessions    []sessionPayload `json:"sesiones"`
}

type sessionPayload struct {
	Day       looseText         `json:"dia"`
	Muscles   looseText         `json:"musculos"`
	Exercises []exercisePayload `json:"ejercicios"`
}

type exercisePayload struct {
	ExerciseID   looseText    `json:"idEjercicio"`
	Name         looseText    `json:"nombre"`
	Sets         looseInt     `json:"series"`
	Reps         *domain.Reps `json:"repeticiones"`
	RestSeconds  looseInt     `json:"descanso"`
	Instructions looseText    `json:"descripcion"`
	Load         domain.Load  `json:"peso"`
}

// ParseRoutine turns raw model output into a validated seven-session routine owned by
// user.UserID.
//
// Repairs applied: the reps placeholder becomes 15, digit-only reps become counts,
// missing day labels are filled from the week, short plans are padded with rest days,
// rest days lose their exercises, training days beyond the user's available days are
// demoted to rest and every exercise starts not completed.
func ParseRoutine(raw string, user domain.TrainingAttributes) (*domain.Routine, error) {
	var p routinePayload
	if err := decode(raw, &p); err != nil {
		return nil, err
	}
	if p.Name == nil || p.Name.IsBlank() {
		return nil, malformed("nombre_rutina is missing")
	}
	if p.Sessions == nil {
		return nil, malformed("sesiones is missing")
	}
	if len(p.Sessions) > domain.DaysPerWeek {
		return nil, malformed("routine has %d sessions, at most %d allowed", len(p.Sessions), domain.DaysPerWeek)
	}

	routine := &domain.Routine{
		ID:          user.UserID,
		Name:        strings.TrimSpace(p.Name.String()),
		Description: p.Description.String(),
		Level:       p.Level.String(),
		Goal:        p.Goal.String(),
		Sessions:    make([]domain.RoutineSession, 0, domain.DaysPerWeek),
	}

	for i, s := range p.Sessions {
		session := domain.RoutineSession{
			Day:       strings.TrimSpace(s.Day.String()),
			Muscles:   strings.TrimSpace(s.Muscles.String()),
			Exercises: []domain.RoutineExercise{},
		}
		if session.Day == "" {
			session.Day = domain.WeekDays[i]
		}
		if session.Muscles == "" && len(s.Exercises) == 0 {
			session.Muscles = domain.RestDayLabel
		}
		if !session.IsRest() {
			for j, e := range s.Exercises {
				ex, err := routineExercise(e)
				if err != nil {
					return nil, malformed("session %d exercise %d: %v", i+1, j+1, err)
				}
				session.Exercises = append(session.Exercises, ex)
			}
		}
		routine.Sessions = append(routine.Sessions, session)
	}

	padWithRestDays(routine)
	demoteExtraTrainingDays(routine, user.AvailableDays)
	return routine, nil
}

func routineExercise(e exercisePayload) (domain.RoutineExercise, error) {
	id := strings.TrimSpace(e.ExerciseID.String())
	if id == "" {
		return domain.RoutineExercise{}, fmt.Errorf("idEjercicio is missing")
	}
	if e.Reps == nil {
		return domain.RoutineExercise{}, fmt.Errorf("repeticiones is missing")
	}
	reps, ok := e.Reps.Canonical()
	if !ok {
		return domain.RoutineExercise{}, fmt.Errorf("repeticiones %q is not a number or range", e.Reps.String())
	}
	return domain.RoutineExercise{
		ExerciseID:   id,
		Sets:         int(e.Sets),
		Reps:         reps,
		RestSeconds:  int(e.RestSeconds),
		Instructions: e.Instructions.String(),
		Load:         e.Load,
		Completed:    false,
	}, nil
}

// padWithRestDays appends rest sessions for the week days not already used until the
// routine has seven sessions.
func padWithRestDays(r *domain.Routine) {
	if len(r.Sessions) >= domain.DaysPerWeek {
		return
	}
	used := make(map[string]bool, len(r.Sessions))
	for _, s := range r.Sessions {
		used[strings.ToLower(s.Day)] = true
	}
	for _, day := range domain.WeekDays {
		if len(r.Sessions) == domain.DaysPerWeek {
			return
		}
		if used[strings.ToLower(day)] {
			continue
		}
		r.Sessions = append(r.Sessions, restSession(day))
	}
	for n := len(r.Sessions); n < domain.DaysPerWeek; n++ {
		r.Sessions = append(r.Sessions, restSession(domain.WeekDays[n]))
	}
}

// demoteExtraTrainingDays keeps the first n training sessions, where n is the user's
// available days, and turns the rest into rest days. Unparseable values leave the
// routine alone.
func demoteExtraTrainingDays(r *domain.Routine, availableDays domain.Attribute) {
	m := leadingInt.FindStringSubmatch(availableDays.String())
	if m == nil {
		return
	}
	limit, err := strconv.Atoi(m[1])
	if err != nil || limit < 1 || limit > domain.DaysPerWeek {
		return
	}
	training := 0
	for i := range r.Sessions {
		if r.Sessions[i].IsRest() {
			continue
		}
		training++
		if training > limit {
			r.Sessions[i] = restSession(r.Sessions[i].Day)
		}
	}
}

func restSession(day string) domain.RoutineSession {
	return domain.RoutineSession{Day: day, Muscles: domain.RestDayLabel, Exercises: []domain.RoutineExercise{}}
}

// ParseChallenge turns raw model output into a challenge. Reps must be plain counts;
// the placeholder and digit-only strings are coerced, anything else is rejected.
// Images are not resolved here, see ResolveExerciseImages.
func ParseChallenge(raw string) (*domain.Challenge, error) {
	var p challengePayload
	if err := decode(raw, &p); err != nil {
		return nil, err
	}
	if p.Name == nil || p.Name.IsBlank() {
		return nil, malformed("nombre_reto is missing")
	}
	if len(p.Sessions) == 0 {
		return nil, malformed("sesiones is missing or empty")
	}

	challenge := &domain.Challenge{
		Name:        strings.TrimSpace(p.Name.String()),
		Description: p.Description.String(),
		Level:       p.Level.String(),
		Goal:        p.Goal.String(),
		Sessions:    make([]domain.ChallengeSession, 0, len(p.Sessions)),
	}
	for i, s := range p.Sessions {
		session := domain.ChallengeSession{
			Day:       strings.TrimSpace(s.Day.String()),
			Exercises: make([]domain.ChallengeExercise, 0, len(s.Exercises)),
		}
		if session.Day == "" {
			session.Day = fmt.Sprintf("Día %d", i+1)
		}
		for j, e := range s.Exercises {
			name := strings.TrimSpace(e.Name.String())
			if name == "" {
				return nil, malformed("session %d exercise %d: nombre is missing", i+1, j+1)
			}
			if e.Reps == nil {
				return nil, malformed("session %d exercise %d: repeticiones is missing", i+1, j+1)
			}
			reps, ok := e.Reps.Canonical()
			if !ok || !reps.IsCount() {
				return nil, malformed("session %d exercise %d: repeticiones %q is not a whole number", i+1, j+1, e.Reps.String())
			}
			session.Exercises = append(session.Exercises, domain.ChallengeExercise{
				Name:         name,
				Sets:         int(e.Sets),
				Reps:         reps,
				RestSeconds:  int(e.RestSeconds),
				Instructions: e.Instructions.String(),
				Load:         e.Load,
				ImageURL:     domain.DefaultImageURL,
			})
		}
		challenge.Sessions = append(challenge.Sessions, session)
	}
	return challenge, nil
}

// ResolveExerciseImages sets each exercise image from the first catalog entry whose
// name matches case-insensitively. Unmatched or image-less entries get the default.
func ResolveExerciseImages(c *domain.Challenge, catalog []domain.Exercise) {
	fold := cases.Fold()
	key := func(name string) string {
		return fold.String(strings.TrimSpace(name))
	}

	images := make(map[string]string, len(catalog))
	for _, ex := range catalog {
		k := key(ex.Name)
		if _, seen := images[k]; !seen {
			images[k] = ex.ImageURL
		}
	}
	for i := range c.Sessions {
		for j := range c.Sessions[i].Exercises {
			ex := &c.Sessions[i].Exercises[j]
			img := images[key(ex.Name)]
			if img == "" {
				img = domain.DefaultImageURL
			}
			ex.ImageURL = img
		}
	}
}
