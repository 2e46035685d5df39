package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fitchallenge/internal/domain"
	"fitchallenge/internal/generation"
	"fitchallenge/internal/identity"
	"fitchallenge/internal/llm"
	"fitchallenge/internal/logger"
	"fitchallenge/internal/repository"
)

const routineJSON = "```json\n" + `{
  "nombre_rutina": "Fuerza",
  "descripcion": "d",
  "nivel": "intermedio",
  "objetivo": "fuerza",
  "sesiones": [
    {"dia": "Lunes", "musculos": "Pecho", "ejercicios": [
      {"idEjercicio": "e1", "series": 3, "repeticiones": "8-12", "descanso": 60, "descripcion": "", "peso": 20, "terminado": false},
      {"idEjercicio": "e2", "series": 3, "repeticiones": 10, "descanso": 60, "descripcion": "", "peso": 0, "terminado": false}
    ]},
    {"dia": "Martes", "musculos": "Piernas", "ejercicios": [
      {"idEjercicio": "e1", "series": 4, "repeticiones": "Máximo", "descanso": 90, "descripcion": "", "peso": 0, "terminado": false}
    ]}
  ]
}` + "\n```"

const challengeJSON = `{
  "nombre_reto": "Reto Núcleo",
  "descripcion": "d",
  "nivel": "principiante",
  "objetivo": "core",
  "img": "",
  "sesiones": [
    {"dia": "Día 1", "ejercicios": [
      {"nombre": "PLANCHA", "series": 3, "repeticiones": 30, "descanso": 30, "descripcion": "", "peso": 0, "terminado": false}
    ]}
  ]
}`

func catalogRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: []domain.Exercise{
		{ID: "e1", Name: "Sentadilla", Location: "casa", ImageURL: "https://img/s.jpg", VideoURL: "v", Category: "Piernas"},
		{ID: "e2", Name: "Plancha", Location: "casa", ImageURL: "https://img/p.jpg", VideoURL: "v", Category: "Core"},
	}}
}

func TestProfileService(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(newFakeProfileRepo())

	if _, err := svc.CreateProfile(ctx, &domain.UserProfile{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	id, err := svc.CreateProfile(ctx, &domain.UserProfile{ID: " u1 ", Name: "Ana"})
	if err != nil || id != "u1" {
		t.Fatalf("CreateProfile = %q, %v", id, err)
	}
	if _, err := svc.CreateProfile(ctx, &domain.UserProfile{ID: "u1"}); !errors.Is(err, repository.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	p, err := svc.GetProfile(ctx, "u1")
	if err != nil || p.Name != "Ana" {
		t.Fatalf("GetProfile = %+v, %v", p, err)
	}
	if _, err := svc.GetProfile(ctx, "u2"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
	if err := svc.CheckUser(ctx, "u1"); err != nil {
		t.Errorf("CheckUser(u1): %v", err)
	}
	if err := svc.CheckUser(ctx, "u2"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestExerciseService(t *testing.T) {
	ctx := context.Background()
	repo := &fakeExerciseRepo{}
	svc := NewExerciseService(repo, nil)

	_, err := svc.CreateExercise(ctx, &domain.Exercise{Name: "Sentadilla", Location: "casa", ImageURL: "i", VideoURL: " "})
	if !errors.Is(err, ErrValidation) || !strings.Contains(err.Error(), "video") {
		t.Fatalf("expected video validation error, got %v", err)
	}

	id, err := svc.CreateExercise(ctx, &domain.Exercise{Name: "Sentadilla", Location: "casa", ImageURL: "i", VideoURL: "v", Category: "Piernas"})
	if err != nil {
		t.Fatalf("CreateExercise: %v", err)
	}
	got, err := svc.GetExercise(ctx, id)
	if err != nil || got.Name != "Sentadilla" {
		t.Fatalf("GetExercise = %+v, %v", got, err)
	}
	if _, err := svc.GetExercise(ctx, "nope"); !errors.Is(err, ErrExerciseNotFound) {
		t.Errorf("expected ErrExerciseNotFound, got %v", err)
	}

	if _, err := svc.CreateMediaUpload(ctx, "img", "image/png"); !errors.Is(err, ErrMediaUnavailable) {
		t.Errorf("expected ErrMediaUnavailable, got %v", err)
	}
}

func TestCreateExerciseRequiresEveryField(t *testing.T) {
	valid := func() *domain.Exercise {
		return &domain.Exercise{Name: "Sentadilla", Location: "casa", ImageURL: "i", VideoURL: "v", Category: "Piernas"}
	}
	tests := []struct {
		field string
		clear func(e *domain.Exercise)
	}{
		{"nombre", func(e *domain.Exercise) { e.Name = "" }},
		{"ubicacion", func(e *domain.Exercise) { e.Location = "  " }},
		{"img", func(e *domain.Exercise) { e.ImageURL = "" }},
		{"video", func(e *domain.Exercise) { e.VideoURL = "\t" }},
		{"categoria", func(e *domain.Exercise) { e.Category = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			repo := &fakeExerciseRepo{}
			svc := NewExerciseService(repo, nil)
			e := valid()
			tt.clear(e)

			_, err := svc.CreateExercise(context.Background(), e)
			if !errors.Is(err, ErrValidation) || !strings.Contains(err.Error(), tt.field+" is required") {
				t.Fatalf("expected %s validation error, got %v", tt.field, err)
			}
			if len(repo.exercises) != 0 {
				t.Error("invalid exercise was stored")
			}
		})
	}
}

type fakeMedia struct{}

func (fakeMedia) GeneratePresignedUploadURL(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	return "https://upload/" + key + "?sig=1", nil
}

func (fakeMedia) PublicURL(key string) string {
	return "https://cdn/" + key
}

func TestCreateMediaUpload(t *testing.T) {
	svc := NewExerciseService(&fakeExerciseRepo{}, fakeMedia{})

	up, err := svc.CreateMediaUpload(context.Background(), "video", "video/mp4")
	if err != nil {
		t.Fatalf("CreateMediaUpload: %v", err)
	}
	if !strings.HasPrefix(up.ObjectKey, "exercises/video/") || up.PublicURL != "https://cdn/"+up.ObjectKey {
		t.Errorf("unexpected upload %+v", up)
	}
	if _, err := svc.CreateMediaUpload(context.Background(), "video", "image/png"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func newRoutineService(gen *fakeGenerator, routines *fakeRoutineRepo) RoutineService {
	return NewRoutineService(RoutineServiceProps{
		RoutineRepo:  routines,
		ExerciseRepo: catalogRepo(),
		Generator:    gen,
		Timeout:      time.Minute,
		Logger:       logger.Nop(),
	})
}

func TestGenerateRoutine(t *testing.T) {
	ctx := context.Background()
	gen := &fakeGenerator{response: routineJSON}
	routines := newFakeRoutineRepo()
	svc := newRoutineService(gen, routines)

	attrs := domain.TrainingAttributes{UserID: "u1", Name: "Ana", AvailableDays: "2"}
	r, err := svc.GenerateRoutine(ctx, attrs)
	if err != nil {
		t.Fatalf("GenerateRoutine: %v", err)
	}
	if r.ID != "u1" || len(r.Sessions) != domain.DaysPerWeek {
		t.Errorf("unexpected routine id=%q sessions=%d", r.ID, len(r.Sessions))
	}
	if !strings.Contains(gen.prompts[0], "- Sentadilla (ID: e1") {
		t.Error("prompt does not list the catalog")
	}
	if gen.deadline.IsZero() {
		t.Error("model call was not bounded by a deadline")
	}
	if _, err := routines.GetByID(ctx, "u1"); err != nil {
		t.Errorf("routine not stored: %v", err)
	}

	_, err = svc.GenerateRoutine(ctx, attrs)
	if !errors.Is(err, repository.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	if gen.calls() != 1 {
		t.Errorf("model called %d times, want 1", gen.calls())
	}
}

func TestGenerateRoutineFailures(t *testing.T) {
	ctx := context.Background()
	attrs := domain.TrainingAttributes{UserID: "u1"}

	if _, err := newRoutineService(&fakeGenerator{}, newFakeRoutineRepo()).GenerateRoutine(ctx, domain.TrainingAttributes{}); !errors.Is(err, ErrValidation) {
		t.Errorf("missing user id: got %v", err)
	}

	modelErr := &fakeGenerator{err: llm.ErrContentGeneration}
	if _, err := newRoutineService(modelErr, newFakeRoutineRepo()).GenerateRoutine(ctx, attrs); !errors.Is(err, llm.ErrContentGeneration) {
		t.Errorf("model failure: got %v", err)
	}

	routines := newFakeRoutineRepo()
	_, err := newRoutineService(&fakeGenerator{response: "sin json"}, routines).GenerateRoutine(ctx, attrs)
	var extraction *generation.ExtractionError
	if !errors.As(err, &extraction) || extraction.Raw != "sin json" {
		t.Errorf("extraction failure: got %v", err)
	}
	if _, err := routines.GetByID(ctx, "u1"); !errors.Is(err, repository.ErrNotFound) {
		t.Error("nothing may be stored after a failed generation")
	}

	_, err = newRoutineService(&fakeGenerator{response: `{"nombre_rutina": "R"}`}, newFakeRoutineRepo()).GenerateRoutine(ctx, attrs)
	var malformed *generation.MalformedContentError
	if !errors.As(err, &malformed) {
		t.Errorf("malformed output: got %v", err)
	}
}

func TestToggleExercise(t *testing.T) {
	ctx := context.Background()
	routines := newFakeRoutineRepo()
	svc := newRoutineService(&fakeGenerator{response: routineJSON}, routines)
	if _, err := svc.GenerateRoutine(ctx, domain.TrainingAttributes{UserID: "u1"}); err != nil {
		t.Fatalf("GenerateRoutine: %v", err)
	}

	ex, err := svc.ToggleExercise(ctx, "u1", "e1")
	if err != nil {
		t.Fatalf("ToggleExercise: %v", err)
	}
	if !ex.Completed {
		t.Error("first toggle should complete the exercise")
	}

	stored, _ := svc.GetRoutine(ctx, "u1")
	if !stored.Sessions[0].Exercises[0].Completed {
		t.Error("first occurrence not updated")
	}
	if stored.Sessions[1].Exercises[0].Completed {
		t.Error("only the first occurrence may change")
	}

	ex, err = svc.ToggleExercise(ctx, "u1", "e1")
	if err != nil || ex.Completed {
		t.Fatalf("second toggle = %+v, %v", ex, err)
	}

	if _, err := svc.ToggleExercise(ctx, "nope", "e1"); !errors.Is(err, ErrRoutineNotFound) {
		t.Errorf("expected ErrRoutineNotFound, got %v", err)
	}
	if _, err := svc.ToggleExercise(ctx, "u1", "e9"); !errors.Is(err, ErrExerciseNotInRoutine) {
		t.Errorf("expected ErrExerciseNotInRoutine, got %v", err)
	}

	routines.updateErr = repository.ErrUpdateFailed
	if _, err := svc.ToggleExercise(ctx, "u1", "e1"); !errors.Is(err, repository.ErrUpdateFailed) {
		t.Errorf("expected ErrUpdateFailed, got %v", err)
	}
}

func TestToggleExerciseRepeatedInSession(t *testing.T) {
	ctx := context.Background()
	routines := newFakeRoutineRepo()
	routines.routines["u1"] = domain.Routine{ID: "u1", Sessions: []domain.RoutineSession{
		{Day: "Lunes", Muscles: "Pecho", Exercises: []domain.RoutineExercise{
			{ExerciseID: "e1"},
			{ExerciseID: "e2"},
			{ExerciseID: "e1", Completed: true},
		}},
		{Day: "Martes", Muscles: "Pecho", Exercises: []domain.RoutineExercise{{ExerciseID: "e1"}}},
	}}
	svc := newRoutineService(&fakeGenerator{}, routines)

	ex, err := svc.ToggleExercise(ctx, "u1", "e1")
	if err != nil {
		t.Fatalf("ToggleExercise: %v", err)
	}
	if !ex.Completed {
		t.Fatal("value is derived from the first occurrence")
	}

	stored, _ := svc.GetRoutine(ctx, "u1")
	for _, i := range []int{0, 2} {
		if stored.Sessions[0].Exercises[i].Completed != ex.Completed {
			t.Errorf("occurrence %d = %v, want the returned value %v", i, stored.Sessions[0].Exercises[i].Completed, ex.Completed)
		}
	}
	if stored.Sessions[0].Exercises[1].Completed || stored.Sessions[1].Exercises[0].Completed {
		t.Error("other exercises and later sessions must not change")
	}
}

func TestGenerateChallenge(t *testing.T) {
	ctx := context.Background()
	challenges := &fakeChallengeRepo{challenges: []domain.Challenge{{Name: "Reto Antiguo"}}}
	gen := &fakeGenerator{response: challengeJSON}
	search := &fakeSearcher{urls: []string{"https://cdn/a.jpg", "https://cdn/b.jpg"}}

	svc := NewChallengeService(ChallengeServiceProps{
		ChallengeRepo: challenges,
		ExerciseRepo:  catalogRepo(),
		Generator:     gen,
		Images:        search,
		Pick:          func(n int) int { return n - 1 },
		Logger:        logger.Nop(),
	})

	c, err := svc.GenerateChallenge(ctx, domain.TrainingAttributes{Goal: "core"})
	if err != nil {
		t.Fatalf("GenerateChallenge: %v", err)
	}
	if !strings.Contains(gen.prompts[0], "- Reto Antiguo") {
		t.Error("prompt does not list existing challenge names")
	}
	if search.query != "Reto Núcleo exercise" {
		t.Errorf("search query = %q", search.query)
	}
	if c.CoverURL != "https://cdn/b.jpg" {
		t.Errorf("cover = %q", c.CoverURL)
	}
	if img := c.Sessions[0].Exercises[0].ImageURL; img != "https://img/p.jpg" {
		t.Errorf("exercise image = %q", img)
	}
	if c.ID.IsZero() {
		t.Error("challenge was not stored")
	}

	list, _ := svc.ListChallenges(ctx)
	if len(list) != 2 {
		t.Errorf("challenges = %d, want 2", len(list))
	}
}

func TestGenerateChallengeCoverFallback(t *testing.T) {
	for name, search := range map[string]*fakeSearcher{
		"search error": {err: errBoom},
		"no results":   {},
	} {
		t.Run(name, func(t *testing.T) {
			svc := NewChallengeService(ChallengeServiceProps{
				ChallengeRepo: &fakeChallengeRepo{},
				ExerciseRepo:  catalogRepo(),
				Generator:     &fakeGenerator{response: challengeJSON},
				Images:        search,
				Logger:        logger.Nop(),
			})
			c, err := svc.GenerateChallenge(context.Background(), domain.TrainingAttributes{})
			if err != nil {
				t.Fatalf("GenerateChallenge: %v", err)
			}
			if c.CoverURL != domain.DefaultImageURL {
				t.Errorf("cover = %q", c.CoverURL)
			}
		})
	}
}

func TestGenerateChallengeCatalogFailure(t *testing.T) {
	gen := &fakeGenerator{response: challengeJSON}
	svc := NewChallengeService(ChallengeServiceProps{
		ChallengeRepo: &fakeChallengeRepo{},
		ExerciseRepo:  &fakeExerciseRepo{listErr: errBoom},
		Generator:     gen,
		Logger:        logger.Nop(),
	})
	if _, err := svc.GenerateChallenge(context.Background(), domain.TrainingAttributes{}); !errors.Is(err, errBoom) {
		t.Fatalf("expected catalog error, got %v", err)
	}
	if gen.calls() != 0 {
		t.Error("model must not be called when the catalog cannot be read")
	}
}

func TestAuthService(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{}
	svc := NewAuthService(provider, logger.Nop())

	if _, err := svc.Register(ctx, "", "x"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	s, err := svc.Register(ctx, " ana@example.com ", "secreto")
	if err != nil || s.Email != "ana@example.com" {
		t.Fatalf("Register = %+v, %v", s, err)
	}
	if err := svc.Logout(ctx, "tok"); err != nil || provider.signedOut != "tok" {
		t.Errorf("Logout: %v (signedOut=%q)", err, provider.signedOut)
	}

	provider.err = &identity.ProviderError{Op: "sign-in", Message: "INVALID_PASSWORD"}
	_, err = svc.Login(ctx, "ana@example.com", "mal")
	var perr *identity.ProviderError
	if !errors.As(err, &perr) {
		t.Errorf("expected ProviderError, got %v", err)
	}
}
