package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fitchallenge/internal/domain"
	"fitchallenge/internal/identity"
	"fitchallenge/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]domain.UserProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]domain.UserProfile{}}
}

func (r *fakeProfileRepo) Create(_ context.Context, p *domain.UserProfile) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[p.ID]; ok {
		return "", fmt.Errorf("profile %q: %w", p.ID, repository.ErrDuplicateKey)
	}
	r.profiles[p.ID] = *p
	return p.ID, nil
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id string) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProfileRepo) Exists(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.profiles[id]
	return ok, nil
}

type fakeExerciseRepo struct {
	mu        sync.Mutex
	exercises []domain.Exercise
	listErr   error
	next      int64
}

func (r *fakeExerciseRepo) Create(_ context.Context, e *domain.Exercise) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	e.ID = fmt.Sprint(1700000000000 + r.next)
	r.exercises = append(r.exercises, *e)
	return e.ID, nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id string) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.exercises {
		if e.ID == id {
			e := e
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeExerciseRepo) List(context.Context) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]domain.Exercise{}, r.exercises...), nil
}

type fakeRoutineRepo struct {
	mu        sync.Mutex
	routines  map[string]domain.Routine
	updateErr error
}

func newFakeRoutineRepo() *fakeRoutineRepo {
	return &fakeRoutineRepo{routines: map[string]domain.Routine{}}
}

func (r *fakeRoutineRepo) Create(_ context.Context, routine *domain.Routine) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.routines[routine.ID]; ok {
		return "", repository.ErrDuplicateKey
	}
	r.routines[routine.ID] = *routine
	return routine.ID, nil
}

func (r *fakeRoutineRepo) GetByID(_ context.Context, id string) (*domain.Routine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	routine, ok := r.routines[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &routine, nil
}

func (r *fakeRoutineRepo) SetExerciseCompleted(_ context.Context, routineID, exerciseID string, completed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	routine, ok := r.routines[routineID]
	if !ok {
		return repository.ErrUpdateFailed
	}
	si, _, found := routine.FindExercise(exerciseID)
	if !found {
		return repository.ErrUpdateFailed
	}
	// Mirrors the array filter: every match in the first matching session.
	modified := false
	exercises := append([]domain.RoutineExercise(nil), routine.Sessions[si].Exercises...)
	for i := range exercises {
		if exercises[i].ExerciseID == exerciseID && exercises[i].Completed != completed {
			exercises[i].Completed = completed
			modified = true
		}
	}
	if !modified {
		return repository.ErrUpdateFailed
	}
	sessions := append([]domain.RoutineSession(nil), routine.Sessions...)
	sessions[si].Exercises = exercises
	routine.Sessions = sessions
	r.routines[routineID] = routine
	return nil
}

type fakeChallengeRepo struct {
	mu         sync.Mutex
	challenges []domain.Challenge
}

func (r *fakeChallengeRepo) Create(_ context.Context, c *domain.Challenge) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = primitive.NewObjectID()
	r.challenges = append(r.challenges, *c)
	return c.ID, nil
}

func (r *fakeChallengeRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Challenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.challenges {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeChallengeRepo) List(context.Context) ([]domain.Challenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Challenge{}, r.challenges...), nil
}

func (r *fakeChallengeRepo) ListNames(context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.challenges))
	for _, c := range r.challenges {
		names = append(names, c.Name)
	}
	return names, nil
}

type fakeGenerator struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
	deadline time.Time
}

func (g *fakeGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	g.deadline, _ = ctx.Deadline()
	return g.response, g.err
}

func (g *fakeGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

type fakeSearcher struct {
	urls  []string
	err   error
	query string
}

func (s *fakeSearcher) Search(_ context.Context, query string) ([]string, error) {
	s.query = query
	return s.urls, s.err
}

type fakeProvider struct {
	signedOut string
	err       error
}

func (p *fakeProvider) SignUp(_ context.Context, email, _ string) (*identity.Session, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &identity.Session{LocalID: "uid-" + email, Email: email}, nil
}

func (p *fakeProvider) SignIn(ctx context.Context, email, password string) (*identity.Session, error) {
	return p.SignUp(ctx, email, password)
}

func (p *fakeProvider) SignOut(_ context.Context, idToken string) error {
	p.signedOut = idToken
	return p.err
}

var errBoom = errors.New("boom")
