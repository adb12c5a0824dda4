package memory

import (
	"context"
	"sync"

	"github.com/curso-hub/curso-learning-hub/internal/domain/professor"
)

// ProfessorRepository is an in-memory professor.Repository.
type ProfessorRepository struct {
	mu      sync.RWMutex
	byID    map[professor.ID]*professor.Professor
	byLogin map[professor.Login]professor.ID
}

// NewProfessorRepository creates an empty in-memory professor repository.
func NewProfessorRepository() *ProfessorRepository {
	return &ProfessorRepository{
		byID:    make(map[professor.ID]*professor.Professor),
		byLogin: make(map[professor.Login]professor.ID),
	}
}

// Create inserts the professor, enforcing both unique indexes the way the
// database does: login conflicts are permanent, id conflicts retryable.
func (r *ProfessorRepository) Create(_ context.Context, p *professor.Professor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byLogin[p.Login]; taken {
		return professor.ErrLoginTaken
	}
	if _, exists := r.byID[p.ID]; exists {
		return professor.ErrAlreadyExists
	}

	cp := *p
	r.byID[p.ID] = &cp
	r.byLogin[p.Login] = p.ID
	return nil
}

// GetByID returns the professor or professor.ErrNotFound.
func (r *ProfessorRepository) GetByID(_ context.Context, id professor.ID) (*professor.Professor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, professor.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// Exists reports whether the id belongs to a professor.
func (r *ProfessorRepository) Exists(_ context.Context, id professor.ID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byID[id]
	return ok, nil
}
