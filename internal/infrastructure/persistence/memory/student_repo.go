package memory

import (
	"context"
	"sync"

	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
)

// StudentRepository is an in-memory student.Repository.
type StudentRepository struct {
	mu      sync.RWMutex
	byID    map[student.ID]*student.Student
	byLogin map[student.Login]student.ID
}

// NewStudentRepository creates an empty in-memory student repository.
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{
		byID:    make(map[student.ID]*student.Student),
		byLogin: make(map[student.Login]student.ID),
	}
}

// Create inserts the student, enforcing both unique indexes. Login
// conflicts are permanent, id conflicts retryable.
func (r *StudentRepository) Create(_ context.Context, s *student.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byLogin[s.Login]; taken {
		return student.ErrLoginTaken
	}
	if _, exists := r.byID[s.ID]; exists {
		return student.ErrAlreadyExists
	}

	cp := *s
	r.byID[s.ID] = &cp
	r.byLogin[s.Login] = s.ID
	return nil
}

// GetByID returns the student or student.ErrNotFound.
func (r *StudentRepository) GetByID(_ context.Context, id student.ID) (*student.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, student.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

// GetByIDs returns the students that exist; missing ids are skipped.
func (r *StudentRepository) GetByIDs(_ context.Context, ids []student.ID) ([]*student.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*student.Student, 0, len(ids))
	seen := make(map[student.ID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if s, ok := r.byID[id]; ok {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

// SetApproved updates the displayed approval flag.
func (r *StudentRepository) SetApproved(_ context.Context, id student.ID, approved bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return student.ErrNotFound
	}
	s.Approved = approved
	return nil
}
