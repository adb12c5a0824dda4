package memory

import (
	"context"
	"sync"

	"github.com/curso-hub/curso-learning-hub/internal/domain/course"
	"github.com/curso-hub/curso-learning-hub/internal/domain/progress"
	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
)

type statusKey struct {
	studentID student.ID
	courseID  course.ID
}

// StatusCache is an in-memory progress.StatusCache without expiry.
type StatusCache struct {
	mu      sync.RWMutex
	entries map[statusKey]progress.Status
}

// NewStatusCache creates an empty in-memory status cache.
func NewStatusCache() *StatusCache {
	return &StatusCache{entries: make(map[statusKey]progress.Status)}
}

// Get returns the cached status for the pair, if present.
func (c *StatusCache) Get(_ context.Context, studentID student.ID, courseID course.ID) (progress.Status, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status, ok := c.entries[statusKey{studentID: studentID, courseID: courseID}]
	return status, ok, nil
}

// Set stores the derived status for the pair.
func (c *StatusCache) Set(_ context.Context, studentID student.ID, courseID course.ID, status progress.Status) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[statusKey{studentID: studentID, courseID: courseID}] = status
	return nil
}

// Invalidate drops the cached status for the pair.
func (c *StatusCache) Invalidate(_ context.Context, studentID student.ID, courseID course.ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, statusKey{studentID: studentID, courseID: courseID})
	return nil
}
