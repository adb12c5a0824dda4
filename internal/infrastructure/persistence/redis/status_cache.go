package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/curso-hub/curso-learning-hub/internal/domain/course"
	"github.com/curso-hub/curso-learning-hub/internal/domain/progress"
	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
)

// TTLStatus bounds how stale a cached derived status may get, e.g. after
// a course deletion that nothing invalidates per pair.
const TTLStatus = 10 * time.Minute

// StatusCache implements progress.StatusCache on Redis. Keys are
// namespaced per (student, course) pair and invalidated by the viewing
// tracker and the approval workflow.
type StatusCache struct {
	cache *Cache
}

// NewStatusCache creates a new StatusCache.
func NewStatusCache(cache *Cache) *StatusCache {
	return &StatusCache{cache: cache}
}

// Get returns the cached status for the pair, if present and valid.
func (s *StatusCache) Get(ctx context.Context, studentID student.ID, courseID course.ID) (progress.Status, bool, error) {
	value, err := s.cache.GetString(ctx, s.key(studentID, courseID))
	if errors.Is(err, ErrCacheMiss) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	status := progress.Status(value)
	if !status.IsValid() {
		// Drop garbage rather than serving it.
		_ = s.cache.Delete(ctx, s.key(studentID, courseID))
		return "", false, nil
	}
	return status, true, nil
}

// Set stores the derived status for the pair.
func (s *StatusCache) Set(ctx context.Context, studentID student.ID, courseID course.ID, status progress.Status) error {
	return s.cache.SetString(ctx, s.key(studentID, courseID), string(status), TTLStatus)
}

// Invalidate drops the cached status for the pair.
func (s *StatusCache) Invalidate(ctx context.Context, studentID student.ID, courseID course.ID) error {
	return s.cache.Delete(ctx, s.key(studentID, courseID))
}

func (s *StatusCache) key(studentID student.ID, courseID course.ID) string {
	return fmt.Sprintf("status:%d:%d", studentID, courseID)
}
