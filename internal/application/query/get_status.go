// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/curso-hub/curso-learning-hub/internal/domain/course"
	"github.com/curso-hub/curso-learning-hub/internal/domain/progress"
	"github.com/curso-hub/curso-learning-hub/internal/domain/shared"
	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STATUS QUERY
// Derives the student's lifecycle stage in a course from viewing counts
// and the approval record. The approval record is the authoritative source
// for StatusApproved; the student's approved flag is only a display cache.
// ══════════════════════════════════════════════════════════════════════════════

// GetStatusQuery identifies the (student, course) pair.
type GetStatusQuery struct {
	StudentID student.ID
	CourseID  course.ID
}

// GetStatusResult contains the derived status.
type GetStatusResult struct {
	Status progress.Status
}

// GetStatusHandler handles the GetStatusQuery.
type GetStatusHandler struct {
	courses   course.Repository
	viewings  progress.ViewingRepository
	approvals progress.ApprovalRepository
	cache     progress.StatusCache
	logger    *zap.Logger
}

// NewGetStatusHandler creates a new GetStatusHandler.
// cache may be nil when the status cache is disabled.
func NewGetStatusHandler(
	courses course.Repository,
	viewings progress.ViewingRepository,
	approvals progress.ApprovalRepository,
	cache progress.StatusCache,
	logger *zap.Logger,
) *GetStatusHandler {
	return &GetStatusHandler{
		courses:   courses,
		viewings:  viewings,
		approvals: approvals,
		cache:     cache,
		logger:    logger,
	}
}

// Handle executes the query. The status cache is consulted first; a miss
// falls through to a live derivation which backfills the cache.
func (h *GetStatusHandler) Handle(ctx context.Context, q GetStatusQuery) (*GetStatusResult, error) {
	if cached, ok := h.cachedStatus(ctx, q); ok {
		return &GetStatusResult{Status: cached}, nil
	}

	total, err := h.courses.CountLessons(ctx, q.CourseID)
	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return nil, shared.NewDomainError("progress", "GetStatus", shared.ErrNotFound, "course not found")
		}
		return nil, shared.WrapError("progress", "GetStatus", shared.ErrInternal, "failed to count lessons", err)
	}

	viewed, err := h.viewings.CountForCourse(ctx, q.StudentID, q.CourseID)
	if err != nil {
		return nil, shared.WrapError("progress", "GetStatus", shared.ErrInternal, "failed to count viewings", err)
	}

	// The approval record only matters once coverage is complete: full
	// viewing is necessary but not sufficient for StatusApproved.
	approved := false
	if progress.FullyViewed(viewed, total) {
		approved, err = h.approvals.Exists(ctx, q.StudentID, q.CourseID)
		if err != nil {
			return nil, shared.WrapError("progress", "GetStatus", shared.ErrInternal, "failed to check approval", err)
		}
	}

	status := progress.Derive(viewed, total, approved)
	h.cacheStatus(ctx, q, status)

	return &GetStatusResult{Status: status}, nil
}

func (h *GetStatusHandler) cachedStatus(ctx context.Context, q GetStatusQuery) (progress.Status, bool) {
	if h.cache == nil {
		return "", false
	}
	status, ok, err := h.cache.Get(ctx, q.StudentID, q.CourseID)
	if err != nil {
		h.logger.Warn("status cache read failed",
			zap.Int64("student_id", int64(q.StudentID)),
			zap.Int64("course_id", int64(q.CourseID)),
			zap.Error(err))
		return "", false
	}
	return status, ok
}

func (h *GetStatusHandler) cacheStatus(ctx context.Context, q GetStatusQuery, status progress.Status) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Set(ctx, q.StudentID, q.CourseID, status); err != nil {
		h.logger.Warn("status cache write failed",
			zap.Int64("student_id", int64(q.StudentID)),
			zap.Int64("course_id", int64(q.CourseID)),
			zap.Error(err))
	}
}
