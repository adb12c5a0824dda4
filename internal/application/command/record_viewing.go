package command

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
// RECORD VIEWING COMMAND
// Records that a student viewed a lesson. Idempotent per (student, lesson):
// the unique constraint in storage is the enforcement point, a repeated
// call succeeds without creating a duplicate. Enrollment in the lesson's
// course is not required.
// ══════════════════════════════════════════════════════════════════════════════

// RecordViewingCommand identifies the student and the viewed lesson.
type RecordViewingCommand struct {
	StudentID student.ID
	LessonID  course.LessonID
}

// RecordViewingResult reports whether a new record was created.
type RecordViewingResult struct {
	// Created is false when the viewing was already recorded earlier.
	Created bool

	// CourseID is the course owning the viewed lesson.
	CourseID course.ID
}

// RecordViewingHandler handles the RecordViewingCommand.
type RecordViewingHandler struct {
	students student.Repository
	courses  course.Repository
	viewings progress.ViewingRepository
	cache    progress.StatusCache
	logger   *zap.Logger
}

// NewRecordViewingHandler creates a new RecordViewingHandler.
// cache may be nil when the status cache is disabled.
func NewRecordViewingHandler(
	students student.Repository,
	courses course.Repository,
	viewings progress.ViewingRepository,
	cache progress.StatusCache,
	logger *zap.Logger,
) *RecordViewingHandler {
	return &RecordViewingHandler{
		students: students,
		courses:  courses,
		viewings: viewings,
		cache:    cache,
		logger:   logger,
	}
}

// Handle executes the command.
func (h *RecordViewingHandler) Handle(ctx context.Context, cmd RecordViewingCommand) (*RecordViewingResult, error) {
	if _, err := h.students.GetByID(ctx, cmd.StudentID); err != nil {
		if errors.Is(err, student.ErrNotFound) {
			return nil, shared.NewDomainError("progress", "RecordViewing", shared.ErrNotFound, "student or lesson not found")
		}
		return nil, shared.WrapError("progress", "RecordViewing", shared.ErrInternal, "failed to load student", err)
	}

	lesson, err := h.courses.GetLesson(ctx, cmd.LessonID)
	if err != nil {
		if errors.Is(err, course.ErrLessonNotFound) {
			return nil, shared.NewDomainError("progress", "RecordViewing", shared.ErrNotFound, "student or lesson not found")
		}
		return nil, shared.WrapError("progress", "RecordViewing", shared.ErrInternal, "failed to load lesson", err)
	}

	created, err := h.viewings.Record(ctx, progress.NewViewingRecord(cmd.StudentID, cmd.LessonID))
	if err != nil {
		return nil, shared.WrapError("progress", "RecordViewing", shared.ErrInternal, "failed to record viewing", err)
	}

	if created && h.cache != nil {
		// The derived status for this pair may have moved forward.
		if err := h.cache.Invalidate(ctx, cmd.StudentID, lesson.CourseID); err != nil {
			h.logger.Warn("failed to invalidate status cache",
				zap.Int64("student_id", int64(cmd.StudentID)),
				zap.Int64("course_id", int64(lesson.CourseID)),
				zap.Error(err))
		}
	}

	return &RecordViewingResult{Created: created, CourseID: lesson.CourseID}, nil
}
