package query

import (
	"context"
	"errors"

	"github.com/curso-hub/curso-learning-hub/internal/domain/course"
	"github.com/curso-hub/curso-learning-hub/internal/domain/progress"
	"github.com/curso-hub/curso-learning-hub/internal/domain/shared"
	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
)

// ListLessonsQuery identifies the course.
type ListLessonsQuery struct {
	CourseID course.ID
}

// ListLessonsResult contains the course's lessons in creation order.
type ListLessonsResult struct {
	Lessons []course.Lesson
}

// ListViewedLessonsQuery identifies the (student, course) pair.
type ListViewedLessonsQuery struct {
	StudentID student.ID
	CourseID  course.ID
}

// ListViewedLessonsResult contains the ids of the course's lessons the
// student has viewed - the raw data behind status derivation.
type ListViewedLessonsResult struct {
	LessonIDs []course.LessonID
}

// ListLessonsHandler handles both lesson listing queries.
type ListLessonsHandler struct {
	courses  course.Repository
	viewings progress.ViewingRepository
}

// NewListLessonsHandler creates a new ListLessonsHandler.
func NewListLessonsHandler(courses course.Repository, viewings progress.ViewingRepository) *ListLessonsHandler {
	return &ListLessonsHandler{
		courses:  courses,
		viewings: viewings,
	}
}

// HandleList returns all lessons of a course.
func (h *ListLessonsHandler) HandleList(ctx context.Context, q ListLessonsQuery) (*ListLessonsResult, error) {
	lessons, err := h.courses.ListLessons(ctx, q.CourseID)
	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return nil, shared.NewDomainError("course", "ListLessons", shared.ErrNotFound, "course not found")
		}
		return nil, shared.WrapError("course", "ListLessons", shared.ErrInternal, "failed to list lessons", err)
	}
	return &ListLessonsResult{Lessons: lessons}, nil
}

// HandleViewed returns the ids of the course's lessons viewed by the student.
func (h *ListLessonsHandler) HandleViewed(ctx context.Context, q ListViewedLessonsQuery) (*ListViewedLessonsResult, error) {
	ids, err := h.viewings.ListLessonIDs(ctx, q.StudentID, q.CourseID)
	if err != nil {
		return nil, shared.WrapError("progress", "ListViewedLessons", shared.ErrInternal, "failed to list viewed lessons", err)
	}
	return &ListViewedLessonsResult{LessonIDs: ids}, nil
}
