package command

import (
	"context"
	"errors"

	"github.com/curso-hub/curso-learning-hub/internal/domain/course"
	"github.com/curso-hub/curso-learning-hub/internal/domain/professor"
	"github.com/curso-hub/curso-learning-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// COURSE LIFECYCLE COMMANDS
// Create, update and delete are professor-scoped: update and delete
// require ownership, and the owning professor is immutable after creation.
// ══════════════════════════════════════════════════════════════════════════════

// CreateCourseCommand contains the data to create a course.
type CreateCourseCommand struct {
	ProfessorID int64
	Name        string
	Description string
	Banner      string
}

// UpdateCourseCommand contains the mutable course fields.
type UpdateCourseCommand struct {
	ProfessorID int64
	CourseID    course.ID
	Name        string
	Description string
	Banner      string
}

// DeleteCourseCommand identifies the course to delete.
type DeleteCourseCommand struct {
	ProfessorID int64
	CourseID    course.ID
}

// CourseResult contains the affected course.
type CourseResult struct {
	Course *course.Course
}

// CourseHandler handles the course lifecycle commands.
type CourseHandler struct {
	courses    course.Repository
	professors professor.Repository
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courses course.Repository, professors professor.Repository) *CourseHandler {
	return &CourseHandler{
		courses:    courses,
		professors: professors,
	}
}

// HandleCreate creates a course owned by an existing professor.
func (h *CourseHandler) HandleCreate(ctx context.Context, cmd CreateCourseCommand) (*CourseResult, error) {
	exists, err := h.professors.Exists(ctx, professor.ID(cmd.ProfessorID))
	if err != nil {
		return nil, shared.WrapError("course", "Create", shared.ErrInternal, "failed to check professor", err)
	}
	if !exists {
		return nil, shared.NewDomainError("course", "Create", shared.ErrNotFound, "professor not found")
	}

	c, err := course.New(cmd.Name, cmd.Description, cmd.Banner, cmd.ProfessorID)
	if err != nil {
		return nil, shared.WrapError("course", "Create", shared.ErrInvalidArgument, "invalid course data", err)
	}

	if err := h.courses.Create(ctx, c); err != nil {
		return nil, shared.WrapError("course", "Create", shared.ErrInternal, "failed to create course", err)
	}

	return &CourseResult{Course: c}, nil
}

// HandleUpdate updates a course the professor owns. ProfessorID is never
// changed by the update.
func (h *CourseHandler) HandleUpdate(ctx context.Context, cmd UpdateCourseCommand) (*CourseResult, error) {
	c, err := h.courses.GetOwned(ctx, cmd.CourseID, cmd.ProfessorID)
	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return nil, shared.NewDomainError("course", "Update", shared.ErrNotFound, "course not found")
		}
		return nil, shared.WrapError("course", "Update", shared.ErrInternal, "failed to load course", err)
	}

	if err := c.ApplyUpdate(cmd.Name, cmd.Description, cmd.Banner); err != nil {
		return nil, shared.WrapError("course", "Update", shared.ErrInvalidArgument, "invalid course data", err)
	}

	if err := h.courses.Update(ctx, c); err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return nil, shared.NewDomainError("course", "Update", shared.ErrNotFound, "course not found")
		}
		return nil, shared.WrapError("course", "Update", shared.ErrInternal, "failed to update course", err)
	}

	return &CourseResult{Course: c}, nil
}

// HandleDelete deletes a course the professor owns. Lessons, access set
// entries, viewing records and approvals go with it via storage cascade.
func (h *CourseHandler) HandleDelete(ctx context.Context, cmd DeleteCourseCommand) error {
	if _, err := h.courses.GetOwned(ctx, cmd.CourseID, cmd.ProfessorID); err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return shared.NewDomainError("course", "Delete", shared.ErrNotFound, "course not found")
		}
		return shared.WrapError("course", "Delete", shared.ErrInternal, "failed to load course", err)
	}

	if err := h.courses.Delete(ctx, cmd.CourseID); err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return shared.NewDomainError("course", "Delete", shared.ErrNotFound, "course not found")
		}
		return shared.WrapError("course", "Delete", shared.ErrInternal, "failed to delete course", err)
	}

	return nil
}
