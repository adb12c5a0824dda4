package command

import (
	"context"
	"errors"

	"github.com/curso-hub/curso-learning-hub/internal/domain/course"
	"github.com/curso-hub/curso-learning-hub/internal/domain/shared"
)

// CreateLessonCommand contains the data to add a lesson to a course.
// Exactly one content payload (text, file or link) is expected, but the
// engine does not enforce mutual exclusion.
type CreateLessonCommand struct {
	CourseID course.ID
	Text     string
	File     *course.FileRef
	Link     string
}

// CreateLessonResult contains the created lesson.
type CreateLessonResult struct {
	Lesson *course.Lesson
}

// CreateLessonHandler handles the CreateLessonCommand.
type CreateLessonHandler struct {
	courses course.Repository
}

// NewCreateLessonHandler creates a new CreateLessonHandler.
func NewCreateLessonHandler(courses course.Repository) *CreateLessonHandler {
	return &CreateLessonHandler{courses: courses}
}

// Handle executes the command.
func (h *CreateLessonHandler) Handle(ctx context.Context, cmd CreateLessonCommand) (*CreateLessonResult, error) {
	if _, err := h.courses.GetByID(ctx, cmd.CourseID); err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return nil, shared.NewDomainError("lesson", "Create", shared.ErrNotFound, "course not found")
		}
		return nil, shared.WrapError("lesson", "Create", shared.ErrInternal, "failed to load course", err)
	}

	l := &course.Lesson{
		CourseID: cmd.CourseID,
		Text:     cmd.Text,
		File:     cmd.File,
		Link:     cmd.Link,
	}

	if err := h.courses.AddLesson(ctx, l); err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return nil, shared.NewDomainError("lesson", "Create", shared.ErrNotFound, "course not found")
		}
		return nil, shared.WrapError("lesson", "Create", shared.ErrInternal, "failed to create lesson", err)
	}

	return &CreateLessonResult{Lesson: l}, nil
}
