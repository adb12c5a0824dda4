package query

import (
	"context"
	"errors"

	"github.com/curso-hub/curso-learning-hub/internal/domain/course"
	"github.com/curso-hub/curso-learning-hub/internal/domain/shared"
	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
)

// GetCourseForStudentQuery identifies the (course, student) pair.
type GetCourseForStudentQuery struct {
	CourseID  course.ID
	StudentID student.ID
}

// CourseView is the course as shown to an enrolled student. The owning
// professor's identifier is deliberately stripped.
type CourseView struct {
	ID          course.ID
	Name        string
	Description string
	Banner      string
}

// GetCourseForStudentResult contains the course view.
type GetCourseForStudentResult struct {
	Course CourseView
}

// GetCourseForStudentHandler handles the GetCourseForStudentQuery.
type GetCourseForStudentHandler struct {
	courses course.Repository
}

// NewGetCourseForStudentHandler creates a new GetCourseForStudentHandler.
func NewGetCourseForStudentHandler(courses course.Repository) *GetCourseForStudentHandler {
	return &GetCourseForStudentHandler{courses: courses}
}

// Handle executes the query. The course is returned only when the student
// is in its access set; otherwise the caller cannot distinguish a missing
// course from a missing enrollment.
func (h *GetCourseForStudentHandler) Handle(ctx context.Context, q GetCourseForStudentQuery) (*GetCourseForStudentResult, error) {
	c, err := h.courses.GetForStudent(ctx, q.CourseID, q.StudentID)
	if err != nil {
		if errors.Is(err, course.ErrNotEnrolled) || errors.Is(err, course.ErrNotFound) {
			return nil, shared.NewDomainError("course", "GetForStudent", shared.ErrNotFound, "course not found or student not enrolled")
		}
		return nil, shared.WrapError("course", "GetForStudent", shared.ErrInternal, "failed to load course", err)
	}

	return &GetCourseForStudentResult{
		Course: CourseView{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Banner:      c.Banner,
		},
	}, nil
}
