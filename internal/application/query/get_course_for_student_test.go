package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curso-hub/curso-learning-hub/internal/domain/shared"
	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
)

func TestGetCourseForStudent_Enrolled(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	f.addStudent(t, 1)
	c := f.addCourse(t, 10001)
	require.NoError(t, f.courses.GrantAccess(context.Background(), c.ID, []student.ID{1}))

	h := NewGetCourseForStudentHandler(f.courses)

	res, err := h.Handle(context.Background(), GetCourseForStudentQuery{CourseID: c.ID, StudentID: 1})
	require.NoError(t, err)
	assert.Equal(t, c.ID, res.Course.ID)
	assert.Equal(t, c.Name, res.Course.Name)
	assert.Equal(t, c.Description, res.Course.Description)
	assert.Equal(t, c.Banner, res.Course.Banner)
}

func TestGetCourseForStudent_NotEnrolled(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	f.addStudent(t, 1)
	c := f.addCourse(t, 10001)

	h := NewGetCourseForStudentHandler(f.courses)

	_, err := h.Handle(context.Background(), GetCourseForStudentQuery{CourseID: c.ID, StudentID: 1})
	assert.True(t, shared.IsNotFound(err))
}

func TestGetCourseForStudent_UnknownCourse(t *testing.T) {
	f := newFixture()
	f.addStudent(t, 1)

	h := NewGetCourseForStudentHandler(f.courses)

	// A missing course is indistinguishable from a missing enrollment.
	_, err := h.Handle(context.Background(), GetCourseForStudentQuery{CourseID: 404, StudentID: 1})
	assert.True(t, shared.IsNotFound(err))
}
