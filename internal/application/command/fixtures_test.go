package command

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/curso-hub/curso-learning-hub/internal/domain/course"
	"github.com/curso-hub/curso-learning-hub/internal/domain/professor"
	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
	"github.com/curso-hub/curso-learning-hub/internal/infrastructure/persistence/memory"
)

// fixture wires the in-memory persistence stack for command tests.
type fixture struct {
	professors *memory.ProfessorRepository
	students   *memory.StudentRepository
	courses    *memory.CourseRepository
	viewings   *memory.ViewingRepository
	approvals  *memory.ApprovalRepository
}

func newFixture() *fixture {
	students := memory.NewStudentRepository()
	courses := memory.NewCourseRepository(students)
	return &fixture{
		professors: memory.NewProfessorRepository(),
		students:   students,
		courses:    courses,
		viewings:   memory.NewViewingRepository(courses),
		approvals:  memory.NewApprovalRepository(),
	}
}

func (f *fixture) addProfessor(t *testing.T, id professor.ID) *professor.Professor {
	t.Helper()
	p, err := professor.New(id, fmt.Sprintf("Professor %d", id), professor.Login(fmt.Sprintf("prof%d", id)))
	require.NoError(t, err)
	require.NoError(t, f.professors.Create(context.Background(), p))
	return p
}

func (f *fixture) addStudent(t *testing.T, id student.ID) *student.Student {
	t.Helper()
	s, err := student.New(id, fmt.Sprintf("Student %d", id), student.Login(fmt.Sprintf("stud%d", id)))
	require.NoError(t, err)
	require.NoError(t, f.students.Create(context.Background(), s))
	return s
}

func (f *fixture) addCourse(t *testing.T, professorID int64) *course.Course {
	t.Helper()
	c, err := course.New("Go Fundamentals", "intro", "banner.png", professorID)
	require.NoError(t, err)
	require.NoError(t, f.courses.Create(context.Background(), c))
	return c
}

func (f *fixture) addLesson(t *testing.T, courseID course.ID) *course.Lesson {
	t.Helper()
	l := &course.Lesson{CourseID: courseID, Text: "lesson text"}
	require.NoError(t, f.courses.AddLesson(context.Background(), l))
	return l
}
