package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curso-hub/curso-learning-hub/internal/domain/course"
	"github.com/curso-hub/curso-learning-hub/internal/domain/shared"
)

func TestCreateLesson_Success(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	crs := f.addCourse(t, 10001)

	handler := NewCreateLessonHandler(f.courses)

	result, err := handler.Handle(context.Background(), CreateLessonCommand{
		CourseID: crs.ID,
		File:     &course.FileRef{Name: "slides.pdf", Type: "pdf"},
	})
	require.NoError(t, err)

	assert.NotZero(t, result.Lesson.ID)
	assert.Equal(t, crs.ID, result.Lesson.CourseID)

	lessons, err := f.courses.ListLessons(context.Background(), crs.ID)
	require.NoError(t, err)
	assert.Len(t, lessons, 1)
}

func TestCreateLesson_UnknownCourse(t *testing.T) {
	f := newFixture()
	handler := NewCreateLessonHandler(f.courses)

	_, err := handler.Handle(context.Background(), CreateLessonCommand{CourseID: 42, Text: "reading"})
	assert.True(t, shared.IsNotFound(err))
}

func TestCreateLesson_PreservesOrder(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	crs := f.addCourse(t, 10001)

	handler := NewCreateLessonHandler(f.courses)
	ctx := context.Background()

	first, err := handler.Handle(ctx, CreateLessonCommand{CourseID: crs.ID, Text: "one"})
	require.NoError(t, err)
	second, err := handler.Handle(ctx, CreateLessonCommand{CourseID: crs.ID, Text: "two"})
	require.NoError(t, err)

	lessons, err := f.courses.ListLessons(ctx, crs.ID)
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, first.Lesson.ID, lessons[0].ID)
	assert.Equal(t, second.Lesson.ID, lessons[1].ID)
}
