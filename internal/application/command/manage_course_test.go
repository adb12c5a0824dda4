package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curso-hub/curso-learning-hub/internal/domain/shared"
)

func TestCreateCourse_Success(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)

	handler := NewCourseHandler(f.courses, f.professors)

	result, err := handler.HandleCreate(context.Background(), CreateCourseCommand{
		ProfessorID: 10001,
		Name:        "Go Fundamentals",
		Description: "intro",
	})
	require.NoError(t, err)

	assert.NotZero(t, result.Course.ID)
	assert.Equal(t, int64(10001), result.Course.ProfessorID)
}

func TestCreateCourse_UnknownProfessor(t *testing.T) {
	f := newFixture()
	handler := NewCourseHandler(f.courses, f.professors)

	_, err := handler.HandleCreate(context.Background(), CreateCourseCommand{
		ProfessorID: 10001,
		Name:        "Go Fundamentals",
	})
	assert.True(t, shared.IsNotFound(err))
}

func TestUpdateCourse_OwnershipEnforced(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	f.addProfessor(t, 10002)
	crs := f.addCourse(t, 10001)

	handler := NewCourseHandler(f.courses, f.professors)
	ctx := context.Background()

	// The owner can update.
	result, err := handler.HandleUpdate(ctx, UpdateCourseCommand{
		ProfessorID: 10001,
		CourseID:    crs.ID,
		Name:        "Go Advanced",
	})
	require.NoError(t, err)
	assert.Equal(t, "Go Advanced", result.Course.Name)

	// Another professor cannot tell the course from a missing one.
	_, err = handler.HandleUpdate(ctx, UpdateCourseCommand{
		ProfessorID: 10002,
		CourseID:    crs.ID,
		Name:        "Hijacked",
	})
	assert.True(t, shared.IsNotFound(err))
}

func TestDeleteCourse_OwnershipEnforced(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	f.addProfessor(t, 10002)
	crs := f.addCourse(t, 10001)

	handler := NewCourseHandler(f.courses, f.professors)
	ctx := context.Background()

	err := handler.HandleDelete(ctx, DeleteCourseCommand{ProfessorID: 10002, CourseID: crs.ID})
	assert.True(t, shared.IsNotFound(err))

	require.NoError(t, handler.HandleDelete(ctx, DeleteCourseCommand{ProfessorID: 10001, CourseID: crs.ID}))

	_, err = f.courses.GetByID(ctx, crs.ID)
	assert.Error(t, err)
}
