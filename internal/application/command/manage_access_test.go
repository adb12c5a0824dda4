package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curso-hub/curso-learning-hub/internal/domain/shared"
	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
)

func TestGrantAccess_Success(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	f.addStudent(t, 1)
	f.addStudent(t, 2)
	crs := f.addCourse(t, 10001)

	handler := NewAccessHandler(f.courses)
	err := handler.HandleGrant(context.Background(), AccessCommand{
		CourseID:   crs.ID,
		StudentIDs: []student.ID{1, 2},
	})
	require.NoError(t, err)

	access, err := f.courses.ListAccess(context.Background(), crs.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []student.ID{1, 2}, access)
}

func TestGrantAccess_AllOrNothing(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	f.addStudent(t, 1)
	crs := f.addCourse(t, 10001)

	handler := NewAccessHandler(f.courses)
	err := handler.HandleGrant(context.Background(), AccessCommand{
		CourseID:   crs.ID,
		StudentIDs: []student.ID{1, 999},
	})
	assert.True(t, shared.IsNotFound(err))

	// The existing student must not have been granted either.
	access, err := f.courses.ListAccess(context.Background(), crs.ID)
	require.NoError(t, err)
	assert.Empty(t, access)
}

func TestGrantAccess_EmptyBatch(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	crs := f.addCourse(t, 10001)

	handler := NewAccessHandler(f.courses)
	err := handler.HandleGrant(context.Background(), AccessCommand{CourseID: crs.ID})
	assert.True(t, shared.IsInvalidArgument(err))
}

func TestGrantAccess_CourseNotFound(t *testing.T) {
	f := newFixture()
	f.addStudent(t, 1)

	handler := NewAccessHandler(f.courses)
	err := handler.HandleGrant(context.Background(), AccessCommand{
		CourseID:   42,
		StudentIDs: []student.ID{1},
	})
	assert.True(t, shared.IsNotFound(err))
}

func TestRevokeAccess_Success(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	f.addStudent(t, 1)
	f.addStudent(t, 2)
	crs := f.addCourse(t, 10001)

	handler := NewAccessHandler(f.courses)
	ctx := context.Background()
	require.NoError(t, handler.HandleGrant(ctx, AccessCommand{CourseID: crs.ID, StudentIDs: []student.ID{1, 2}}))

	require.NoError(t, handler.HandleRevoke(ctx, AccessCommand{CourseID: crs.ID, StudentIDs: []student.ID{1}}))

	access, err := f.courses.ListAccess(ctx, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, []student.ID{2}, access)
}

func TestRevokeAccess_AllOrNothing(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	f.addStudent(t, 1)
	crs := f.addCourse(t, 10001)

	handler := NewAccessHandler(f.courses)
	ctx := context.Background()
	require.NoError(t, handler.HandleGrant(ctx, AccessCommand{CourseID: crs.ID, StudentIDs: []student.ID{1}}))

	err := handler.HandleRevoke(ctx, AccessCommand{CourseID: crs.ID, StudentIDs: []student.ID{1, 999}})
	assert.True(t, shared.IsNotFound(err))

	access, err := f.courses.ListAccess(ctx, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, []student.ID{1}, access, "failed batch must not revoke anyone")
}
