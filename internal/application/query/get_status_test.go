package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/curso-hub/curso-learning-hub/internal/domain/progress"
	"github.com/curso-hub/curso-learning-hub/internal/domain/shared"
	"github.com/curso-hub/curso-learning-hub/internal/infrastructure/persistence/memory"
)

func newStatusHandler(f *fixture, cache progress.StatusCache) *GetStatusHandler {
	return NewGetStatusHandler(f.courses, f.viewings, f.approvals, cache, zap.NewNop())
}

func TestGetStatus_Lifecycle(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	f.addStudent(t, 1)
	c := f.addCourse(t, 10001)
	l1 := f.addLesson(t, c.ID)
	l2 := f.addLesson(t, c.ID)

	h := newStatusHandler(f, nil)
	q := GetStatusQuery{StudentID: 1, CourseID: c.ID}

	res, err := h.Handle(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, progress.StatusNotStarted, res.Status)

	f.view(t, 1, l1.ID)
	res, err = h.Handle(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, progress.StatusInProgress, res.Status)

	f.view(t, 1, l2.ID)
	res, err = h.Handle(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, progress.StatusFinished, res.Status)

	f.approve(t, 10001, 1, c.ID)
	res, err = h.Handle(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, progress.StatusApproved, res.Status)
}

func TestGetStatus_EmptyCourseNeedsApproval(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	f.addStudent(t, 1)
	c := f.addCourse(t, 10001)

	h := newStatusHandler(f, nil)
	q := GetStatusQuery{StudentID: 1, CourseID: c.ID}

	// A course with no lessons counts as fully viewed, but the status
	// stays finished until an approval record exists.
	res, err := h.Handle(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, progress.StatusFinished, res.Status)

	f.approve(t, 10001, 1, c.ID)
	res, err = h.Handle(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, progress.StatusApproved, res.Status)
}

func TestGetStatus_CourseNotFound(t *testing.T) {
	f := newFixture()
	f.addStudent(t, 1)

	h := newStatusHandler(f, nil)

	_, err := h.Handle(context.Background(), GetStatusQuery{StudentID: 1, CourseID: 404})
	assert.True(t, shared.IsNotFound(err))
}

func TestGetStatus_CacheShortCircuits(t *testing.T) {
	f := newFixture()
	cache := memory.NewStatusCache()
	require.NoError(t, cache.Set(context.Background(), 1, 404, progress.StatusApproved))

	h := newStatusHandler(f, cache)

	// The course does not exist; a cache hit never reaches the repositories.
	res, err := h.Handle(context.Background(), GetStatusQuery{StudentID: 1, CourseID: 404})
	require.NoError(t, err)
	assert.Equal(t, progress.StatusApproved, res.Status)
}

func TestGetStatus_BackfillsCacheOnMiss(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	f.addStudent(t, 1)
	c := f.addCourse(t, 10001)
	l := f.addLesson(t, c.ID)
	f.view(t, 1, l.ID)

	cache := memory.NewStatusCache()
	h := newStatusHandler(f, cache)

	res, err := h.Handle(context.Background(), GetStatusQuery{StudentID: 1, CourseID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, progress.StatusFinished, res.Status)

	cached, ok, err := cache.Get(context.Background(), 1, c.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, progress.StatusFinished, cached)
}
