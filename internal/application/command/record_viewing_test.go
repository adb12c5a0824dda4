package command

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

func TestRecordViewing_Idempotent(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	f.addStudent(t, 1)
	crs := f.addCourse(t, 10001)
	lesson := f.addLesson(t, crs.ID)

	handler := NewRecordViewingHandler(f.students, f.courses, f.viewings, nil, zap.NewNop())
	ctx := context.Background()

	first, err := handler.Handle(ctx, RecordViewingCommand{StudentID: 1, LessonID: lesson.ID})
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Equal(t, crs.ID, first.CourseID)

	second, err := handler.Handle(ctx, RecordViewingCommand{StudentID: 1, LessonID: lesson.ID})
	require.NoError(t, err)
	assert.False(t, second.Created, "re-viewing must not create a second record")

	count, err := f.viewings.CountForCourse(ctx, 1, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecordViewing_UnknownStudent(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	crs := f.addCourse(t, 10001)
	lesson := f.addLesson(t, crs.ID)

	handler := NewRecordViewingHandler(f.students, f.courses, f.viewings, nil, zap.NewNop())

	_, err := handler.Handle(context.Background(), RecordViewingCommand{StudentID: 999, LessonID: lesson.ID})
	assert.True(t, shared.IsNotFound(err))
}

func TestRecordViewing_UnknownLesson(t *testing.T) {
	f := newFixture()
	f.addStudent(t, 1)

	handler := NewRecordViewingHandler(f.students, f.courses, f.viewings, nil, zap.NewNop())

	_, err := handler.Handle(context.Background(), RecordViewingCommand{StudentID: 1, LessonID: 42})
	assert.True(t, shared.IsNotFound(err))
}

func TestRecordViewing_InvalidatesStatusCache(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	f.addStudent(t, 1)
	crs := f.addCourse(t, 10001)
	lesson := f.addLesson(t, crs.ID)

	cache := memory.NewStatusCache()
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, 1, crs.ID, progress.StatusNotStarted))

	handler := NewRecordViewingHandler(f.students, f.courses, f.viewings, cache, zap.NewNop())

	_, err := handler.Handle(ctx, RecordViewingCommand{StudentID: 1, LessonID: lesson.ID})
	require.NoError(t, err)

	_, ok, err := cache.Get(ctx, 1, crs.ID)
	require.NoError(t, err)
	assert.False(t, ok, "stale status must be dropped after a new viewing")
}
