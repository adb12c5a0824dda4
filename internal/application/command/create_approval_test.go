package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/curso-hub/curso-learning-hub/internal/domain/course"
	"github.com/curso-hub/curso-learning-hub/internal/domain/progress"
	"github.com/curso-hub/curso-learning-hub/internal/domain/shared"
	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
	"github.com/curso-hub/curso-learning-hub/internal/infrastructure/persistence/memory"
)

// notifierStub records StudentApproved calls and can fail on demand.
type notifierStub struct {
	err    error
	called chan struct{}
}

func newNotifierStub(err error) *notifierStub {
	return &notifierStub{err: err, called: make(chan struct{}, 1)}
}

func (n *notifierStub) StudentApproved(context.Context, int64, course.ID, student.ID) error {
	select {
	case n.called <- struct{}{}:
	default:
	}
	return n.err
}

func (n *notifierStub) waitCalled(t *testing.T) {
	t.Helper()
	select {
	case <-n.called:
	case <-time.After(time.Second):
		t.Fatal("notifier was not called")
	}
}

func newApprovalHandler(f *fixture, notifier progress.Notifier, cache progress.StatusCache) *CreateApprovalHandler {
	return NewCreateApprovalHandler(
		f.professors, f.students, f.courses, f.viewings, f.approvals,
		notifier, cache, zap.NewNop(), time.Second)
}

func (f *fixture) viewAll(t *testing.T, studentID student.ID, lessons ...*course.Lesson) {
	t.Helper()
	for _, l := range lessons {
		_, err := f.viewings.Record(context.Background(), progress.NewViewingRecord(studentID, l.ID))
		require.NoError(t, err)
	}
}

func TestCreateApproval_Success(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	f.addStudent(t, 1)
	crs := f.addCourse(t, 10001)
	l1 := f.addLesson(t, crs.ID)
	l2 := f.addLesson(t, crs.ID)
	f.viewAll(t, 1, l1, l2)

	handler := newApprovalHandler(f, nil, nil)
	ctx := context.Background()

	result, err := handler.Handle(ctx, CreateApprovalCommand{ProfessorID: 10001, StudentID: 1, CourseID: crs.ID})
	require.NoError(t, err)
	assert.False(t, result.AlreadyApproved)
	assert.True(t, result.Approval.Approved)

	exists, err := f.approvals.Exists(ctx, 1, crs.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// The displayed flag follows the authoritative record.
	s, err := f.students.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, s.Approved)
}

func TestCreateApproval_PreconditionNotMet(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	f.addStudent(t, 1)
	crs := f.addCourse(t, 10001)
	l1 := f.addLesson(t, crs.ID)
	f.addLesson(t, crs.ID)
	f.viewAll(t, 1, l1)

	handler := newApprovalHandler(f, nil, nil)

	_, err := handler.Handle(context.Background(), CreateApprovalCommand{ProfessorID: 10001, StudentID: 1, CourseID: crs.ID})
	assert.True(t, shared.IsPreconditionFailed(err))

	exists, lookupErr := f.approvals.Exists(context.Background(), 1, crs.ID)
	require.NoError(t, lookupErr)
	assert.False(t, exists)
}

func TestCreateApproval_EmptyCourseIsEligible(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	f.addStudent(t, 1)
	crs := f.addCourse(t, 10001)

	handler := newApprovalHandler(f, nil, nil)

	result, err := handler.Handle(context.Background(), CreateApprovalCommand{ProfessorID: 10001, StudentID: 1, CourseID: crs.ID})
	require.NoError(t, err)
	assert.False(t, result.AlreadyApproved)
}

func TestCreateApproval_Idempotent(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	f.addStudent(t, 1)
	crs := f.addCourse(t, 10001)

	handler := newApprovalHandler(f, nil, nil)
	ctx := context.Background()
	cmd := CreateApprovalCommand{ProfessorID: 10001, StudentID: 1, CourseID: crs.ID}

	first, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, first.AlreadyApproved)

	second, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, second.AlreadyApproved, "re-submission is a success, not an error")
	assert.Nil(t, second.Approval)
}

func TestCreateApproval_UnknownProfessor(t *testing.T) {
	f := newFixture()
	f.addStudent(t, 1)

	handler := newApprovalHandler(f, nil, nil)

	_, err := handler.Handle(context.Background(), CreateApprovalCommand{ProfessorID: 10001, StudentID: 1, CourseID: 1})
	assert.True(t, shared.IsNotFound(err))
}

func TestCreateApproval_UnknownStudent(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	crs := f.addCourse(t, 10001)

	handler := newApprovalHandler(f, nil, nil)

	_, err := handler.Handle(context.Background(), CreateApprovalCommand{ProfessorID: 10001, StudentID: 1, CourseID: crs.ID})
	assert.True(t, shared.IsNotFound(err))
}

func TestCreateApproval_UnknownCourse(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	f.addStudent(t, 1)

	handler := newApprovalHandler(f, nil, nil)

	_, err := handler.Handle(context.Background(), CreateApprovalCommand{ProfessorID: 10001, StudentID: 1, CourseID: 42})
	assert.True(t, shared.IsNotFound(err))
}

func TestCreateApproval_NotifierFailureDoesNotRollBack(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	f.addStudent(t, 1)
	crs := f.addCourse(t, 10001)

	notifier := newNotifierStub(errors.New("endpoint down"))
	handler := newApprovalHandler(f, notifier, nil)
	ctx := context.Background()

	result, err := handler.Handle(ctx, CreateApprovalCommand{ProfessorID: 10001, StudentID: 1, CourseID: crs.ID})
	require.NoError(t, err, "notification failure must not fail the approval")
	assert.False(t, result.AlreadyApproved)
	notifier.waitCalled(t)

	exists, err := f.approvals.Exists(ctx, 1, crs.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCreateApproval_InvalidatesStatusCache(t *testing.T) {
	f := newFixture()
	f.addProfessor(t, 10001)
	f.addStudent(t, 1)
	crs := f.addCourse(t, 10001)

	cache := memory.NewStatusCache()
	require.NoError(t, cache.Set(context.Background(), 1, crs.ID, progress.StatusFinished))
	handler := newApprovalHandler(f, nil, cache)

	_, err := handler.Handle(context.Background(), CreateApprovalCommand{ProfessorID: 10001, StudentID: 1, CourseID: crs.ID})
	require.NoError(t, err)

	_, ok, err := cache.Get(context.Background(), 1, crs.ID)
	require.NoError(t, err)
	assert.False(t, ok, "stale status must be dropped after approval")
}
