package command

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/curso-hub/curso-learning-hub/internal/domain/course"
	"github.com/curso-hub/curso-learning-hub/internal/domain/professor"
	"github.com/curso-hub/curso-learning-hub/internal/domain/progress"
	"github.com/curso-hub/curso-learning-hub/internal/domain/shared"
	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE APPROVAL COMMAND
// The approval workflow:
//  1. full-viewing precondition - fails with PreconditionFailed otherwise;
//  2. idempotency - an existing (professor, student, course) approval is a
//     success, not an error, so re-submission is safe;
//  3. insert - the storage unique constraint is the true enforcement
//     point, a conflict on insert is folded into the idempotent path;
//  4. side effects - the student's approved display flag is refreshed and
//     the external status-sync collaborator is notified best-effort,
//     time-bounded and off the request path. Notification failure never
//     rolls back the approval.
// ══════════════════════════════════════════════════════════════════════════════

// CreateApprovalCommand identifies the (professor, student, course) triple.
type CreateApprovalCommand struct {
	ProfessorID int64
	StudentID   student.ID
	CourseID    course.ID
}

// CreateApprovalResult reports the outcome of the workflow.
type CreateApprovalResult struct {
	// AlreadyApproved is true when an approval for the triple existed
	// before this call. Both outcomes are successes.
	AlreadyApproved bool

	// Approval is the persisted record (nil when AlreadyApproved).
	Approval *progress.Approval
}

// CreateApprovalHandler handles the CreateApprovalCommand.
type CreateApprovalHandler struct {
	professors professor.Repository
	students   student.Repository
	courses    course.Repository
	viewings   progress.ViewingRepository
	approvals  progress.ApprovalRepository
	notifier   progress.Notifier
	cache      progress.StatusCache
	logger     *zap.Logger

	notifyTimeout time.Duration
}

// NewCreateApprovalHandler creates a new CreateApprovalHandler.
// notifier and cache may be nil when those collaborators are disabled.
func NewCreateApprovalHandler(
	professors professor.Repository,
	students student.Repository,
	courses course.Repository,
	viewings progress.ViewingRepository,
	approvals progress.ApprovalRepository,
	notifier progress.Notifier,
	cache progress.StatusCache,
	logger *zap.Logger,
	notifyTimeout time.Duration,
) *CreateApprovalHandler {
	if notifyTimeout <= 0 {
		notifyTimeout = 5 * time.Second
	}
	return &CreateApprovalHandler{
		professors:    professors,
		students:      students,
		courses:       courses,
		viewings:      viewings,
		approvals:     approvals,
		notifier:      notifier,
		cache:         cache,
		logger:        logger,
		notifyTimeout: notifyTimeout,
	}
}

// Handle executes the approval workflow.
func (h *CreateApprovalHandler) Handle(ctx context.Context, cmd CreateApprovalCommand) (*CreateApprovalResult, error) {
	exists, err := h.professors.Exists(ctx, professor.ID(cmd.ProfessorID))
	if err != nil {
		return nil, shared.WrapError("approval", "Create", shared.ErrInternal, "failed to check professor", err)
	}
	if !exists {
		return nil, shared.NewDomainError("approval", "Create", shared.ErrNotFound, "professor not found")
	}

	if _, err := h.students.GetByID(ctx, cmd.StudentID); err != nil {
		if errors.Is(err, student.ErrNotFound) {
			return nil, shared.NewDomainError("approval", "Create", shared.ErrNotFound, "student not found")
		}
		return nil, shared.WrapError("approval", "Create", shared.ErrInternal, "failed to load student", err)
	}

	fullyViewed, err := h.isFullyViewed(ctx, cmd.StudentID, cmd.CourseID)
	if err != nil {
		return nil, err
	}
	if !fullyViewed {
		return nil, shared.NewDomainError("approval", "Create", shared.ErrPreconditionFailed, "student does not meet approval criteria")
	}

	alreadyApproved, err := h.approvals.ExistsTriple(ctx, cmd.ProfessorID, cmd.StudentID, cmd.CourseID)
	if err != nil {
		return nil, shared.WrapError("approval", "Create", shared.ErrInternal, "failed to check existing approval", err)
	}
	if alreadyApproved {
		return &CreateApprovalResult{AlreadyApproved: true}, nil
	}

	a := progress.NewApproval(cmd.ProfessorID, cmd.StudentID, cmd.CourseID)
	if err := h.approvals.Create(ctx, a); err != nil {
		if errors.Is(err, progress.ErrApprovalExists) {
			// Concurrent identical request won the check-then-act race.
			// The unique constraint already guarantees exactly one record.
			return &CreateApprovalResult{AlreadyApproved: true}, nil
		}
		return nil, shared.WrapError("approval", "Create", shared.ErrInternal, "failed to create approval", err)
	}

	h.refreshDisplayFlag(ctx, cmd.StudentID, cmd.CourseID)
	h.notify(ctx, cmd)

	return &CreateApprovalResult{Approval: a}, nil
}

// isFullyViewed computes the approval precondition: the student has viewed
// every lesson of the course. A course with zero lessons trivially passes.
func (h *CreateApprovalHandler) isFullyViewed(ctx context.Context, studentID student.ID, courseID course.ID) (bool, error) {
	total, err := h.courses.CountLessons(ctx, courseID)
	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return false, shared.NewDomainError("approval", "Create", shared.ErrNotFound, "course not found")
		}
		return false, shared.WrapError("approval", "Create", shared.ErrInternal, "failed to count lessons", err)
	}

	viewed, err := h.viewings.CountForCourse(ctx, studentID, courseID)
	if err != nil {
		return false, shared.WrapError("approval", "Create", shared.ErrInternal, "failed to count viewings", err)
	}

	return progress.FullyViewed(viewed, total), nil
}

// refreshDisplayFlag updates the student's cached approved flag and drops
// the derived-status cache entry. Both are display concerns: failures are
// logged and never surfaced.
func (h *CreateApprovalHandler) refreshDisplayFlag(ctx context.Context, studentID student.ID, courseID course.ID) {
	if err := h.students.SetApproved(ctx, studentID, true); err != nil {
		h.logger.Warn("failed to refresh approved display flag",
			zap.Int64("student_id", int64(studentID)),
			zap.Error(err))
	}

	if h.cache != nil {
		if err := h.cache.Invalidate(ctx, studentID, courseID); err != nil {
			h.logger.Warn("failed to invalidate status cache",
				zap.Int64("student_id", int64(studentID)),
				zap.Int64("course_id", int64(courseID)),
				zap.Error(err))
		}
	}
}

// notify fires the best-effort status-sync notification off the request
// path. The call gets its own bounded context so it can neither delay nor
// fail the approval response.
func (h *CreateApprovalHandler) notify(ctx context.Context, cmd CreateApprovalCommand) {
	if h.notifier == nil {
		return
	}

	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.notifyTimeout)
	go func() {
		defer cancel()
		if err := h.notifier.StudentApproved(notifyCtx, cmd.ProfessorID, cmd.CourseID, cmd.StudentID); err != nil {
			h.logger.Warn("status-sync notification failed",
				zap.Int64("professor_id", cmd.ProfessorID),
				zap.Int64("course_id", int64(cmd.CourseID)),
				zap.Int64("student_id", int64(cmd.StudentID)),
				zap.Error(err))
		}
	}()
}
