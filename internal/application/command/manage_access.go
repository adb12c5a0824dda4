package command

import (
	"context"
	"errors"

	"github.com/curso-hub/curso-learning-hub/internal/domain/course"
	"github.com/curso-hub/curso-learning-hub/internal/domain/shared"
	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// ACCESS SET COMMANDS
// Grant is set union, revoke is set difference, both against the course's
// current access set. The batch is all-or-nothing with respect to the
// student existence check: if any requested id is absent, nothing is
// mutated. The repository runs check and mutation in one transaction.
// ══════════════════════════════════════════════════════════════════════════════

// AccessCommand identifies the course and the student batch.
type AccessCommand struct {
	CourseID   course.ID
	StudentIDs []student.ID
}

// Validate validates the command.
func (c AccessCommand) Validate() error {
	if len(c.StudentIDs) == 0 {
		return shared.NewDomainError("course", "Access", shared.ErrInvalidArgument, "student id batch must not be empty")
	}
	return nil
}

// AccessHandler handles grant and revoke access commands.
type AccessHandler struct {
	courses course.Repository
}

// NewAccessHandler creates a new AccessHandler.
func NewAccessHandler(courses course.Repository) *AccessHandler {
	return &AccessHandler{courses: courses}
}

// HandleGrant adds the batch to the course's access set.
func (h *AccessHandler) HandleGrant(ctx context.Context, cmd AccessCommand) error {
	return h.handle(ctx, "GrantAccess", cmd, h.courses.GrantAccess)
}

// HandleRevoke removes the batch from the course's access set.
func (h *AccessHandler) HandleRevoke(ctx context.Context, cmd AccessCommand) error {
	return h.handle(ctx, "RevokeAccess", cmd, h.courses.RevokeAccess)
}

func (h *AccessHandler) handle(
	ctx context.Context,
	op string,
	cmd AccessCommand,
	mutate func(ctx context.Context, id course.ID, studentIDs []student.ID) error,
) error {
	if _, err := h.courses.GetByID(ctx, cmd.CourseID); err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return shared.NewDomainError("course", op, shared.ErrNotFound, "course not found")
		}
		return shared.WrapError("course", op, shared.ErrInternal, "failed to load course", err)
	}

	if err := cmd.Validate(); err != nil {
		return err
	}

	err := mutate(ctx, cmd.CourseID, cmd.StudentIDs)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, course.ErrStudentsNotFound):
		return shared.NewDomainError("course", op, shared.ErrNotFound, "one or more students not found")
	case errors.Is(err, course.ErrNotFound):
		return shared.NewDomainError("course", op, shared.ErrNotFound, "course not found")
	default:
		return shared.WrapError("course", op, shared.ErrInternal, "failed to mutate access set", err)
	}
}
