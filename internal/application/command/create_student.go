package command

import (
	"context"
	"errors"

	"github.com/curso-hub/curso-learning-hub/internal/domain/shared"
	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
	"github.com/curso-hub/curso-learning-hub/pkg/idgen"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE STUDENT COMMAND
// Same allocation scheme as professors, wider identifier range. The
// approved display flag always starts false.
// ══════════════════════════════════════════════════════════════════════════════

// CreateStudentCommand contains the data to create a student.
type CreateStudentCommand struct {
	// DisplayName is the student's display name.
	DisplayName string

	// Login is the unique login name.
	Login string
}

// Validate validates the command.
func (c CreateStudentCommand) Validate() error {
	if c.DisplayName == "" {
		return shared.NewDomainError("student", "Create", shared.ErrInvalidArgument, "display name is required")
	}
	if c.Login == "" {
		return shared.NewDomainError("student", "Create", shared.ErrInvalidArgument, "login is required")
	}
	return nil
}

// CreateStudentResult contains the created student.
type CreateStudentResult struct {
	Student *student.Student
}

// CreateStudentHandler handles the CreateStudentCommand.
type CreateStudentHandler struct {
	students  student.Repository
	allocator *idgen.Allocator
}

// NewCreateStudentHandler creates a new CreateStudentHandler.
func NewCreateStudentHandler(students student.Repository, allocator *idgen.Allocator) *CreateStudentHandler {
	return &CreateStudentHandler{
		students:  students,
		allocator: allocator,
	}
}

// Handle executes the command.
func (h *CreateStudentHandler) Handle(ctx context.Context, cmd CreateStudentCommand) (*CreateStudentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < idgen.MaxAllocationAttempts; attempt++ {
		s, err := student.New(student.ID(h.allocator.StudentID()), cmd.DisplayName, student.Login(cmd.Login))
		if err != nil {
			return nil, shared.WrapError("student", "Create", shared.ErrInvalidArgument, "invalid student data", err)
		}

		err = h.students.Create(ctx, s)
		switch {
		case err == nil:
			return &CreateStudentResult{Student: s}, nil
		case errors.Is(err, student.ErrLoginTaken):
			return nil, shared.NewDomainError("student", "Create", shared.ErrConflict, "login name already taken")
		case errors.Is(err, student.ErrAlreadyExists):
			lastErr = err
		default:
			return nil, shared.WrapError("student", "Create", shared.ErrInternal, "failed to create student", err)
		}
	}

	return nil, shared.WrapError("student", "Create", shared.ErrConflict, "could not allocate a unique identifier", lastErr)
}
