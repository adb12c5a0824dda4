// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"errors"

	"github.com/curso-hub/curso-learning-hub/internal/domain/professor"
	"github.com/curso-hub/curso-learning-hub/internal/domain/shared"
	"github.com/curso-hub/curso-learning-hub/pkg/idgen"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE PROFESSOR COMMAND
// Allocates a random numeric identifier and creates the professor. An
// identifier collision on insert regenerates the candidate in a bounded
// loop; a taken login is surfaced to the caller as a conflict right away.
// ══════════════════════════════════════════════════════════════════════════════

// CreateProfessorCommand contains the data to create a professor.
type CreateProfessorCommand struct {
	// DisplayName is the professor's display name.
	DisplayName string

	// Login is the unique login name.
	Login string
}

// Validate validates the command.
func (c CreateProfessorCommand) Validate() error {
	if c.DisplayName == "" {
		return shared.NewDomainError("professor", "Create", shared.ErrInvalidArgument, "display name is required")
	}
	if c.Login == "" {
		return shared.NewDomainError("professor", "Create", shared.ErrInvalidArgument, "login is required")
	}
	return nil
}

// CreateProfessorResult contains the created professor.
type CreateProfessorResult struct {
	Professor *professor.Professor
}

// CreateProfessorHandler handles the CreateProfessorCommand.
type CreateProfessorHandler struct {
	professors professor.Repository
	allocator  *idgen.Allocator
}

// NewCreateProfessorHandler creates a new CreateProfessorHandler.
func NewCreateProfessorHandler(professors professor.Repository, allocator *idgen.Allocator) *CreateProfessorHandler {
	return &CreateProfessorHandler{
		professors: professors,
		allocator:  allocator,
	}
}

// Handle executes the command.
func (h *CreateProfessorHandler) Handle(ctx context.Context, cmd CreateProfessorCommand) (*CreateProfessorResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < idgen.MaxAllocationAttempts; attempt++ {
		p, err := professor.New(professor.ID(h.allocator.ProfessorID()), cmd.DisplayName, professor.Login(cmd.Login))
		if err != nil {
			return nil, shared.WrapError("professor", "Create", shared.ErrInvalidArgument, "invalid professor data", err)
		}

		err = h.professors.Create(ctx, p)
		switch {
		case err == nil:
			return &CreateProfessorResult{Professor: p}, nil
		case errors.Is(err, professor.ErrLoginTaken):
			return nil, shared.NewDomainError("professor", "Create", shared.ErrConflict, "login name already taken")
		case errors.Is(err, professor.ErrAlreadyExists):
			// Identifier collision: regenerate the candidate and retry.
			lastErr = err
		default:
			return nil, shared.WrapError("professor", "Create", shared.ErrInternal, "failed to create professor", err)
		}
	}

	return nil, shared.WrapError("professor", "Create", shared.ErrConflict, "could not allocate a unique identifier", lastErr)
}
