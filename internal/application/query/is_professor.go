package query

import (
	"context"

	"github.com/curso-hub/curso-learning-hub/internal/domain/professor"
	"github.com/curso-hub/curso-learning-hub/internal/domain/shared"
)

// IsProfessorQuery holds the identifier to check.
type IsProfessorQuery struct {
	ID int64
}

// IsProfessorHandler answers whether an identifier belongs to a professor.
// The HTTP layer uses it to guard professor-scoped routes.
type IsProfessorHandler struct {
	professors professor.Repository
}

// NewIsProfessorHandler creates a new IsProfessorHandler.
func NewIsProfessorHandler(professors professor.Repository) *IsProfessorHandler {
	return &IsProfessorHandler{professors: professors}
}

// Handle executes the query.
func (h *IsProfessorHandler) Handle(ctx context.Context, q IsProfessorQuery) (bool, error) {
	ok, err := h.professors.Exists(ctx, professor.ID(q.ID))
	if err != nil {
		return false, shared.WrapError("professor", "IsProfessor", shared.ErrInternal, "failed to check professor", err)
	}
	return ok, nil
}
