package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/curso-hub/curso-learning-hub/internal/domain/professor"
)

// ProfessorRepository implements professor.Repository for PostgreSQL.
type ProfessorRepository struct {
	conn *Connection
}

// NewProfessorRepository creates a new ProfessorRepository.
func NewProfessorRepository(conn *Connection) *ProfessorRepository {
	return &ProfessorRepository{conn: conn}
}

// Create creates a new professor. A violated login unique maps to
// ErrLoginTaken, a violated primary key to ErrAlreadyExists so the caller
// can regenerate the identifier candidate.
func (r *ProfessorRepository) Create(ctx context.Context, p *professor.Professor) error {
	query := `
		INSERT INTO professors (id, display_name, login, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.conn.Exec(ctx, query, int64(p.ID), p.DisplayName, p.Login.String(), p.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			if ViolatedConstraint(err) == "professors_login_key" {
				return professor.ErrLoginTaken
			}
			return professor.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create professor: %w", err)
	}

	return nil
}

// GetByID returns a professor by identifier.
func (r *ProfessorRepository) GetByID(ctx context.Context, id professor.ID) (*professor.Professor, error) {
	query := `
		SELECT id, display_name, login, created_at
		FROM professors
		WHERE id = $1
	`

	var p professor.Professor
	var rawID int64
	var login string

	err := r.conn.QueryRow(ctx, query, int64(id)).Scan(&rawID, &p.DisplayName, &login, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, professor.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get professor: %w", err)
	}

	p.ID = professor.ID(rawID)
	p.Login = professor.Login(login)
	return &p, nil
}

// Exists returns true if the identifier belongs to a professor.
func (r *ProfessorRepository) Exists(ctx context.Context, id professor.ID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM professors WHERE id = $1)`

	var exists bool
	if err := r.conn.QueryRow(ctx, query, int64(id)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check professor existence: %w", err)
	}
	return exists, nil
}
