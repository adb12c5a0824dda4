package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
)

// StudentRepository implements student.Repository for PostgreSQL.
type StudentRepository struct {
	conn *Connection
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(conn *Connection) *StudentRepository {
	return &StudentRepository{conn: conn}
}

// Create creates a new student. A violated login unique maps to
// ErrLoginTaken, a violated primary key to ErrAlreadyExists so the caller
// can regenerate the identifier candidate.
func (r *StudentRepository) Create(ctx context.Context, s *student.Student) error {
	query := `
		INSERT INTO students (id, display_name, login, approved, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.conn.Exec(ctx, query, int64(s.ID), s.DisplayName, s.Login.String(), s.Approved, s.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			if ViolatedConstraint(err) == "students_login_key" {
				return student.ErrLoginTaken
			}
			return student.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create student: %w", err)
	}

	return nil
}

// GetByID returns a student by identifier.
func (r *StudentRepository) GetByID(ctx context.Context, id student.ID) (*student.Student, error) {
	query := `
		SELECT id, display_name, login, approved, created_at
		FROM students
		WHERE id = $1
	`

	s, err := scanStudent(r.conn.QueryRow(ctx, query, int64(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, student.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return s, nil
}

// GetByIDs returns the students matching the given identifiers. Missing
// identifiers are simply absent from the result.
func (r *StudentRepository) GetByIDs(ctx context.Context, ids []student.ID) ([]*student.Student, error) {
	if len(ids) == 0 {
		return []*student.Student{}, nil
	}

	query := `
		SELECT id, display_name, login, approved, created_at
		FROM students
		WHERE id = ANY($1)
		ORDER BY id
	`

	rows, err := r.conn.Query(ctx, query, studentIDsToInt64(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	students := make([]*student.Student, 0, len(ids))
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate students: %w", err)
	}

	return students, nil
}

// SetApproved updates the approved display flag.
func (r *StudentRepository) SetApproved(ctx context.Context, id student.ID, approved bool) error {
	query := `UPDATE students SET approved = $2 WHERE id = $1`

	tag, err := r.conn.Exec(ctx, query, int64(id), approved)
	if err != nil {
		return fmt.Errorf("failed to set approved flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return student.ErrNotFound
	}
	return nil
}

func scanStudent(row pgx.Row) (*student.Student, error) {
	var s student.Student
	var rawID int64
	var login string

	if err := row.Scan(&rawID, &s.DisplayName, &login, &s.Approved, &s.CreatedAt); err != nil {
		return nil, err
	}

	s.ID = student.ID(rawID)
	s.Login = student.Login(login)
	return &s, nil
}

func studentIDsToInt64(ids []student.ID) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}
