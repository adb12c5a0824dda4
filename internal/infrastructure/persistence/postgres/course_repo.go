package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/curso-hub/curso-learning-hub/internal/domain/course"
	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
)

// CourseRepository implements course.Repository for PostgreSQL.
type CourseRepository struct {
	conn *Connection
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(conn *Connection) *CourseRepository {
	return &CourseRepository{conn: conn}
}

// ─────────────────────────────────────────────────────────────────────────────
// Course CRUD
// ─────────────────────────────────────────────────────────────────────────────

// Create creates a course and assigns its identifier from the sequence.
func (r *CourseRepository) Create(ctx context.Context, c *course.Course) error {
	query := `
		INSERT INTO courses (name, description, banner, professor_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.conn.QueryRow(ctx, query,
		c.Name, c.Description, c.Banner, c.ProfessorID, c.CreatedAt, c.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	c.ID = course.ID(id)
	return nil
}

// GetByID returns a course without lessons or access set.
func (r *CourseRepository) GetByID(ctx context.Context, id course.ID) (*course.Course, error) {
	query := `
		SELECT id, name, description, banner, professor_id, created_at, updated_at
		FROM courses
		WHERE id = $1
	`
	return r.getOne(ctx, query, int64(id))
}

// GetWithLessons returns a course together with its lessons.
func (r *CourseRepository) GetWithLessons(ctx context.Context, id course.ID) (*course.Course, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lessons, err := r.ListLessons(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Lessons = lessons
	return c, nil
}

// GetOwned returns a course only when the given professor owns it.
func (r *CourseRepository) GetOwned(ctx context.Context, id course.ID, professorID int64) (*course.Course, error) {
	query := `
		SELECT id, name, description, banner, professor_id, created_at, updated_at
		FROM courses
		WHERE id = $1 AND professor_id = $2
	`
	return r.getOne(ctx, query, int64(id), professorID)
}

// GetForStudent returns a course only when the student is in its access set.
func (r *CourseRepository) GetForStudent(ctx context.Context, id course.ID, studentID student.ID) (*course.Course, error) {
	query := `
		SELECT c.id, c.name, c.description, c.banner, c.professor_id, c.created_at, c.updated_at
		FROM courses c
		JOIN course_access ca ON ca.course_id = c.id
		WHERE c.id = $1 AND ca.student_id = $2
	`

	c, err := r.getOne(ctx, query, int64(id), int64(studentID))
	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return nil, course.ErrNotEnrolled
		}
		return nil, err
	}
	return c, nil
}

// Update updates the mutable course fields. The owning professor is never
// touched.
func (r *CourseRepository) Update(ctx context.Context, c *course.Course) error {
	query := `
		UPDATE courses
		SET name = $2, description = $3, banner = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := r.conn.Exec(ctx, query, int64(c.ID), c.Name, c.Description, c.Banner, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return course.ErrNotFound
	}
	return nil
}

// Delete deletes a course. Lessons, access set entries, viewing records
// and approvals follow via ON DELETE CASCADE.
func (r *CourseRepository) Delete(ctx context.Context, id course.ID) error {
	tag, err := r.conn.Exec(ctx, `DELETE FROM courses WHERE id = $1`, int64(id))
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return course.ErrNotFound
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Access set
// ─────────────────────────────────────────────────────────────────────────────

// GrantAccess verifies the whole batch exists and adds it to the access
// set, all inside one transaction. The course row is locked so a student
// deleted between check and mutation cannot leave a dangling entry.
func (r *CourseRepository) GrantAccess(ctx context.Context, id course.ID, studentIDs []student.ID) error {
	return r.conn.WithTx(ctx, func(tx pgx.Tx) error {
		if err := lockCourseAndCheckBatch(ctx, tx, id, studentIDs); err != nil {
			return err
		}

		// Set union: already-enrolled students are a no-op.
		_, err := tx.Exec(ctx, `
			INSERT INTO course_access (course_id, student_id)
			SELECT $1, unnest($2::bigint[])
			ON CONFLICT DO NOTHING
		`, int64(id), studentIDsToInt64(studentIDs))
		if err != nil {
			return fmt.Errorf("failed to grant access: %w", err)
		}
		return nil
	})
}

// RevokeAccess is the mirror operation: same existence check, then set
// difference, in one transaction.
func (r *CourseRepository) RevokeAccess(ctx context.Context, id course.ID, studentIDs []student.ID) error {
	return r.conn.WithTx(ctx, func(tx pgx.Tx) error {
		if err := lockCourseAndCheckBatch(ctx, tx, id, studentIDs); err != nil {
			return err
		}

		// Set difference: non-enrolled students are a no-op.
		_, err := tx.Exec(ctx, `
			DELETE FROM course_access
			WHERE course_id = $1 AND student_id = ANY($2::bigint[])
		`, int64(id), studentIDsToInt64(studentIDs))
		if err != nil {
			return fmt.Errorf("failed to revoke access: %w", err)
		}
		return nil
	})
}

// ListAccess returns the student ids in the course's access set.
func (r *CourseRepository) ListAccess(ctx context.Context, id course.ID) ([]student.ID, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT student_id FROM course_access
		WHERE course_id = $1
		ORDER BY student_id
	`, int64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to list access set: %w", err)
	}
	defer rows.Close()

	var ids []student.ID
	for rows.Next() {
		var sid int64
		if err := rows.Scan(&sid); err != nil {
			return nil, fmt.Errorf("failed to scan access entry: %w", err)
		}
		ids = append(ids, student.ID(sid))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate access set: %w", err)
	}
	return ids, nil
}

// lockCourseAndCheckBatch locks the course row and verifies every student
// of the batch exists. Any absence fails the whole batch before mutation.
func lockCourseAndCheckBatch(ctx context.Context, tx pgx.Tx, id course.ID, studentIDs []student.ID) error {
	var courseID int64
	err := tx.QueryRow(ctx, `SELECT id FROM courses WHERE id = $1 FOR UPDATE`, int64(id)).Scan(&courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return course.ErrNotFound
		}
		return fmt.Errorf("failed to lock course: %w", err)
	}

	var found int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM students WHERE id = ANY($1::bigint[])
	`, studentIDsToInt64(studentIDs)).Scan(&found)
	if err != nil {
		return fmt.Errorf("failed to count students: %w", err)
	}
	if found < len(uniqueStudentIDs(studentIDs)) {
		return course.ErrStudentsNotFound
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Lessons
// ─────────────────────────────────────────────────────────────────────────────

// AddLesson adds a lesson to an existing course and assigns its identifier.
func (r *CourseRepository) AddLesson(ctx context.Context, l *course.Lesson) error {
	var fileName, fileType *string
	if l.File != nil {
		fileName = &l.File.Name
		fileType = &l.File.Type
	}

	query := `
		INSERT INTO lessons (course_id, text_content, file_name, file_type, link)
		SELECT $1, $2, $3, $4, $5
		WHERE EXISTS (SELECT 1 FROM courses WHERE id = $1)
		RETURNING id, created_at
	`

	err := r.conn.QueryRow(ctx, query,
		int64(l.CourseID), l.Text, fileName, fileType, l.Link,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return course.ErrNotFound
		}
		return fmt.Errorf("failed to add lesson: %w", err)
	}
	return nil
}

// GetLesson returns a lesson by identifier.
func (r *CourseRepository) GetLesson(ctx context.Context, id course.LessonID) (*course.Lesson, error) {
	query := `
		SELECT id, course_id, text_content, file_name, file_type, link, created_at
		FROM lessons
		WHERE id = $1
	`

	l, err := scanLesson(r.conn.QueryRow(ctx, query, int64(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, course.ErrLessonNotFound
		}
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}
	return l, nil
}

// ListLessons returns the course's lessons in creation order.
func (r *CourseRepository) ListLessons(ctx context.Context, id course.ID) ([]course.Lesson, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(ctx, `
		SELECT id, course_id, text_content, file_name, file_type, link, created_at
		FROM lessons
		WHERE course_id = $1
		ORDER BY id
	`, int64(id))
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	defer rows.Close()

	lessons := []course.Lesson{}
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lessons: %w", err)
	}
	return lessons, nil
}

// CountLessons returns the number of lessons belonging to the course.
func (r *CourseRepository) CountLessons(ctx context.Context, id course.ID) (int, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return 0, err
	}

	var count int
	err := r.conn.QueryRow(ctx, `
		SELECT COUNT(*) FROM lessons WHERE course_id = $1
	`, int64(id)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}
	return count, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Scan helpers
// ─────────────────────────────────────────────────────────────────────────────

func (r *CourseRepository) getOne(ctx context.Context, query string, args ...interface{}) (*course.Course, error) {
	var c course.Course
	var id int64

	err := r.conn.QueryRow(ctx, query, args...).Scan(
		&id, &c.Name, &c.Description, &c.Banner, &c.ProfessorID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, course.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	c.ID = course.ID(id)
	c.AccessSet = []student.ID{}
	c.Lessons = []course.Lesson{}
	return &c, nil
}

func scanLesson(row pgx.Row) (*course.Lesson, error) {
	var l course.Lesson
	var id, courseID int64
	var fileName, fileType *string

	if err := row.Scan(&id, &courseID, &l.Text, &fileName, &fileType, &l.Link, &l.CreatedAt); err != nil {
		return nil, err
	}

	l.ID = course.LessonID(id)
	l.CourseID = course.ID(courseID)
	if fileName != nil {
		l.File = &course.FileRef{Name: *fileName}
		if fileType != nil {
			l.File.Type = *fileType
		}
	}
	return &l, nil
}

func uniqueStudentIDs(ids []student.ID) []student.ID {
	seen := make(map[student.ID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
