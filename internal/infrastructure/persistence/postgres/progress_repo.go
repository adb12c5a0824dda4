package postgres

import (
	"context"
	"fmt"

	"github.com/curso-hub/curso-learning-hub/internal/domain/course"
	"github.com/curso-hub/curso-learning-hub/internal/domain/progress"
	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
)

// ViewingRepository implements progress.ViewingRepository for PostgreSQL.
type ViewingRepository struct {
	conn *Connection
}

// NewViewingRepository creates a new ViewingRepository.
func NewViewingRepository(conn *Connection) *ViewingRepository {
	return &ViewingRepository{conn: conn}
}

// Record creates a viewing record. The (student, lesson) primary key plus
// ON CONFLICT DO NOTHING make the operation idempotent at the storage
// level; created reports whether this call inserted the row.
func (r *ViewingRepository) Record(ctx context.Context, rec *progress.ViewingRecord) (bool, error) {
	query := `
		INSERT INTO viewing_records (student_id, lesson_id, viewed, viewed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (student_id, lesson_id) DO NOTHING
	`

	tag, err := r.conn.Exec(ctx, query, int64(rec.StudentID), int64(rec.LessonID), rec.Viewed, rec.ViewedAt)
	if err != nil {
		return false, fmt.Errorf("failed to record viewing: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CountForCourse counts the distinct lessons of the course the student
// has viewed.
func (r *ViewingRepository) CountForCourse(ctx context.Context, studentID student.ID, courseID course.ID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM viewing_records vr
		JOIN lessons l ON l.id = vr.lesson_id
		WHERE vr.student_id = $1 AND l.course_id = $2
	`

	var count int
	if err := r.conn.QueryRow(ctx, query, int64(studentID), int64(courseID)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count viewings: %w", err)
	}
	return count, nil
}

// ListLessonIDs returns the ids of the course's lessons the student viewed.
func (r *ViewingRepository) ListLessonIDs(ctx context.Context, studentID student.ID, courseID course.ID) ([]course.LessonID, error) {
	query := `
		SELECT vr.lesson_id
		FROM viewing_records vr
		JOIN lessons l ON l.id = vr.lesson_id
		WHERE vr.student_id = $1 AND l.course_id = $2
		ORDER BY vr.lesson_id
	`

	rows, err := r.conn.Query(ctx, query, int64(studentID), int64(courseID))
	if err != nil {
		return nil, fmt.Errorf("failed to list viewed lessons: %w", err)
	}
	defer rows.Close()

	ids := []course.LessonID{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan viewed lesson: %w", err)
		}
		ids = append(ids, course.LessonID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate viewed lessons: %w", err)
	}
	return ids, nil
}

// CountByStudent returns per-student viewed counts for the course.
func (r *ViewingRepository) CountByStudent(ctx context.Context, courseID course.ID) (map[student.ID]int, error) {
	query := `
		SELECT vr.student_id, COUNT(*)
		FROM viewing_records vr
		JOIN lessons l ON l.id = vr.lesson_id
		WHERE l.course_id = $1
		GROUP BY vr.student_id
	`

	rows, err := r.conn.Query(ctx, query, int64(courseID))
	if err != nil {
		return nil, fmt.Errorf("failed to count viewings per student: %w", err)
	}
	defer rows.Close()

	counts := map[student.ID]int{}
	for rows.Next() {
		var sid int64
		var count int
		if err := rows.Scan(&sid, &count); err != nil {
			return nil, fmt.Errorf("failed to scan viewing count: %w", err)
		}
		counts[student.ID(sid)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate viewing counts: %w", err)
	}
	return counts, nil
}

// ApprovalRepository implements progress.ApprovalRepository for PostgreSQL.
type ApprovalRepository struct {
	conn *Connection
}

// NewApprovalRepository creates a new ApprovalRepository.
func NewApprovalRepository(conn *Connection) *ApprovalRepository {
	return &ApprovalRepository{conn: conn}
}

// Create inserts an approval. The (professor, student, course) primary key
// is the true uniqueness enforcement point: a conflict maps to
// ErrApprovalExists, which the workflow treats as the idempotent
// already-approved outcome.
func (r *ApprovalRepository) Create(ctx context.Context, a *progress.Approval) error {
	query := `
		INSERT INTO approvals (professor_id, student_id, course_id, approved, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.conn.Exec(ctx, query,
		a.ProfessorID, int64(a.StudentID), int64(a.CourseID), a.Approved, a.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return progress.ErrApprovalExists
		}
		return fmt.Errorf("failed to create approval: %w", err)
	}
	return nil
}

// Exists reports whether any professor approved the student for the course.
func (r *ApprovalRepository) Exists(ctx context.Context, studentID student.ID, courseID course.ID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM approvals WHERE student_id = $1 AND course_id = $2
		)
	`

	var exists bool
	if err := r.conn.QueryRow(ctx, query, int64(studentID), int64(courseID)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check approval: %w", err)
	}
	return exists, nil
}

// ExistsTriple reports whether the exact (professor, student, course)
// approval exists.
func (r *ApprovalRepository) ExistsTriple(ctx context.Context, professorID int64, studentID student.ID, courseID course.ID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM approvals
			WHERE professor_id = $1 AND student_id = $2 AND course_id = $3
		)
	`

	var exists bool
	if err := r.conn.QueryRow(ctx, query, professorID, int64(studentID), int64(courseID)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check approval: %w", err)
	}
	return exists, nil
}
