package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/curso-hub/curso-learning-hub/internal/domain/course"
	"github.com/curso-hub/curso-learning-hub/internal/domain/progress"
	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
)

type viewingKey struct {
	studentID student.ID
	lessonID  course.LessonID
}

// ViewingRepository is an in-memory progress.ViewingRepository. Lesson to
// course resolution goes through the course repository, so deleted
// courses naturally drop out of counts the way the database join does.
type ViewingRepository struct {
	mu      sync.RWMutex
	courses *CourseRepository
	records map[viewingKey]*progress.ViewingRecord
}

// NewViewingRepository creates an empty in-memory viewing repository.
func NewViewingRepository(courses *CourseRepository) *ViewingRepository {
	return &ViewingRepository{
		courses: courses,
		records: make(map[viewingKey]*progress.ViewingRecord),
	}
}

// Record inserts the viewing record once per (student, lesson) pair.
func (r *ViewingRepository) Record(_ context.Context, rec *progress.ViewingRecord) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := viewingKey{studentID: rec.StudentID, lessonID: rec.LessonID}
	if _, exists := r.records[key]; exists {
		return false, nil
	}
	cp := *rec
	r.records[key] = &cp
	return true, nil
}

// CountForCourse returns the number of distinct course lessons the
// student has viewed.
func (r *ViewingRepository) CountForCourse(_ context.Context, studentID student.ID, courseID course.ID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for key := range r.records {
		if key.studentID != studentID {
			continue
		}
		if cid, ok := r.courses.lessonCourse(key.lessonID); ok && cid == courseID {
			count++
		}
	}
	return count, nil
}

// ListLessonIDs returns the ids of course lessons the student has viewed.
func (r *ViewingRepository) ListLessonIDs(_ context.Context, studentID student.ID, courseID course.ID) ([]course.LessonID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []course.LessonID
	for key := range r.records {
		if key.studentID != studentID {
			continue
		}
		if cid, ok := r.courses.lessonCourse(key.lessonID); ok && cid == courseID {
			out = append(out, key.lessonID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// CountByStudent returns viewed lesson counts per student for the course.
func (r *ViewingRepository) CountByStudent(_ context.Context, courseID course.ID) (map[student.ID]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[student.ID]int)
	for key := range r.records {
		if cid, ok := r.courses.lessonCourse(key.lessonID); ok && cid == courseID {
			out[key.studentID]++
		}
	}
	return out, nil
}

type approvalKey struct {
	professorID int64
	studentID   student.ID
	courseID    course.ID
}

// ApprovalRepository is an in-memory progress.ApprovalRepository with the
// same triple uniqueness the database primary key enforces.
type ApprovalRepository struct {
	mu       sync.RWMutex
	byTriple map[approvalKey]*progress.Approval
}

// NewApprovalRepository creates an empty in-memory approval repository.
func NewApprovalRepository() *ApprovalRepository {
	return &ApprovalRepository{
		byTriple: make(map[approvalKey]*progress.Approval),
	}
}

// Create inserts the approval, returning progress.ErrApprovalExists on a
// triple conflict.
func (r *ApprovalRepository) Create(_ context.Context, a *progress.Approval) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := approvalKey{professorID: a.ProfessorID, studentID: a.StudentID, courseID: a.CourseID}
	if _, exists := r.byTriple[key]; exists {
		return progress.ErrApprovalExists
	}
	cp := *a
	r.byTriple[key] = &cp
	return nil
}

// Exists reports whether any professor has approved the pair.
func (r *ApprovalRepository) Exists(_ context.Context, studentID student.ID, courseID course.ID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for key := range r.byTriple {
		if key.studentID == studentID && key.courseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

// ExistsTriple reports whether the exact triple has an approval.
func (r *ApprovalRepository) ExistsTriple(_ context.Context, professorID int64, studentID student.ID, courseID course.ID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byTriple[approvalKey{professorID: professorID, studentID: studentID, courseID: courseID}]
	return ok, nil
}
