package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/curso-hub/curso-learning-hub/internal/domain/course"
	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
)

// CourseRepository is an in-memory course.Repository. It references the
// student repository to reproduce the transactional batch check of the
// database implementation: grant and revoke verify the whole batch and
// change nothing when any student is missing.
type CourseRepository struct {
	mu       sync.RWMutex
	students *StudentRepository

	courses      map[course.ID]*course.Course
	access       map[course.ID]map[student.ID]struct{}
	lessons      map[course.LessonID]*course.Lesson
	lessonOrder  map[course.ID][]course.LessonID
	nextCourseID course.ID
	nextLessonID course.LessonID
}

// NewCourseRepository creates an empty in-memory course repository backed
// by the given student repository for batch existence checks.
func NewCourseRepository(students *StudentRepository) *CourseRepository {
	return &CourseRepository{
		students:     students,
		courses:      make(map[course.ID]*course.Course),
		access:       make(map[course.ID]map[student.ID]struct{}),
		lessons:      make(map[course.LessonID]*course.Lesson),
		lessonOrder:  make(map[course.ID][]course.LessonID),
		nextCourseID: 1,
		nextLessonID: 1,
	}
}

// Create inserts the course and assigns it a sequence id.
func (r *CourseRepository) Create(_ context.Context, c *course.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = r.nextCourseID
	r.nextCourseID++

	cp := *c
	cp.AccessSet = nil
	cp.Lessons = nil
	r.courses[c.ID] = &cp
	r.access[c.ID] = make(map[student.ID]struct{})
	return nil
}

// GetByID returns the course without lessons and access set.
func (r *CourseRepository) GetByID(_ context.Context, id course.ID) (*course.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getShallow(id)
}

// GetWithLessons returns the course together with its lessons.
func (r *CourseRepository) GetWithLessons(_ context.Context, id course.ID) (*course.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, err := r.getShallow(id)
	if err != nil {
		return nil, err
	}
	c.Lessons = r.listLessonsLocked(id)
	return c, nil
}

// GetOwned returns the course only when owned by the given professor.
func (r *CourseRepository) GetOwned(_ context.Context, id course.ID, professorID int64) (*course.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, err := r.getShallow(id)
	if err != nil {
		return nil, err
	}
	if c.ProfessorID != professorID {
		return nil, course.ErrNotFound
	}
	return c, nil
}

// GetForStudent returns the course with lessons only when the student is
// in its access set.
func (r *CourseRepository) GetForStudent(_ context.Context, id course.ID, studentID student.ID) (*course.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, err := r.getShallow(id)
	if err != nil {
		return nil, course.ErrNotEnrolled
	}
	if _, ok := r.access[id][studentID]; !ok {
		return nil, course.ErrNotEnrolled
	}
	c.Lessons = r.listLessonsLocked(id)
	return c, nil
}

// Update rewrites the mutable fields of the course.
func (r *CourseRepository) Update(_ context.Context, c *course.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.courses[c.ID]
	if !ok {
		return course.ErrNotFound
	}
	stored.Name = c.Name
	stored.Description = c.Description
	stored.Banner = c.Banner
	stored.UpdatedAt = c.UpdatedAt
	return nil
}

// Delete removes the course with its lessons and access set.
func (r *CourseRepository) Delete(_ context.Context, id course.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.courses[id]; !ok {
		return course.ErrNotFound
	}
	for _, lid := range r.lessonOrder[id] {
		delete(r.lessons, lid)
	}
	delete(r.lessonOrder, id)
	delete(r.access, id)
	delete(r.courses, id)
	return nil
}

// GrantAccess adds the batch to the access set, all-or-nothing.
func (r *CourseRepository) GrantAccess(ctx context.Context, id course.ID, studentIDs []student.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkBatchLocked(ctx, id, studentIDs); err != nil {
		return err
	}
	for _, sid := range studentIDs {
		r.access[id][sid] = struct{}{}
	}
	return nil
}

// RevokeAccess removes the batch from the access set, all-or-nothing.
func (r *CourseRepository) RevokeAccess(ctx context.Context, id course.ID, studentIDs []student.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkBatchLocked(ctx, id, studentIDs); err != nil {
		return err
	}
	for _, sid := range studentIDs {
		delete(r.access[id], sid)
	}
	return nil
}

// ListAccess returns the ids of students in the course access set.
func (r *CourseRepository) ListAccess(_ context.Context, id course.ID) ([]student.ID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.access[id]
	if !ok {
		return nil, course.ErrNotFound
	}
	out := make([]student.ID, 0, len(set))
	for sid := range set {
		out = append(out, sid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// AddLesson appends a lesson to the course and assigns it a sequence id.
func (r *CourseRepository) AddLesson(_ context.Context, l *course.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.courses[l.CourseID]; !ok {
		return course.ErrNotFound
	}

	l.ID = r.nextLessonID
	r.nextLessonID++
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}

	cp := *l
	r.lessons[l.ID] = &cp
	r.lessonOrder[l.CourseID] = append(r.lessonOrder[l.CourseID], l.ID)
	return nil
}

// GetLesson returns the lesson or course.ErrLessonNotFound.
func (r *CourseRepository) GetLesson(_ context.Context, id course.LessonID) (*course.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.lessons[id]
	if !ok {
		return nil, course.ErrLessonNotFound
	}
	cp := *l
	return &cp, nil
}

// ListLessons returns the course lessons in creation order.
func (r *CourseRepository) ListLessons(_ context.Context, id course.ID) ([]course.Lesson, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.courses[id]; !ok {
		return nil, course.ErrNotFound
	}
	return r.listLessonsLocked(id), nil
}

// CountLessons returns the number of lessons in the course.
func (r *CourseRepository) CountLessons(_ context.Context, id course.ID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.courses[id]; !ok {
		return 0, course.ErrNotFound
	}
	return len(r.lessonOrder[id]), nil
}

// lessonCourse resolves the course a lesson belongs to. Used by the
// viewing repository to join records to courses.
func (r *CourseRepository) lessonCourse(id course.LessonID) (course.ID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.lessons[id]
	if !ok {
		return 0, false
	}
	return l.CourseID, true
}

func (r *CourseRepository) getShallow(id course.ID) (*course.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, course.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *CourseRepository) listLessonsLocked(id course.ID) []course.Lesson {
	ids := r.lessonOrder[id]
	out := make([]course.Lesson, 0, len(ids))
	for _, lid := range ids {
		out = append(out, *r.lessons[lid])
	}
	return out
}

func (r *CourseRepository) checkBatchLocked(ctx context.Context, id course.ID, studentIDs []student.ID) error {
	if _, ok := r.courses[id]; !ok {
		return course.ErrNotFound
	}
	for _, sid := range studentIDs {
		exists, err := r.students.GetByID(ctx, sid)
		if err != nil || exists == nil {
			return course.ErrStudentsNotFound
		}
	}
	return nil
}
