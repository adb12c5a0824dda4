package progress

import (
	"errors"
	"time"

	"github.com/curso-hub/curso-learning-hub/internal/domain/course"
	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
)

// ViewingRecord - доказательство, что студент открыл урок хотя бы раз.
// Составной ключ (студент, урок); не более одной записи на пару.
// Запись никогда не обновляется и не удаляется движком.
type ViewingRecord struct {
	// StudentID - студент, просмотревший урок.
	StudentID student.ID

	// LessonID - просмотренный урок.
	LessonID course.LessonID

	// Viewed - всегда true после создания: сигналом является само
	// существование записи.
	Viewed bool

	// ViewedAt - время первого просмотра.
	ViewedAt time.Time
}

// NewViewingRecord создаёт запись о просмотре.
func NewViewingRecord(studentID student.ID, lessonID course.LessonID) *ViewingRecord {
	return &ViewingRecord{
		StudentID: studentID,
		LessonID:  lessonID,
		Viewed:    true,
		ViewedAt:  time.Now().UTC(),
	}
}

// Approval - явное подтверждение преподавателем, что студент выполнил
// критерии завершения курса. Ключ уникальности - тройка
// (преподаватель, студент, курс).
type Approval struct {
	// ProfessorID - преподаватель, выдавший подтверждение.
	ProfessorID int64

	// StudentID - подтверждённый студент.
	StudentID student.ID

	// CourseID - курс, по которому выдано подтверждение.
	CourseID course.ID

	// Approved - флаг подтверждения.
	Approved bool

	// CreatedAt - время создания записи.
	CreatedAt time.Time
}

// NewApproval создаёт подтверждение для тройки (преподаватель, студент, курс).
func NewApproval(professorID int64, studentID student.ID, courseID course.ID) *Approval {
	return &Approval{
		ProfessorID: professorID,
		StudentID:   studentID,
		CourseID:    courseID,
		Approved:    true,
		CreatedAt:   time.Now().UTC(),
	}
}

var (
	// ErrApprovalExists - подтверждение для тройки уже существует.
	// Вызывающая сторона трактует это как идемпотентный успех.
	ErrApprovalExists = errors.New("approval already exists for this professor, student and course")

	// ErrNotEligible - студент не выполнил критерии подтверждения
	// (просмотрены не все уроки курса).
	ErrNotEligible = errors.New("student does not meet approval criteria")
)
