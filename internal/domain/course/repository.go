package course

import (
	"context"

	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
)

// Repository определяет контракт хранилища курсов и уроков.
// Реализации находятся в infrastructure/persistence.
type Repository interface {
	// Create создаёт курс и присваивает ему ID.
	Create(ctx context.Context, c *Course) error

	// GetByID возвращает курс без уроков и access set.
	// Возвращает ErrNotFound, если курс не найден.
	GetByID(ctx context.Context, id ID) (*Course, error)

	// GetWithLessons возвращает курс вместе с уроками.
	// Возвращает ErrNotFound, если курс не найден.
	GetWithLessons(ctx context.Context, id ID) (*Course, error)

	// GetOwned возвращает курс, только если им владеет указанный
	// преподаватель. Возвращает ErrNotFound иначе.
	GetOwned(ctx context.Context, id ID, professorID int64) (*Course, error)

	// GetForStudent возвращает курс, только если студент входит в его
	// access set. Возвращает ErrNotEnrolled иначе.
	GetForStudent(ctx context.Context, id ID, studentID student.ID) (*Course, error)

	// Update обновляет изменяемые поля курса (ProfessorID не трогает).
	// Возвращает ErrNotFound, если курс не найден.
	Update(ctx context.Context, c *Course) error

	// Delete удаляет курс. Каскад на уроки, access set, просмотры и
	// подтверждения обеспечивает хранилище.
	// Возвращает ErrNotFound, если курс не найден.
	Delete(ctx context.Context, id ID) error

	// GrantAccess атомарно (в одной транзакции) проверяет существование
	// всех студентов батча и добавляет их в access set курса.
	// Возвращает ErrStudentsNotFound, если хотя бы один студент
	// отсутствует - в этом случае ничего не изменяется.
	GrantAccess(ctx context.Context, id ID, studentIDs []student.ID) error

	// RevokeAccess - зеркальная операция: та же проверка существования,
	// затем разность множеств в одной транзакции.
	RevokeAccess(ctx context.Context, id ID, studentIDs []student.ID) error

	// ListAccess возвращает ID студентов из access set курса.
	ListAccess(ctx context.Context, id ID) ([]student.ID, error)

	// AddLesson добавляет урок к курсу и присваивает ему ID.
	// Возвращает ErrNotFound, если курс не найден.
	AddLesson(ctx context.Context, l *Lesson) error

	// GetLesson возвращает урок по ID.
	// Возвращает ErrLessonNotFound, если урок не найден.
	GetLesson(ctx context.Context, id LessonID) (*Lesson, error)

	// ListLessons возвращает уроки курса в порядке создания.
	// Возвращает ErrNotFound, если курс не найден.
	ListLessons(ctx context.Context, id ID) ([]Lesson, error)

	// CountLessons возвращает количество уроков курса.
	// Возвращает ErrNotFound, если курс не найден.
	CountLessons(ctx context.Context, id ID) (int, error)
}
