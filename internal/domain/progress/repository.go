package progress

import (
	"context"

	"github.com/curso-hub/curso-learning-hub/internal/domain/course"
	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
)

// ViewingRepository определяет контракт хранилища записей о просмотрах.
type ViewingRepository interface {
	// Record создаёт запись о просмотре. Идемпотентна: уникальность пары
	// (студент, урок) обеспечивает ограничение хранилища, повторная
	// запись не создаёт дубликата. Возвращает created = false, если
	// запись уже существовала.
	Record(ctx context.Context, rec *ViewingRecord) (created bool, err error)

	// CountForCourse возвращает количество различных просмотренных
	// студентом уроков, принадлежащих указанному курсу.
	CountForCourse(ctx context.Context, studentID student.ID, courseID course.ID) (int, error)

	// ListLessonIDs возвращает ID уроков курса, просмотренных студентом.
	ListLessonIDs(ctx context.Context, studentID student.ID, courseID course.ID) ([]course.LessonID, error)

	// CountByStudent возвращает количество просмотренных уроков курса
	// для каждого студента, у которого есть хотя бы один просмотр.
	// Используется для построения ростера курса.
	CountByStudent(ctx context.Context, courseID course.ID) (map[student.ID]int, error)
}

// ApprovalRepository определяет контракт хранилища подтверждений.
type ApprovalRepository interface {
	// Create создаёт подтверждение. Точка истинного форсирования
	// уникальности - ограничение хранилища на тройку: при конфликте
	// вставки возвращается ErrApprovalExists, который воркфлоу трактует
	// как идемпотентный успех.
	Create(ctx context.Context, a *Approval) error

	// Exists возвращает true, если для пары (студент, курс) существует
	// подтверждение от любого преподавателя. Это авторитетный источник
	// статуса Approved при выводе статуса.
	Exists(ctx context.Context, studentID student.ID, courseID course.ID) (bool, error)

	// ExistsTriple возвращает true, если подтверждение существует для
	// конкретной тройки (преподаватель, студент, курс).
	ExistsTriple(ctx context.Context, professorID int64, studentID student.ID, courseID course.ID) (bool, error)
}

// StatusCache - кеш отображения производного статуса (student, course).
// Инвалидируется при записи просмотра и создании подтверждения.
// Отсутствие кеша не ошибка: движок полностью работает и без него.
type StatusCache interface {
	// Get возвращает закешированный статус, если он есть.
	Get(ctx context.Context, studentID student.ID, courseID course.ID) (Status, bool, error)

	// Set сохраняет статус с TTL реализации.
	Set(ctx context.Context, studentID student.ID, courseID course.ID, status Status) error

	// Invalidate сбрасывает закешированный статус пары.
	Invalidate(ctx context.Context, studentID student.ID, courseID course.ID) error
}

// Notifier - внешний коллаборатор синхронизации статуса. Вызывается
// после успешного создания подтверждения как best-effort: его отказ
// логируется и никогда не откатывает само подтверждение.
type Notifier interface {
	// StudentApproved сообщает внешней стороне, что студент подтверждён
	// по курсу. Вызов должен быть ограничен по времени.
	StudentApproved(ctx context.Context, professorID int64, courseID course.ID, studentID student.ID) error
}
