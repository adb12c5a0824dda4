package student

import "context"

// Repository определяет контракт хранилища студентов.
// Реализации находятся в infrastructure/persistence.
type Repository interface {
	// Create создаёт нового студента.
	// Возвращает ErrAlreadyExists при конфликте логина или ID.
	Create(ctx context.Context, s *Student) error

	// GetByID возвращает студента по ID.
	// Возвращает ErrNotFound, если студент не найден.
	GetByID(ctx context.Context, id ID) (*Student, error)

	// GetByIDs возвращает студентов по списку ID.
	// Отсутствующие идентификаторы просто не попадают в результат -
	// сверка количества лежит на вызывающей стороне.
	GetByIDs(ctx context.Context, ids []ID) ([]*Student, error)

	// SetApproved обновляет отображаемый кеш подтверждения.
	// Возвращает ErrNotFound, если студент не найден.
	SetApproved(ctx context.Context, id ID, approved bool) error
}
