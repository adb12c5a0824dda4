package professor

import "context"

// Repository определяет контракт хранилища преподавателей.
// Реализации находятся в infrastructure/persistence.
type Repository interface {
	// Create создаёт нового преподавателя.
	// Возвращает ErrAlreadyExists при конфликте логина или ID.
	Create(ctx context.Context, p *Professor) error

	// GetByID возвращает преподавателя по ID.
	// Возвращает ErrNotFound, если преподаватель не найден.
	GetByID(ctx context.Context, id ID) (*Professor, error)

	// Exists возвращает true, если идентификатор принадлежит преподавателю.
	Exists(ctx context.Context, id ID) (bool, error)
}
