// Package professor содержит доменную модель преподавателя платформы.
// Здесь нет внешних зависимостей - только бизнес-правила.
package professor

import (
	"errors"
	"strings"
	"time"
)

// ID - числовой идентификатор преподавателя, выдаваемый аллокатором
// в диапазоне [10000, 99999]. Уникальность гарантирует хранилище.
type ID int64

// IsValid проверяет, что идентификатор попадает в диапазон аллокатора.
func (id ID) IsValid() bool {
	return id >= MinID && id <= MaxID
}

// Границы диапазона идентификаторов преподавателей.
const (
	MinID ID = 10000
	MaxID ID = 99999
)

// Login - уникальное имя входа преподавателя.
type Login string

// IsValid проверяет корректность логина.
func (l Login) IsValid() bool {
	s := string(l)
	return len(s) >= 2 && len(s) <= 50 && !strings.ContainsAny(s, " \t\n\r")
}

// String возвращает строковое представление логина.
func (l Login) String() string {
	return string(l)
}

// Professor - преподаватель: автор курсов и единственный, кто может
// выдавать доступ и подтверждать прохождение курса.
type Professor struct {
	// ID - числовой идентификатор, выданный аллокатором.
	ID ID

	// DisplayName - отображаемое имя.
	DisplayName string

	// Login - уникальное имя входа.
	Login Login

	// CreatedAt - время создания записи.
	CreatedAt time.Time
}

var (
	// ErrInvalidID - идентификатор вне диапазона аллокатора.
	ErrInvalidID = errors.New("invalid professor id: out of allocator range")

	// ErrInvalidLogin - невалидный логин.
	ErrInvalidLogin = errors.New("invalid professor login: must be 2-50 chars without whitespace")

	// ErrInvalidDisplayName - невалидное отображаемое имя.
	ErrInvalidDisplayName = errors.New("invalid display name: must be 1-100 chars")

	// ErrNotFound - преподаватель не найден.
	ErrNotFound = errors.New("professor not found")

	// ErrAlreadyExists - преподаватель с таким ID уже существует.
	// Кандидат ID можно перегенерировать и повторить вставку.
	ErrAlreadyExists = errors.New("professor already exists")

	// ErrLoginTaken - логин уже занят. Перегенерация ID не поможет.
	ErrLoginTaken = errors.New("professor login already taken")
)

// New создаёт преподавателя с валидацией всех полей.
func New(id ID, displayName string, login Login) (*Professor, error) {
	if !id.IsValid() {
		return nil, ErrInvalidID
	}
	if !login.IsValid() {
		return nil, ErrInvalidLogin
	}

	displayName = strings.TrimSpace(displayName)
	if len(displayName) == 0 || len(displayName) > 100 {
		return nil, ErrInvalidDisplayName
	}

	return &Professor{
		ID:          id,
		DisplayName: displayName,
		Login:       login,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
