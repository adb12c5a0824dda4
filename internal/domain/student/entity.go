// Package student содержит доменную модель студента платформы.
// Это ядро бизнес-логики - здесь нет внешних зависимостей.
package student

import (
	"errors"
	"strings"
	"time"
)

// ID - числовой идентификатор студента, выдаваемый аллокатором
// в диапазоне [0, 999999]. Уникальность гарантирует хранилище.
type ID int64

// IsValid проверяет, что идентификатор попадает в диапазон аллокатора.
func (id ID) IsValid() bool {
	return id >= MinID && id <= MaxID
}

// Границы диапазона идентификаторов студентов.
const (
	MinID ID = 0
	MaxID ID = 999999
)

// Login - уникальное имя входа студента.
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

// Student - студент: получает доступ к курсам, просматривает уроки
// и подтверждается преподавателем по завершении курса.
type Student struct {
	// ID - числовой идентификатор, выданный аллокатором.
	ID ID

	// DisplayName - отображаемое имя.
	DisplayName string

	// Login - уникальное имя входа.
	Login Login

	// Approved - отображаемый кеш статуса подтверждения.
	// НЕ источник истины: авторитетное состояние - наличие записи
	// Approval для пары (студент, курс). Обновляется воркфлоу подтверждения.
	Approved bool

	// CreatedAt - время создания записи.
	CreatedAt time.Time
}

var (
	// ErrInvalidID - идентификатор вне диапазона аллокатора.
	ErrInvalidID = errors.New("invalid student id: out of allocator range")

	// ErrInvalidLogin - невалидный логин.
	ErrInvalidLogin = errors.New("invalid student login: must be 2-50 chars without whitespace")

	// ErrInvalidDisplayName - невалидное отображаемое имя.
	ErrInvalidDisplayName = errors.New("invalid display name: must be 1-100 chars")

	// ErrNotFound - студент не найден.
	ErrNotFound = errors.New("student not found")

	// ErrAlreadyExists - студент с таким ID уже существует.
	// Кандидат ID можно перегенерировать и повторить вставку.
	ErrAlreadyExists = errors.New("student already exists")

	// ErrLoginTaken - логин уже занят. Перегенерация ID не поможет.
	ErrLoginTaken = errors.New("student login already taken")
)

// New создаёт студента с валидацией всех полей.
// Новый студент всегда начинает с Approved = false.
func New(id ID, displayName string, login Login) (*Student, error) {
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

	return &Student{
		ID:          id,
		DisplayName: displayName,
		Login:       login,
		Approved:    false,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// MarkApproved обновляет отображаемый кеш подтверждения.
func (s *Student) MarkApproved() {
	s.Approved = true
}
