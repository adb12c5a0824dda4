// Package course содержит доменную модель курса: уроки и множество
// доступа студентов (access set).
package course

import (
	"errors"
	"strings"
	"time"

	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
)

// ID - идентификатор курса. Выдаётся хранилищем (последовательность),
// а не аллокатором случайных ID.
type ID int64

// LessonID - идентификатор урока.
type LessonID int64

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: COURSE
// ══════════════════════════════════════════════════════════════════════════════

// Course - именованная единица обучения, принадлежащая одному преподавателю.
type Course struct {
	// ID - идентификатор курса.
	ID ID

	// Name - название курса.
	Name string

	// Description - описание курса.
	Description string

	// Banner - ссылка на баннер курса.
	Banner string

	// ProfessorID - владелец курса. Неизменяем после создания.
	ProfessorID int64

	// AccessSet - множество ID студентов с доступом к курсу.
	AccessSet []student.ID

	// Lessons - упорядоченная коллекция уроков курса.
	Lessons []Lesson

	// CreatedAt - время создания записи.
	CreatedAt time.Time

	// UpdatedAt - время последнего обновления.
	UpdatedAt time.Time
}

// FileRef - ссылка на файл урока.
type FileRef struct {
	// Name - имя файла.
	Name string

	// Type - тип файла: pdf, xlsx, docx, pptx.
	Type string
}

// Lesson - урок курса. Ожидается ровно один вид контента (текст, файл
// или ссылка), но движок это взаимно не форсирует.
type Lesson struct {
	// ID - идентификатор урока.
	ID LessonID

	// CourseID - курс, которому принадлежит урок.
	CourseID ID

	// Text - текстовый контент урока.
	Text string

	// File - файловый контент урока.
	File *FileRef

	// Link - контент-ссылка.
	Link string

	// CreatedAt - время создания (задаёт порядок уроков).
	CreatedAt time.Time
}

// HasContent возвращает true, если у урока есть хотя бы один вид контента.
func (l Lesson) HasContent() bool {
	return l.Text != "" || l.File != nil || l.Link != ""
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrNotFound - курс не найден.
	ErrNotFound = errors.New("course not found")

	// ErrLessonNotFound - урок не найден.
	ErrLessonNotFound = errors.New("lesson not found")

	// ErrNotEnrolled - курс не найден или студент не записан на курс.
	ErrNotEnrolled = errors.New("course not found or student not enrolled")

	// ErrStudentsNotFound - один или несколько студентов из батча не найдены.
	ErrStudentsNotFound = errors.New("one or more students not found")

	// ErrEmptyStudentBatch - пустой батч студентов в grant/revoke.
	ErrEmptyStudentBatch = errors.New("student id batch must not be empty")

	// ErrInvalidName - невалидное название курса.
	ErrInvalidName = errors.New("invalid course name: must be 1-200 chars")

	// ErrInvalidProfessor - невалидный ID преподавателя.
	ErrInvalidProfessor = errors.New("invalid professor id")
)

// ══════════════════════════════════════════════════════════════════════════════
// FACTORY & ACCESS SET ALGEBRA
// ══════════════════════════════════════════════════════════════════════════════

// New создаёт курс с валидацией полей. ID присваивается хранилищем.
func New(name, description, banner string, professorID int64) (*Course, error) {
	name = strings.TrimSpace(name)
	if len(name) == 0 || len(name) > 200 {
		return nil, ErrInvalidName
	}
	if professorID <= 0 {
		return nil, ErrInvalidProfessor
	}

	now := time.Now().UTC()
	return &Course{
		Name:        name,
		Description: description,
		Banner:      banner,
		ProfessorID: professorID,
		AccessSet:   []student.ID{},
		Lessons:     []Lesson{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// HasAccess возвращает true, если студент входит в access set.
func (c *Course) HasAccess(id student.ID) bool {
	for _, sid := range c.AccessSet {
		if sid == id {
			return true
		}
	}
	return false
}

// Grant добавляет студентов в access set (объединение множеств).
// Повторная выдача доступа уже записанному студенту - no-op для него.
func (c *Course) Grant(ids []student.ID) {
	for _, id := range ids {
		if !c.HasAccess(id) {
			c.AccessSet = append(c.AccessSet, id)
		}
	}
	c.UpdatedAt = time.Now().UTC()
}

// Revoke удаляет студентов из access set (разность множеств).
// Отзыв доступа у незаписанного студента - no-op для него.
func (c *Course) Revoke(ids []student.ID) {
	revoked := make(map[student.ID]struct{}, len(ids))
	for _, id := range ids {
		revoked[id] = struct{}{}
	}

	kept := c.AccessSet[:0]
	for _, sid := range c.AccessSet {
		if _, ok := revoked[sid]; !ok {
			kept = append(kept, sid)
		}
	}
	c.AccessSet = kept
	c.UpdatedAt = time.Now().UTC()
}

// TotalLessons возвращает количество уроков курса.
func (c *Course) TotalLessons() int {
	return len(c.Lessons)
}

// ApplyUpdate обновляет изменяемые поля курса. ProfessorID не меняется.
func (c *Course) ApplyUpdate(name, description, banner string) error {
	name = strings.TrimSpace(name)
	if len(name) == 0 || len(name) > 200 {
		return ErrInvalidName
	}

	c.Name = name
	c.Description = description
	c.Banner = banner
	c.UpdatedAt = time.Now().UTC()
	return nil
}
