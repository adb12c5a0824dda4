// Package progress содержит ядро движка: вывод статуса студента в курсе
// из событий просмотра, записи просмотров и подтверждения преподавателя.
package progress

// Status - производная стадия жизненного цикла студента в курсе.
// Порядок строгий и монотонный: просмотры двигают состояние только вперёд
// по NotStarted → InProgress → Finished, а единственный переход
// Finished → Approved делает явное подтверждение преподавателя.
type Status string

const (
	// StatusNotStarted - ни один урок курса не просмотрен.
	StatusNotStarted Status = "not_started"

	// StatusInProgress - просмотрена часть уроков, но не все.
	StatusInProgress Status = "in_progress"

	// StatusFinished - просмотрены все уроки, подтверждения ещё нет.
	StatusFinished Status = "finished"

	// StatusApproved - все уроки просмотрены и есть запись Approval.
	StatusApproved Status = "approved"
)

// IsValid проверяет, что статус корректен.
func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusFinished, StatusApproved:
		return true
	default:
		return false
	}
}

// Rank возвращает позицию статуса в порядке жизненного цикла.
// Используется для проверки монотонности переходов.
func (s Status) Rank() int {
	switch s {
	case StatusNotStarted:
		return 0
	case StatusInProgress:
		return 1
	case StatusFinished:
		return 2
	case StatusApproved:
		return 3
	default:
		return -1
	}
}

// Derive выводит статус из количества просмотренных уроков, общего
// количества уроков курса и наличия записи Approval.
//
// Полный просмотр необходим, но недостаточен для Approved - нужна ещё
// явная запись подтверждения. Вырожденный случай total == 0 тривиально
// считается полным просмотром.
func Derive(viewed, total int, approved bool) Status {
	switch {
	case viewed == 0 && total > 0:
		return StatusNotStarted
	case viewed < total:
		return StatusInProgress
	case approved:
		return StatusApproved
	default:
		return StatusFinished
	}
}

// FullyViewed - предикат "все уроки просмотрены", предусловие
// подтверждения. Совпадает с условием входа в Finished/Approved.
func FullyViewed(viewed, total int) bool {
	return viewed >= total
}
