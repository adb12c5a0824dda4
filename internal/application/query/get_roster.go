package query

import (
	"context"
	"errors"

	"github.com/curso-hub/curso-learning-hub/internal/domain/course"
	"github.com/curso-hub/curso-learning-hub/internal/domain/progress"
	"github.com/curso-hub/curso-learning-hub/internal/domain/shared"
	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// COURSE ROSTER QUERY
// Lists the students with access to a course together with their viewing
// progress. Completed is derived live from counts; Approved is the
// student's cached display flag.
// ══════════════════════════════════════════════════════════════════════════════

// GetRosterQuery identifies the course.
type GetRosterQuery struct {
	CourseID course.ID
}

// RosterEntry is one enrolled student with progress counters.
type RosterEntry struct {
	StudentID     student.ID
	DisplayName   string
	Login         string
	Approved      bool
	ViewedLessons int
	TotalLessons  int
	Completed     bool
}

// GetRosterResult contains the roster entries.
type GetRosterResult struct {
	Entries []RosterEntry
}

// GetRosterHandler handles the GetRosterQuery.
type GetRosterHandler struct {
	courses  course.Repository
	students student.Repository
	viewings progress.ViewingRepository
}

// NewGetRosterHandler creates a new GetRosterHandler.
func NewGetRosterHandler(
	courses course.Repository,
	students student.Repository,
	viewings progress.ViewingRepository,
) *GetRosterHandler {
	return &GetRosterHandler{
		courses:  courses,
		students: students,
		viewings: viewings,
	}
}

// Handle executes the query.
func (h *GetRosterHandler) Handle(ctx context.Context, q GetRosterQuery) (*GetRosterResult, error) {
	total, err := h.courses.CountLessons(ctx, q.CourseID)
	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return nil, shared.NewDomainError("course", "GetRoster", shared.ErrNotFound, "course not found")
		}
		return nil, shared.WrapError("course", "GetRoster", shared.ErrInternal, "failed to count lessons", err)
	}

	accessIDs, err := h.courses.ListAccess(ctx, q.CourseID)
	if err != nil {
		return nil, shared.WrapError("course", "GetRoster", shared.ErrInternal, "failed to list access set", err)
	}

	enrolled, err := h.students.GetByIDs(ctx, accessIDs)
	if err != nil {
		return nil, shared.WrapError("course", "GetRoster", shared.ErrInternal, "failed to load students", err)
	}

	viewedByStudent, err := h.viewings.CountByStudent(ctx, q.CourseID)
	if err != nil {
		return nil, shared.WrapError("course", "GetRoster", shared.ErrInternal, "failed to count viewings", err)
	}

	entries := make([]RosterEntry, 0, len(enrolled))
	for _, s := range enrolled {
		viewed := viewedByStudent[s.ID]
		entries = append(entries, RosterEntry{
			StudentID:     s.ID,
			DisplayName:   s.DisplayName,
			Login:         s.Login.String(),
			Approved:      s.Approved,
			ViewedLessons: viewed,
			TotalLessons:  total,
			Completed:     progress.FullyViewed(viewed, total),
		})
	}

	return &GetRosterResult{Entries: entries}, nil
}
