package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/curso-hub/curso-learning-hub/internal/application/command"
	"github.com/curso-hub/curso-learning-hub/internal/application/query"
	"github.com/curso-hub/curso-learning-hub/internal/domain/course"
	"github.com/curso-hub/curso-learning-hub/internal/domain/shared"
	"github.com/curso-hub/curso-learning-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleHealth(c *gin.Context) {
	if s.deps.HealthChecker != nil {
		if err := s.deps.HealthChecker.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ══════════════════════════════════════════════════════════════════════════════
// IDENTITY
// ══════════════════════════════════════════════════════════════════════════════

type createPersonRequest struct {
	DisplayName string `json:"displayName" binding:"required"`
	Login       string `json:"login" binding:"required"`
}

func (s *Server) handleCreateProfessor(c *gin.Context) {
	var req createPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "displayName and login are required")
		return
	}

	result, err := s.deps.CreateProfessor.Handle(c.Request.Context(), command.CreateProfessorCommand{
		DisplayName: req.DisplayName,
		Login:       req.Login,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":          int64(result.Professor.ID),
		"displayName": result.Professor.DisplayName,
		"login":       result.Professor.Login.String(),
	})
}

func (s *Server) handleCreateStudent(c *gin.Context) {
	var req createPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "displayName and login are required")
		return
	}

	result, err := s.deps.CreateStudent.Handle(c.Request.Context(), command.CreateStudentCommand{
		DisplayName: req.DisplayName,
		Login:       req.Login,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":          int64(result.Student.ID),
		"displayName": result.Student.DisplayName,
		"login":       result.Student.Login.String(),
		"approved":    result.Student.Approved,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// COURSE LIFECYCLE
// ══════════════════════════════════════════════════════════════════════════════

type courseRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Banner      string `json:"banner"`
}

func courseJSON(crs *course.Course) gin.H {
	return gin.H{
		"id":          int64(crs.ID),
		"name":        crs.Name,
		"description": crs.Description,
		"banner":      crs.Banner,
		"professorId": crs.ProfessorID,
	}
}

func (s *Server) handleCreateCourse(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "name is required")
		return
	}

	result, err := s.deps.Courses.HandleCreate(c.Request.Context(), command.CreateCourseCommand{
		ProfessorID: c.GetInt64("professor_id"),
		Name:        req.Name,
		Description: req.Description,
		Banner:      req.Banner,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, courseJSON(result.Course))
}

func (s *Server) handleUpdateCourse(c *gin.Context) {
	courseID, ok := courseParam(c)
	if !ok {
		return
	}

	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "name is required")
		return
	}

	result, err := s.deps.Courses.HandleUpdate(c.Request.Context(), command.UpdateCourseCommand{
		ProfessorID: c.GetInt64("professor_id"),
		CourseID:    courseID,
		Name:        req.Name,
		Description: req.Description,
		Banner:      req.Banner,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, courseJSON(result.Course))
}

func (s *Server) handleDeleteCourse(c *gin.Context) {
	courseID, ok := courseParam(c)
	if !ok {
		return
	}

	err := s.deps.Courses.HandleDelete(c.Request.Context(), command.DeleteCourseCommand{
		ProfessorID: c.GetInt64("professor_id"),
		CourseID:    courseID,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ══════════════════════════════════════════════════════════════════════════════
// ACCESS MANAGEMENT
// ══════════════════════════════════════════════════════════════════════════════

type accessRequest struct {
	StudentIDs []int64 `json:"studentIds"`
}

func (r accessRequest) toCommand(courseID course.ID) command.AccessCommand {
	ids := make([]student.ID, len(r.StudentIDs))
	for i, id := range r.StudentIDs {
		ids[i] = student.ID(id)
	}
	return command.AccessCommand{CourseID: courseID, StudentIDs: ids}
}

func (s *Server) handleGrantAccess(c *gin.Context) {
	s.handleAccess(c, s.deps.Access.HandleGrant)
}

func (s *Server) handleRevokeAccess(c *gin.Context) {
	s.handleAccess(c, s.deps.Access.HandleRevoke)
}

func (s *Server) handleAccess(c *gin.Context, apply func(ctx context.Context, cmd command.AccessCommand) error) {
	courseID, ok := courseParam(c)
	if !ok {
		return
	}

	var req accessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "studentIds must be an array of numbers")
		return
	}

	if err := apply(c.Request.Context(), req.toCommand(courseID)); err != nil {
		s.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ══════════════════════════════════════════════════════════════════════════════
// LESSONS
// ══════════════════════════════════════════════════════════════════════════════

type createLessonRequest struct {
	Text string `json:"text"`
	File *struct {
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"file"`
	Link string `json:"link"`
}

func lessonJSON(l course.Lesson) gin.H {
	body := gin.H{
		"id":       int64(l.ID),
		"courseId": int64(l.CourseID),
		"text":     l.Text,
		"link":     l.Link,
	}
	if l.File != nil {
		body["file"] = gin.H{"name": l.File.Name, "type": l.File.Type}
	}
	return body
}

func (s *Server) handleCreateLesson(c *gin.Context) {
	courseID, ok := courseParam(c)
	if !ok {
		return
	}

	var req createLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid lesson payload")
		return
	}

	cmd := command.CreateLessonCommand{
		CourseID: courseID,
		Text:     req.Text,
		Link:     req.Link,
	}
	if req.File != nil {
		cmd.File = &course.FileRef{Name: req.File.Name, Type: req.File.Type}
	}

	result, err := s.deps.CreateLesson.Handle(c.Request.Context(), cmd)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lessonJSON(*result.Lesson))
}

func (s *Server) handleListLessons(c *gin.Context) {
	courseID, ok := courseParam(c)
	if !ok {
		return
	}

	result, err := s.deps.ListLessons.HandleList(c.Request.Context(), query.ListLessonsQuery{CourseID: courseID})
	if err != nil {
		s.writeError(c, err)
		return
	}

	lessons := make([]gin.H, len(result.Lessons))
	for i, l := range result.Lessons {
		lessons[i] = lessonJSON(l)
	}
	c.JSON(http.StatusOK, gin.H{"lessons": lessons})
}

// ══════════════════════════════════════════════════════════════════════════════
// VIEWING & PROGRESS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleRecordViewing(c *gin.Context) {
	studentID, ok := studentParam(c)
	if !ok {
		return
	}
	lessonID, err := strconv.ParseInt(c.Param("lessonId"), 10, 64)
	if err != nil {
		badRequest(c, "invalid lesson id")
		return
	}

	result, err := s.deps.RecordViewing.Handle(c.Request.Context(), command.RecordViewingCommand{
		StudentID: studentID,
		LessonID:  course.LessonID(lessonID),
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"created":  result.Created,
		"courseId": int64(result.CourseID),
	})
}

func (s *Server) handleGetCourseForStudent(c *gin.Context) {
	studentID, courseID, ok := pairParams(c)
	if !ok {
		return
	}

	result, err := s.deps.GetCourseForStudent.Handle(c.Request.Context(), query.GetCourseForStudentQuery{
		CourseID:  courseID,
		StudentID: studentID,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          int64(result.Course.ID),
		"name":        result.Course.Name,
		"description": result.Course.Description,
		"banner":      result.Course.Banner,
	})
}

func (s *Server) handleGetStatus(c *gin.Context) {
	studentID, courseID, ok := pairParams(c)
	if !ok {
		return
	}

	result, err := s.deps.GetStatus.Handle(c.Request.Context(), query.GetStatusQuery{
		StudentID: studentID,
		CourseID:  courseID,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": string(result.Status)})
}

func (s *Server) handleListViewedLessons(c *gin.Context) {
	studentID, courseID, ok := pairParams(c)
	if !ok {
		return
	}

	result, err := s.deps.ListLessons.HandleViewed(c.Request.Context(), query.ListViewedLessonsQuery{
		StudentID: studentID,
		CourseID:  courseID,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	ids := make([]int64, len(result.LessonIDs))
	for i, id := range result.LessonIDs {
		ids[i] = int64(id)
	}
	c.JSON(http.StatusOK, gin.H{"lessonIds": ids})
}

// ══════════════════════════════════════════════════════════════════════════════
// ROSTER & APPROVAL
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleGetRoster(c *gin.Context) {
	courseID, ok := courseParam(c)
	if !ok {
		return
	}

	result, err := s.deps.GetRoster.Handle(c.Request.Context(), query.GetRosterQuery{CourseID: courseID})
	if err != nil {
		s.writeError(c, err)
		return
	}

	entries := make([]gin.H, len(result.Entries))
	for i, e := range result.Entries {
		entries[i] = gin.H{
			"studentId":     int64(e.StudentID),
			"displayName":   e.DisplayName,
			"login":         e.Login,
			"approved":      e.Approved,
			"viewedLessons": e.ViewedLessons,
			"totalLessons":  e.TotalLessons,
			"completed":     e.Completed,
		}
	}
	c.JSON(http.StatusOK, gin.H{"students": entries})
}

type approvalRequest struct {
	StudentID int64 `json:"studentId" binding:"required"`
}

func (s *Server) handleCreateApproval(c *gin.Context) {
	courseID, ok := courseParam(c)
	if !ok {
		return
	}

	var req approvalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "studentId is required")
		return
	}

	result, err := s.deps.CreateApproval.Handle(c.Request.Context(), command.CreateApprovalCommand{
		ProfessorID: c.GetInt64("professor_id"),
		StudentID:   student.ID(req.StudentID),
		CourseID:    courseID,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	if result.AlreadyApproved {
		c.JSON(http.StatusOK, gin.H{"alreadyApproved": true})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"professorId": result.Approval.ProfessorID,
		"studentId":   int64(result.Approval.StudentID),
		"courseId":    int64(result.Approval.CourseID),
		"approved":    result.Approval.Approved,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

func courseParam(c *gin.Context) (course.ID, bool) {
	id, err := strconv.ParseInt(c.Param("courseId"), 10, 64)
	if err != nil {
		badRequest(c, "invalid course id")
		return 0, false
	}
	return course.ID(id), true
}

func studentParam(c *gin.Context) (student.ID, bool) {
	id, err := strconv.ParseInt(c.Param("studentId"), 10, 64)
	if err != nil {
		badRequest(c, "invalid student id")
		return 0, false
	}
	return student.ID(id), true
}

func pairParams(c *gin.Context) (student.ID, course.ID, bool) {
	studentID, ok := studentParam(c)
	if !ok {
		return 0, 0, false
	}
	courseID, ok := courseParam(c)
	if !ok {
		return 0, 0, false
	}
	return studentID, courseID, true
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// writeError maps domain error kinds to HTTP status codes.
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case shared.IsConflict(err):
		status = http.StatusConflict
	case shared.IsNotFound(err):
		status = http.StatusNotFound
	case shared.IsInvalidArgument(err):
		status = http.StatusBadRequest
	case shared.IsPreconditionFailed(err):
		status = http.StatusUnprocessableEntity
	}

	message := "internal error"
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) && status != http.StatusInternalServerError {
		message = domainErr.Message
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request handler error",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err))
	}

	c.JSON(status, gin.H{"error": message})
}
