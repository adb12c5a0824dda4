// Package http implements the REST API of the course progress engine.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/curso-hub/curso-learning-hub/internal/application/command"
	"github.com/curso-hub/curso-learning-hub/internal/application/query"
)

// ══════════════════════════════════════════════════════════════════════════════
// SERVER CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// Config contains HTTP server configuration.
type Config struct {
	// Host - address to bind (default: "0.0.0.0").
	Host string

	// Port - port to listen on (default: 8080).
	Port int

	// ReadTimeout - maximum duration for reading the entire request.
	ReadTimeout time.Duration

	// WriteTimeout - maximum duration for writing the response.
	WriteTimeout time.Duration

	// IdleTimeout - maximum time to wait for the next request.
	IdleTimeout time.Duration

	// Env selects the gin mode: "production" runs in release mode.
	Env string
}

// DefaultConfig returns sensible server defaults.
func DefaultConfig() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		Env:          "development",
	}
}

// Address returns the server address string.
func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ══════════════════════════════════════════════════════════════════════════════
// DEPENDENCIES
// ══════════════════════════════════════════════════════════════════════════════

// HealthChecker reports whether the server's backing stores are reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Dependencies contains all application handlers the routes dispatch to.
type Dependencies struct {
	// Command handlers (write side)
	CreateProfessor *command.CreateProfessorHandler
	CreateStudent   *command.CreateStudentHandler
	Courses         *command.CourseHandler
	CreateLesson    *command.CreateLessonHandler
	Access          *command.AccessHandler
	RecordViewing   *command.RecordViewingHandler
	CreateApproval  *command.CreateApprovalHandler

	// Query handlers (read side)
	GetStatus           *query.GetStatusHandler
	GetRoster           *query.GetRosterHandler
	GetCourseForStudent *query.GetCourseForStudentHandler
	ListLessons         *query.ListLessonsHandler
	IsProfessor         *query.IsProfessorHandler

	// Logger
	Logger *zap.Logger

	// HealthChecker may be nil; /health then only reports liveness.
	HealthChecker HealthChecker
}

// ══════════════════════════════════════════════════════════════════════════════
// SERVER
// ══════════════════════════════════════════════════════════════════════════════

// Server is the HTTP server.
type Server struct {
	config     Config
	deps       Dependencies
	engine     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(config Config, deps Dependencies) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(RequestLogger(logger))

	s := &Server{
		config: config,
		deps:   deps,
		engine: engine,
		logger: logger,
	}
	s.registerRoutes()

	s.httpServer = &http.Server{
		Addr:         config.Address(),
		Handler:      engine,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return s
}

// registerRoutes wires the API surface.
func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.handleHealth)

	v1 := s.engine.Group("/api/v1")

	v1.POST("/professors", s.handleCreateProfessor)
	v1.POST("/students", s.handleCreateStudent)

	// Professor-scoped routes: the professor in the path must exist.
	prof := v1.Group("/professors/:professorId", RequireProfessor(s.deps.IsProfessor))
	prof.POST("/courses", s.handleCreateCourse)
	prof.PUT("/courses/:courseId", s.handleUpdateCourse)
	prof.DELETE("/courses/:courseId", s.handleDeleteCourse)
	prof.POST("/courses/:courseId/grant-access", s.handleGrantAccess)
	prof.POST("/courses/:courseId/revoke-access", s.handleRevokeAccess)
	prof.GET("/courses/:courseId/roster", s.handleGetRoster)
	prof.POST("/courses/:courseId/approvals", s.handleCreateApproval)

	v1.POST("/courses/:courseId/lessons", s.handleCreateLesson)
	v1.GET("/courses/:courseId/lessons", s.handleListLessons)

	v1.POST("/students/:studentId/lessons/:lessonId/viewings", s.handleRecordViewing)
	v1.GET("/students/:studentId/courses/:courseId", s.handleGetCourseForStudent)
	v1.GET("/students/:studentId/courses/:courseId/status", s.handleGetStatus)
	v1.GET("/students/:studentId/courses/:courseId/viewed-lessons", s.handleListViewedLessons)
}

// Start runs the server until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http server starting", zap.String("addr", s.config.Address()))

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// Engine exposes the router, e.g. for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
