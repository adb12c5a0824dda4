// Package main - точка входа HTTP-сервиса движка прогресса курсов.
//
// Архитектура следует принципам Clean Architecture и DDD:
// - Domain: чистая бизнес-логика без внешних зависимостей
// - Application: оркестрация use cases (Commands/Queries)
// - Infrastructure: реализация репозиториев, внешние клиенты
// - Interface: HTTP endpoints (gin)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/curso-hub/curso-learning-hub/config"
	"github.com/curso-hub/curso-learning-hub/internal/application/command"
	"github.com/curso-hub/curso-learning-hub/internal/application/query"
	"github.com/curso-hub/curso-learning-hub/internal/domain/progress"
	"github.com/curso-hub/curso-learning-hub/internal/infrastructure/external/statussync"
	"github.com/curso-hub/curso-learning-hub/internal/infrastructure/persistence/postgres"
	"github.com/curso-hub/curso-learning-hub/internal/infrastructure/persistence/redis"
	httpserver "github.com/curso-hub/curso-learning-hub/internal/interface/http"
	"github.com/curso-hub/curso-learning-hub/pkg/circuitbreaker"
	"github.com/curso-hub/curso-learning-hub/pkg/idgen"
	"github.com/curso-hub/curso-learning-hub/pkg/logger"
	"github.com/curso-hub/curso-learning-hub/pkg/retry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. ЗАГРУЗКА КОНФИГУРАЦИИ
	// ─────────────────────────────────────────────────────────────────────────
	// .env нужен только для локальной разработки, его отсутствие не ошибка.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. НАСТРОЙКА ЛОГИРОВАНИЯ
	// ─────────────────────────────────────────────────────────────────────────
	log, err := logger.New(string(cfg.App.Environment), cfg.Observability.LogLevel, cfg.Observability.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting curso learning hub",
		zap.String("env", string(cfg.App.Environment)),
		zap.String("version", cfg.App.Version))

	// ─────────────────────────────────────────────────────────────────────────
	// 3. ПОДКЛЮЧЕНИЕ К БАЗЕ ДАННЫХ (PostgreSQL)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to database")
	pgConfig := postgres.DefaultConfig(cfg.Database.URL)
	pgConfig.MaxConns = int32(cfg.Database.MaxConns)
	pgConfig.MinConns = int32(cfg.Database.MinConns)
	pgConfig.MaxConnLifetime = cfg.Database.ConnMaxLifetime
	pgConfig.MaxConnIdleTime = cfg.Database.ConnMaxIdleTime

	dbConn, err := postgres.NewConnection(ctx, pgConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("closing database connection")
		dbConn.Close()
	}()

	// ─────────────────────────────────────────────────────────────────────────
	// 4. ЗАПУСК МИГРАЦИЙ
	// ─────────────────────────────────────────────────────────────────────────
	if cfg.Database.MigrateOnStart {
		log.Info("running database migrations")
		migrator, err := postgres.NewMigrator(dbConn)
		if err != nil {
			return fmt.Errorf("failed to create migrator: %w", err)
		}
		if err := migrator.Run(ctx); err != nil {
			_ = migrator.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		version, err := migrator.Version(ctx)
		if err != nil {
			log.Warn("failed to get migration version", zap.Error(err))
		} else {
			log.Info("migrations completed", zap.Int64("version", version))
		}
		if err := migrator.Close(); err != nil {
			log.Warn("failed to close migrator", zap.Error(err))
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. ИНИЦИАЛИЗАЦИЯ REDIS (опционально)
	// ─────────────────────────────────────────────────────────────────────────
	var statusCache progress.StatusCache
	if !cfg.Redis.Disabled {
		log.Info("connecting to redis")
		redisCfg := redis.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		}

		redisCache, err := redis.NewCache(ctx, redisCfg)
		if err != nil {
			// Кеш ускоряет чтение статуса, но движок полностью
			// работоспособен и без него.
			log.Warn("failed to connect to redis, status cache disabled", zap.Error(err))
		} else {
			defer func() { _ = redisCache.Close() }()
			statusCache = redis.NewStatusCache(redisCache)
			log.Info("redis connection established")
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. ИНИЦИАЛИЗАЦИЯ РЕПОЗИТОРИЕВ
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing repositories")
	professorRepo := postgres.NewProfessorRepository(dbConn)
	studentRepo := postgres.NewStudentRepository(dbConn)
	courseRepo := postgres.NewCourseRepository(dbConn)
	viewingRepo := postgres.NewViewingRepository(dbConn)
	approvalRepo := postgres.NewApprovalRepository(dbConn)

	// ─────────────────────────────────────────────────────────────────────────
	// 7. ИНИЦИАЛИЗАЦИЯ ВНЕШНИХ КЛИЕНТОВ
	// ─────────────────────────────────────────────────────────────────────────
	var notifier progress.Notifier
	if cfg.StatusSync.BaseURL != "" {
		log.Info("initializing status sync client", zap.String("base_url", cfg.StatusSync.BaseURL))
		syncCfg := statussync.Config{
			BaseURL: cfg.StatusSync.BaseURL,
			APIKey:  cfg.StatusSync.APIKey,
			Timeout: cfg.StatusSync.RequestTimeout,
			RetryConfig: retry.Config{
				MaxAttempts:  cfg.StatusSync.MaxRetries,
				InitialDelay: cfg.StatusSync.RetryBaseDelay,
				MaxDelay:     cfg.StatusSync.RetryMaxDelay,
				Multiplier:   2.0,
				JitterFactor: 0.1,
			},
			BreakerConfig: circuitbreaker.Config{
				Name:             "statussync",
				FailureThreshold: cfg.StatusSync.CircuitBreakerThreshold,
				SuccessThreshold: 2,
				Timeout:          cfg.StatusSync.CircuitBreakerTimeout,
			},
		}
		notifier = statussync.NewClient(syncCfg, log)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 8. ИНИЦИАЛИЗАЦИЯ APPLICATION LAYER (Commands, Queries)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing application layer")
	allocator := idgen.New()

	deps := httpserver.Dependencies{
		CreateProfessor: command.NewCreateProfessorHandler(professorRepo, allocator),
		CreateStudent:   command.NewCreateStudentHandler(studentRepo, allocator),
		Courses:         command.NewCourseHandler(courseRepo, professorRepo),
		CreateLesson:    command.NewCreateLessonHandler(courseRepo),
		Access:          command.NewAccessHandler(courseRepo),
		RecordViewing:   command.NewRecordViewingHandler(studentRepo, courseRepo, viewingRepo, statusCache, log),
		CreateApproval: command.NewCreateApprovalHandler(
			professorRepo, studentRepo, courseRepo, viewingRepo, approvalRepo,
			notifier, statusCache, log, cfg.StatusSync.NotifyTimeout),

		GetStatus:           query.NewGetStatusHandler(courseRepo, viewingRepo, approvalRepo, statusCache, log),
		GetRoster:           query.NewGetRosterHandler(courseRepo, studentRepo, viewingRepo),
		GetCourseForStudent: query.NewGetCourseForStudentHandler(courseRepo),
		ListLessons:         query.NewListLessonsHandler(courseRepo, viewingRepo),
		IsProfessor:         query.NewIsProfessorHandler(professorRepo),

		Logger:        log,
		HealthChecker: dbConn,
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 9. ЗАПУСК HTTP-СЕРВЕРА
	// ─────────────────────────────────────────────────────────────────────────
	serverCfg := httpserver.Config{
		Host:         cfg.HTTP.Host,
		Port:         cfg.HTTP.Port,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Env:          string(cfg.App.Environment),
	}
	server := httpserver.NewServer(serverCfg, deps)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// ─────────────────────────────────────────────────────────────────────────
	// 10. GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return err
		}
	case sig := <-stop:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case <-ctx.Done():
		log.Info("context cancelled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info("shutdown complete")
	return nil
}
