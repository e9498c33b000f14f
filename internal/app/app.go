package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"taskManager/internal/config"
	"taskManager/internal/handlers"
	"taskManager/internal/logger"
	"taskManager/internal/middleware"
	"taskManager/internal/repository/task/inmemory"
	"taskManager/internal/repository/task/postgres"
	"taskManager/internal/usecase"
	"taskManager/internal/worker"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type App struct {
	config    *config.Config
	server    *http.Server
	worker    *worker.StatsWorker
	shutdowns []func(context.Context) // вызываются в обратном порядке
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(context.Context), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func(context.Context) {
		logger.Info("Завершение работы логгирования")
		logger.Sync()
	})

	var taskRepo usecase.TaskRepository
	var maint handlers.MaintenanceRepository
	var statsRepo worker.StatsRepository

	switch a.config.Repository.Type {
	case "inmemory":
		logger.Info("App: Используется inmemory-хранилище")
		storage := inmemory.NewTaskStorage()
		taskRepo, maint, statsRepo = storage, storage, storage

	case "postgres":
		storage, err := postgres.New(ctx, postgres.Config{
			URL:            a.config.Database.URL,
			MaxConnections: int32(a.config.Database.MaxConnections),
			MinConnections: int32(a.config.Database.MinConnections),
			IdleTimeout:    a.config.Database.IdleTimeout,
		})
		if err != nil {
			return fmt.Errorf("подключение к postgres: %w", err)
		}

		if a.config.Database.Migrate {
			if err := storage.Migrate(); err != nil {
				storage.Close()
				return fmt.Errorf("миграции: %w", err)
			}
		}

		a.shutdowns = append(a.shutdowns, func(context.Context) {
			storage.Close()
		})
		taskRepo, maint, statsRepo = storage, storage, storage

	default:
		return fmt.Errorf("неизвестный тип хранилища: %s", a.config.Repository.Type)
	}

	handler := handlers.NewTaskHandler(handlers.UseCases{
		Create: usecase.NewCreateTaskUseCase(taskRepo),
		Get:    usecase.NewGetTaskUseCase(taskRepo),
		GetAll: usecase.NewGetAllTasksUseCase(taskRepo),
		Update: usecase.NewUpdateTaskUseCase(taskRepo),
		Delete: usecase.NewDeleteTaskUseCase(taskRepo),
	}, maint)

	a.server = &http.Server{
		Addr:         a.config.ServerAddr(),
		Handler:      a.buildRouter(handler),
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	if a.config.Worker.Enabled {
		a.worker = worker.NewStatsWorker(statsRepo, a.config.Worker.Interval)
	}

	return nil
}

func (a *App) buildRouter(h *handlers.TaskHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	}))
	r.Use(middleware.RateLimit(a.config.Server.RateLimitRPM))

	r.Route("/api/tasks", func(r chi.Router) {
		r.Post("/", h.PostTask)   // POST /api/tasks
		r.Get("/", h.GetAllTasks) // GET /api/tasks
		r.Get("/stats", h.GetStats)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetTaskByID)       // GET /api/tasks/{id}
			r.Put("/", h.UpdateTaskByID)    // PUT /api/tasks/{id}
			r.Delete("/", h.DeleteTaskByID) // DELETE /api/tasks/{id}
		})
	})

	r.Get("/health", h.HealthCheck)

	return r
}

// Run блокируется до отмены ctx или падения сервера,
// затем гасит всё в обратном порядке инициализации.
func (a *App) Run(ctx context.Context) error {
	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	if a.worker != nil {
		go a.worker.Start(workerCtx)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// при падении сервера хвост завершения всё равно отрабатывает:
	// пул соединений и логгер гасятся на обоих путях
	var runErr error
	select {
	case err := <-errCh:
		runErr = fmt.Errorf("http-сервер: %w", err)
		logger.Error("Сервер завершился с ошибкой, гасим остальное", err)
	case <-ctx.Done():
		logger.Info("Получен сигнал остановки, завершаем работу")
	}

	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки сервера", err)
	}

	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i](shutdownCtx)
	}

	return runErr
}
