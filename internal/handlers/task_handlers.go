package handlers

import (
	"encoding/json"
	"net/http"
	"taskManager/internal/handlers/dto"
	"taskManager/internal/logger"
	"taskManager/internal/models/task"
	"taskManager/internal/usecase"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskHandler struct {
	uc    UseCases
	maint MaintenanceRepository
}

func NewTaskHandler(uc UseCases, maint MaintenanceRepository) *TaskHandler {
	return &TaskHandler{
		uc:    uc,
		maint: maint,
	}
}

func parseTaskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		logger.Warn("HTTP: Не удалось разобрать id",
			zap.String("id", idParam),
			zap.Error(err))
		responseWithError(w, http.StatusBadRequest,
			"Неверный формат id задачи: "+err.Error(), task.CodeValidation)
		return uuid.Nil, false
	}

	if id == uuid.Nil {
		logger.Warn("HTTP: Пустой id", zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest,
			"id не может быть пустым", task.CodeValidation)
		return uuid.Nil, false
	}

	return id, true
}

func (h *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("received", r.Header.Get("Content-Type")))
		responseWithError(w, http.StatusUnsupportedMediaType,
			"Content-Type должен быть application/json", task.CodeValidation)
		return
	}

	var request dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: Ошибка чтения JSON", zap.Error(err))
		responseWithError(w, http.StatusBadRequest,
			"Неверное тело запроса: "+err.Error(), task.CodeValidation)
		return
	}

	created, err := h.uc.Create.Execute(r.Context(), request.Title, request.Description)
	if err != nil {
		handleServiceError(w, err, "create_task")
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.String("task_id", created.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithData(w, http.StatusCreated, dto.FromTask(created))
}

func (h *TaskHandler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.uc.GetAll.Execute(r.Context())
	if err != nil {
		handleServiceError(w, err, "get_all_tasks")
		return
	}

	responseWithData(w, http.StatusOK, dto.FromTaskList(tasks))
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	found, err := h.uc.Get.Execute(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, "get_task")
		return
	}

	responseWithData(w, http.StatusOK, dto.FromTask(found))
}

func (h *TaskHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("received", r.Header.Get("Content-Type")))
		responseWithError(w, http.StatusUnsupportedMediaType,
			"Content-Type должен быть application/json", task.CodeValidation)
		return
	}

	var request dto.UpdateTaskRequest
	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: Ошибка чтения JSON", zap.Error(err))
		responseWithError(w, http.StatusBadRequest,
			"Неверно переданы параметры обновления: "+err.Error(), task.CodeValidation)
		return
	}

	updated, err := h.uc.Update.Execute(r.Context(), id, usecase.UpdateTaskParams{
		Title:       request.Title,
		Description: request.Description,
		Status:      request.Status,
	})
	if err != nil {
		handleServiceError(w, err, "update_task")
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.String("task_id", id.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithData(w, http.StatusOK, dto.FromTask(updated))
}

func (h *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	if err := h.uc.Delete.Execute(r.Context(), id); err != nil {
		handleServiceError(w, err, "delete_task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := h.maint.Statistics(r.Context())
	responseWithData(w, http.StatusOK, dto.FromStatistics(stats))
}

func (h *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := h.maint.HealthCheck(r.Context()); err != nil {
		responseWithJSON(w, http.StatusServiceUnavailable,
			toPayload("status", "unhealthy"),
			toPayload("error", err.Error()),
		)
		return
	}

	responseWithJSON(w, http.StatusOK,
		toPayload("status", "healthy"),
		toPayload("message", "Task Manager API is running"),
	)
}
