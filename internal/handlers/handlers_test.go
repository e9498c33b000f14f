package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"taskManager/internal/handlers"
	"taskManager/internal/handlers/dto"
	"taskManager/internal/models/task"
	"taskManager/internal/repository/task/inmemory"
	"taskManager/internal/usecase"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// тестовое окружение: настоящие use case-ы поверх inmemory-хранилища,
// маршруты как в app.buildRouter
func newTestServer() (*chi.Mux, *inmemory.TaskStorage) {
	storage := inmemory.NewTaskStorage()

	handler := handlers.NewTaskHandler(handlers.UseCases{
		Create: usecase.NewCreateTaskUseCase(storage),
		Get:    usecase.NewGetTaskUseCase(storage),
		GetAll: usecase.NewGetAllTasksUseCase(storage),
		Update: usecase.NewUpdateTaskUseCase(storage),
		Delete: usecase.NewDeleteTaskUseCase(storage),
	}, storage)

	router := chi.NewRouter()
	router.Route("/api/tasks", func(r chi.Router) {
		r.Post("/", handler.PostTask)
		r.Get("/", handler.GetAllTasks)
		r.Get("/stats", handler.GetStats)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handler.GetTaskByID)
			r.Put("/", handler.UpdateTaskByID)
			r.Delete("/", handler.DeleteTaskByID)
		})
	})
	router.Get("/health", handler.HealthCheck)

	return router, storage
}

func doJSON(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeTask(t *testing.T, recorder *httptest.ResponseRecorder) dto.TaskResponse {
	t.Helper()
	var response dto.TaskResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var response map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response
}

// создание и последующее чтение возвращают одинаковый снимок
func TestAPI_CreateAndGet(t *testing.T) {
	router, _ := newTestServer()

	recorder := doJSON(t, router, http.MethodPost, "/api/tasks", dto.CreateTaskRequest{
		Title:       "Изучить Go",
		Description: "Прочитать спеку языка",
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	created := decodeTask(t, recorder)
	assert.Equal(t, "Изучить Go", created.Title)
	assert.Equal(t, "created", created.Status)
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))

	recorder = doJSON(t, router, http.MethodGet, "/api/tasks/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	fetched := decodeTask(t, recorder)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Title, fetched.Title)
	assert.Equal(t, created.Status, fetched.Status)
}

func TestAPI_Create_Validation(t *testing.T) {
	router, _ := newTestServer()

	t.Run("whitespace title", func(t *testing.T) {
		recorder := doJSON(t, router, http.MethodPost, "/api/tasks", dto.CreateTaskRequest{Title: "   "})
		require.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, task.CodeValidation, decodeError(t, recorder)["error_code"])
	})

	t.Run("missing content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader([]byte(`{"title":"x"}`)))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, recorder.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader([]byte(`{"title"`)))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

// завершённую задачу нельзя вернуть в created, остальные переходы проходят
func TestAPI_StatusLifecycle(t *testing.T) {
	router, _ := newTestServer()

	recorder := doJSON(t, router, http.MethodPost, "/api/tasks", dto.CreateTaskRequest{Title: "Жизненный цикл"})
	require.Equal(t, http.StatusCreated, recorder.Code)
	id := decodeTask(t, recorder).ID.String()

	status := func(value string) dto.UpdateTaskRequest {
		return dto.UpdateTaskRequest{Status: &value}
	}

	recorder = doJSON(t, router, http.MethodPut, "/api/tasks/"+id, status("in_progress"))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "in_progress", decodeTask(t, recorder).Status)

	recorder = doJSON(t, router, http.MethodPut, "/api/tasks/"+id, status("completed"))
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, http.MethodPut, "/api/tasks/"+id, status("created"))
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	body := decodeError(t, recorder)
	assert.Equal(t, task.CodeStatusTransition, body["error_code"])

	// completed -> in_progress разрешён
	recorder = doJSON(t, router, http.MethodPut, "/api/tasks/"+id, status("in_progress"))
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestAPI_Update(t *testing.T) {
	router, _ := newTestServer()

	recorder := doJSON(t, router, http.MethodPost, "/api/tasks", dto.CreateTaskRequest{Title: "Старое"})
	require.Equal(t, http.StatusCreated, recorder.Code)
	id := decodeTask(t, recorder).ID.String()

	t.Run("partial update keeps other fields", func(t *testing.T) {
		title := "Новое"
		recorder := doJSON(t, router, http.MethodPut, "/api/tasks/"+id, dto.UpdateTaskRequest{Title: &title})
		require.Equal(t, http.StatusOK, recorder.Code)

		updated := decodeTask(t, recorder)
		assert.Equal(t, "Новое", updated.Title)
		assert.Equal(t, "created", updated.Status)
	})

	t.Run("unknown status value", func(t *testing.T) {
		bad := "done"
		recorder := doJSON(t, router, http.MethodPut, "/api/tasks/"+id, dto.UpdateTaskRequest{Status: &bad})
		require.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, task.CodeValidation, decodeError(t, recorder)["error_code"])
	})

	t.Run("unknown id", func(t *testing.T) {
		title := "Кому?"
		recorder := doJSON(t, router, http.MethodPut,
			"/api/tasks/3f2504e0-4f89-41d3-9a0c-0305e82c3301", dto.UpdateTaskRequest{Title: &title})
		require.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Equal(t, task.CodeNotFound, decodeError(t, recorder)["error_code"])
	})

	t.Run("malformed id", func(t *testing.T) {
		title := "Кому?"
		recorder := doJSON(t, router, http.MethodPut, "/api/tasks/not-a-uuid", dto.UpdateTaskRequest{Title: &title})
		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

// после удаления задача недоступна, повторное удаление даёт 404
func TestAPI_Delete(t *testing.T) {
	router, _ := newTestServer()

	recorder := doJSON(t, router, http.MethodPost, "/api/tasks", dto.CreateTaskRequest{Title: "На удаление"})
	require.Equal(t, http.StatusCreated, recorder.Code)
	id := decodeTask(t, recorder).ID.String()

	recorder = doJSON(t, router, http.MethodDelete, "/api/tasks/"+id, nil)
	require.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.Bytes())

	recorder = doJSON(t, router, http.MethodGet, "/api/tasks/"+id, nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, task.CodeNotFound, decodeError(t, recorder)["error_code"])

	recorder = doJSON(t, router, http.MethodDelete, "/api/tasks/"+id, nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestAPI_GetAll(t *testing.T) {
	router, _ := newTestServer()

	recorder := doJSON(t, router, http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var list dto.TaskListResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &list))
	assert.Equal(t, 0, list.Total)
	assert.Empty(t, list.Tasks)

	for _, title := range []string{"Первая", "Вторая", "Третья"} {
		recorder := doJSON(t, router, http.MethodPost, "/api/tasks", dto.CreateTaskRequest{Title: title})
		require.Equal(t, http.StatusCreated, recorder.Code)
	}

	recorder = doJSON(t, router, http.MethodGet, "/api/tasks", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &list))
	assert.Equal(t, 3, list.Total)
	require.Len(t, list.Tasks, 3)
}

func TestAPI_Stats(t *testing.T) {
	router, storage := newTestServer()

	first, err := task.New("Первая", "")
	require.NoError(t, err)
	second, err := task.New("Вторая", "")
	require.NoError(t, err)
	require.NoError(t, storage.Create(context.Background(), first))
	require.NoError(t, storage.Create(context.Background(), second.ChangeStatus(task.StatusCompleted)))

	recorder := doJSON(t, router, http.MethodGet, "/api/tasks/stats", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var stats dto.StatsResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ByStatus["created"])
	assert.Equal(t, 1, stats.ByStatus["completed"])
}

func TestAPI_Health(t *testing.T) {
	router, _ := newTestServer()

	recorder := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeError(t, recorder)
	assert.Equal(t, "healthy", body["status"])
}
