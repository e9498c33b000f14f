package handlers

import (
	"context"
	"taskManager/internal/models/task"
	"taskManager/internal/usecase"
)

// UseCases — пять операций приложения, которые обслуживает HTTP-слой.
type UseCases struct {
	Create *usecase.CreateTaskUseCase
	Get    *usecase.GetTaskUseCase
	GetAll *usecase.GetAllTasksUseCase
	Update *usecase.UpdateTaskUseCase
	Delete *usecase.DeleteTaskUseCase
}

// MaintenanceRepository — узкий интерфейс для /health и /tasks/stats,
// мимо use case-слоя: это сервисные, а не доменные операции.
type MaintenanceRepository interface {
	HealthCheck(ctx context.Context) error
	Statistics(ctx context.Context) task.Statistics
}
