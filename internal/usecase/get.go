package usecase

import (
	"context"
	"fmt"
	"taskManager/internal/logger"
	"taskManager/internal/models/task"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GetTaskUseCase struct {
	repo TaskRepository
}

func NewGetTaskUseCase(repo TaskRepository) *GetTaskUseCase {
	return &GetTaskUseCase{repo: repo}
}

func (uc *GetTaskUseCase) Execute(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	found, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	if found == nil {
		logger.Warn("UseCase: Задача не найдена", zap.String("task_id", id.String()))
		return nil, task.NewNotFound(id.String())
	}
	return found, nil
}
