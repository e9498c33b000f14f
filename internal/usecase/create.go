package usecase

import (
	"context"
	"fmt"
	"taskManager/internal/logger"
	"taskManager/internal/models/task"

	"go.uber.org/zap"
)

type CreateTaskUseCase struct {
	repo TaskRepository
}

func NewCreateTaskUseCase(repo TaskRepository) *CreateTaskUseCase {
	return &CreateTaskUseCase{repo: repo}
}

// Execute создаёт задачу. Ошибки валидации сущности уходят наверх
// как есть; любая ошибка персистентности заворачивается в
// VALIDATION_ERROR — все сбои создания видны клиенту как 400.
func (uc *CreateTaskUseCase) Execute(ctx context.Context, title, description string) (*task.Task, error) {
	newTask, err := task.New(title, description)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, newTask); err != nil {
		logger.Error("UseCase: Неожиданная ошибка при создании задачи", err,
			zap.String("task_id", newTask.ID.String()))
		return nil, task.NewValidationError(fmt.Sprintf("Не удалось создать задачу: %v", err))
	}

	logger.Info("UseCase: Задача создана",
		zap.String("task_id", newTask.ID.String()),
		zap.String("title", newTask.Title))
	return newTask, nil
}
