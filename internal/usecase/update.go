package usecase

import (
	"context"
	"fmt"
	"taskManager/internal/logger"
	"taskManager/internal/models/task"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UpdateTaskParams — частичное обновление: nil-поле не трогается.
type UpdateTaskParams struct {
	Title       *string
	Description *string
	Status      *string
}

type UpdateTaskUseCase struct {
	repo TaskRepository
}

func NewUpdateTaskUseCase(repo TaskRepository) *UpdateTaskUseCase {
	return &UpdateTaskUseCase{repo: repo}
}

// Execute применяет поля в порядке title, description, status и сохраняет
// итоговый снимок одним вызовом Update. Любая ошибка валидации или
// перехода отменяет всё обновление, частичное применение не сохраняется.
func (uc *UpdateTaskUseCase) Execute(ctx context.Context, id uuid.UUID, params UpdateTaskParams) (*task.Task, error) {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	if existing == nil {
		logger.Warn("UseCase: Задача не найдена для обновления", zap.String("task_id", id.String()))
		return nil, task.NewNotFound(id.String())
	}

	updated := existing

	if params.Title != nil {
		updated, err = updated.UpdateTitle(*params.Title)
		if err != nil {
			return nil, err
		}
	}

	if params.Description != nil {
		updated, err = updated.UpdateDescription(*params.Description)
		if err != nil {
			return nil, err
		}
	}

	if params.Status != nil {
		newStatus, err := task.ParseStatus(*params.Status)
		if err != nil {
			return nil, err
		}

		// легальность перехода оценивается по состоянию задачи,
		// каким оно было сохранено до этого обновления
		if err := existing.ValidateTransitionTo(newStatus); err != nil {
			logger.Warn("UseCase: Недопустимый переход статуса",
				zap.String("task_id", id.String()),
				zap.String("from", existing.Status.String()),
				zap.String("to", newStatus.String()))
			return nil, err
		}

		updated = updated.ChangeStatus(newStatus)
	}

	if err := uc.repo.Update(ctx, updated); err != nil {
		logger.Error("UseCase: Неожиданная ошибка при обновлении задачи", err,
			zap.String("task_id", id.String()))
		return nil, task.NewValidationError(fmt.Sprintf("Не удалось обновить задачу: %v", err))
	}

	logger.Info("UseCase: Задача обновлена", zap.String("task_id", id.String()))
	return updated, nil
}
