package usecase

import (
	"context"
	"fmt"
	"taskManager/internal/logger"
	"taskManager/internal/models/task"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DeleteTaskUseCase struct {
	repo TaskRepository
}

func NewDeleteTaskUseCase(repo TaskRepository) *DeleteTaskUseCase {
	return &DeleteTaskUseCase{repo: repo}
}

// Execute удаляет задачу насовсем, без tombstone-состояний.
func (uc *DeleteTaskUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("получение задачи: %w", err)
	}
	if existing == nil {
		logger.Warn("UseCase: Задача не найдена для удаления", zap.String("task_id", id.String()))
		return task.NewNotFound(id.String())
	}

	if !existing.CanBeDeleted() {
		return task.NewBusinessRuleViolation(
			fmt.Sprintf("Задача с ID %s не может быть удалена", id))
	}

	removed, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("удаление задачи: %w", err)
	}

	// задача существовала на проверке, но удаление ничего не затронуло —
	// рассогласование поднимаем наружу, а не глотаем
	if !removed {
		logger.Warn("UseCase: Удаление не затронуло ни одной строки",
			zap.String("task_id", id.String()))
		return task.NewBusinessRuleViolation(
			fmt.Sprintf("Не удалось удалить задачу с ID %s", id))
	}

	logger.Info("UseCase: Задача удалена", zap.String("task_id", id.String()))
	return nil
}
