package usecase

import (
	"context"
	"fmt"
	"taskManager/internal/models/task"
)

type GetAllTasksUseCase struct {
	repo TaskRepository
}

func NewGetAllTasksUseCase(repo TaskRepository) *GetAllTasksUseCase {
	return &GetAllTasksUseCase{repo: repo}
}

// Execute возвращает все задачи, новые первыми. Без пагинации и фильтров.
func (uc *GetAllTasksUseCase) Execute(ctx context.Context) ([]*task.Task, error) {
	tasks, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return tasks, nil
}
