package usecase

import (
	"context"
	"taskManager/internal/models/task"

	"github.com/google/uuid"
)

// TaskRepository — контракт хранилища, который потребляют use case-ы.
// Продакшен-реализация — postgres, для тестов и dev-режима — inmemory.
type TaskRepository interface {
	Create(ctx context.Context, t *task.Task) error
	// GetByID возвращает (nil, nil), если задачи нет: отсутствие — не ошибка.
	GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error)
	// GetAll возвращает задачи в порядке created_at по убыванию.
	GetAll(ctx context.Context) ([]*task.Task, error)
	// Update обязан попасть в существующую строку,
	// иначе возвращает repository.ErrNoRowsUpdated.
	Update(ctx context.Context, t *task.Task) error
	// Delete сообщает, была ли строка действительно удалена.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	// Exists при ошибке запроса деградирует в false, не в ошибку.
	Exists(ctx context.Context, id uuid.UUID) bool
}
