package inmemory

import (
	"context"
	"sort"
	"sync"
	"taskManager/internal/logger"
	"taskManager/internal/models/task"
	repo "taskManager/internal/repository"

	"github.com/google/uuid"
)

// TaskStorage — потокобезопасное хранилище в памяти. Используется
// в тестах и в dev-режиме (repository.type: inmemory). Хранит копии
// снимков, чтобы никто не мутировал их в обход сущности.
type TaskStorage struct {
	storage map[uuid.UUID]task.Task
	mtx     sync.RWMutex
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[uuid.UUID]task.Task),
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *TaskStorage) Create(ctx context.Context, t *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.storage[t.ID] = *t
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	stored, ok := s.storage[id]
	if !ok {
		return nil, nil
	}
	return &stored, nil
}

func (s *TaskStorage) GetAll(ctx context.Context) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	tasks := make([]*task.Task, 0, len(s.storage))
	for _, stored := range s.storage {
		snapshot := stored
		tasks = append(tasks, &snapshot)
	}

	// новые первыми, как в postgres-адаптере
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})

	return tasks, nil
}

func (s *TaskStorage) Update(ctx context.Context, t *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[t.ID]; !ok {
		return repo.ErrNoRowsUpdated
	}

	s.storage[t.ID] = *t
	return nil
}

func (s *TaskStorage) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return false, nil
	}

	delete(s.storage, id)
	return true, nil
}

func (s *TaskStorage) Exists(ctx context.Context, id uuid.UUID) bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	_, ok := s.storage[id]
	return ok
}

func (s *TaskStorage) Statistics(ctx context.Context) task.Statistics {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	stats := task.Statistics{
		Total:    len(s.storage),
		ByStatus: make(map[task.Status]int),
	}
	for _, stored := range s.storage {
		stats.ByStatus[stored.Status]++
	}

	logger.Info("Repository: Статистика по задачам собрана")
	return stats
}
