package task

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000
)

// Task — неизменяемый снимок задачи. Любая мутация возвращает
// новый снимок с обновлённым UpdatedAt, исходный не трогается.
type Task struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Status      Status    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Statistics — сводка по задачам для вспомогательных запросов.
type Statistics struct {
	Total    int
	ByStatus map[Status]int
}

func validateTitle(trimmed string) error {
	if trimmed == "" {
		return NewFieldValidation("title", "название задачи не может быть пустым")
	}
	if utf8.RuneCountInString(trimmed) > MaxTitleLen {
		return NewFieldValidation("title",
			fmt.Sprintf("название задачи не может превышать %d символов", MaxTitleLen))
	}
	return nil
}

func validateDescription(trimmed string) error {
	if utf8.RuneCountInString(trimmed) > MaxDescriptionLen {
		return NewFieldValidation("description",
			fmt.Sprintf("описание задачи не может превышать %d символов", MaxDescriptionLen))
	}
	return nil
}

// New создаёт задачу со статусом StatusCreated и свежим ID.
// CreatedAt и UpdatedAt совпадают.
func New(title, description string) (*Task, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      StatusCreated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (t *Task) UpdateTitle(newTitle string) (*Task, error) {
	newTitle = strings.TrimSpace(newTitle)
	if err := validateTitle(newTitle); err != nil {
		return nil, err
	}

	snapshot := *t
	snapshot.Title = newTitle
	snapshot.UpdatedAt = time.Now().UTC()
	return &snapshot, nil
}

func (t *Task) UpdateDescription(newDescription string) (*Task, error) {
	newDescription = strings.TrimSpace(newDescription)
	if err := validateDescription(newDescription); err != nil {
		return nil, err
	}

	snapshot := *t
	snapshot.Description = newDescription
	snapshot.UpdatedAt = time.Now().UTC()
	return &snapshot, nil
}

// ValidateTransitionTo проверяет переход по таблице.
// Проверять нужно на загруженном из хранилища состоянии,
// ChangeStatus сам переход не валидирует.
func (t *Task) ValidateTransitionTo(newStatus Status) error {
	if !t.Status.CanTransitionTo(newStatus) {
		return NewTransitionError(t.Status, newStatus)
	}
	return nil
}

// ChangeStatus строит снимок с новым статусом. Легальность перехода
// обязан проверить вызывающий через ValidateTransitionTo.
func (t *Task) ChangeStatus(newStatus Status) *Task {
	snapshot := *t
	snapshot.Status = newStatus
	snapshot.UpdatedAt = time.Now().UTC()
	return &snapshot
}

func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// CanBeDeleted — точка расширения для будущих правил удаления
// (например, запрет удаления задач in_progress). Пока всегда true.
func (t *Task) CanBeDeleted() bool {
	return true
}

func (t *Task) String() string {
	return fmt.Sprintf("Task(id=%s, title='%s', status=%s)", t.ID, t.Title, t.Status)
}
