package task

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusCreated    Status = "created"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// таблица переходов: из какого статуса куда можно.
// переход в самого себя разрешён всегда и в таблице не указывается.
// completed -> created намеренно отсутствует: завершённую задачу
// можно вернуть только в in_progress.
var transitions = map[Status][]Status{
	StatusCreated:    {StatusInProgress, StatusCompleted},
	StatusInProgress: {StatusCompleted, StatusCreated},
	StatusCompleted:  {StatusInProgress},
}

func AllStatuses() []Status {
	return []Status{StatusCreated, StatusInProgress, StatusCompleted}
}

func (s Status) IsValid() bool {
	switch s {
	case StatusCreated, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus разбирает строку из транспортного слоя в Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		valid := make([]string, 0, 3)
		for _, st := range AllStatuses() {
			valid = append(valid, string(st))
		}
		return "", NewFieldValidation("status",
			fmt.Sprintf("неверный статус '%s', допустимые: %s", raw, strings.Join(valid, ", ")))
	}
	return s, nil
}

// CanTransitionTo проверяет переход по таблице без ошибки.
func (s Status) CanTransitionTo(to Status) bool {
	if to == s {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}
