package task

import (
	"errors"
	"fmt"
)

// машинные коды ошибок, стабильные для API-клиентов
const (
	CodeNotFound         = "NOT_FOUND"
	CodeValidation       = "VALIDATION_ERROR"
	CodeStatusTransition = "STATUS_TRANSITION_ERROR"
	CodeAlreadyExists    = "ALREADY_EXISTS"
	CodeBusinessRule     = "BUSINESS_RULE_VIOLATION"
	CodeInternal         = "INTERNAL_ERROR"
)

type Error struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsDomainError достаёт доменную ошибку из цепочки обёрток.
func AsDomainError(err error) (*Error, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

func NewNotFound(id string) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("Задача с ID %s не найдена", id),
		Details: map[string]any{
			"task_id": id,
		},
	}
}

func NewValidationError(message string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewFieldValidation(field, reason string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: fmt.Sprintf("Неверное значение поля '%s': %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

func NewTransitionError(from, to Status) *Error {
	return &Error{
		Code:    CodeStatusTransition,
		Message: fmt.Sprintf("Невозможно изменить статус с '%s' на '%s'", from, to),
		Details: map[string]any{
			"from_status": string(from),
			"to_status":   string(to),
		},
	}
}

func NewAlreadyExists(id string) *Error {
	return &Error{
		Code:    CodeAlreadyExists,
		Message: fmt.Sprintf("Задача с ID %s уже существует", id),
		Details: map[string]any{
			"task_id": id,
		},
	}
}

func NewBusinessRuleViolation(message string) *Error {
	return &Error{
		Code:    CodeBusinessRule,
		Message: message,
	}
}

func NewInternalError(message string, err error) *Error {
	return &Error{
		Code:    CodeInternal,
		Message: message,
		Err:     err,
	}
}
