package handlers

import (
	"net/http"
	"taskManager/internal/logger"
	"taskManager/internal/models/task"

	"go.uber.org/zap"
)

// handleDomainError переводит доменную ошибку в HTTP-ответ.
// Возвращает false, если ошибка не доменная — тогда это 500.
func handleDomainError(w http.ResponseWriter, err error) bool {
	domainErr, ok := task.AsDomainError(err)
	if !ok {
		return false
	}

	statusCode := mapDomainErrorToHTTP(domainErr.Code)

	logger.Warn("HTTP: Доменная ошибка",
		zap.String("error_code", domainErr.Code),
		zap.Int("http_status", statusCode))

	payloads := []Payload{
		toPayload("error", domainErr.Message),
		toPayload("error_code", domainErr.Code),
	}
	if len(domainErr.Details) > 0 {
		payloads = append(payloads, toPayload("details", domainErr.Details))
	}

	responseWithJSON(w, statusCode, payloads...)
	return true
}

func mapDomainErrorToHTTP(code string) int {
	switch code {
	case task.CodeNotFound:
		return http.StatusNotFound
	case task.CodeValidation, task.CodeStatusTransition:
		return http.StatusBadRequest
	case task.CodeAlreadyExists:
		return http.StatusConflict
	case task.CodeBusinessRule:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// handleServiceError — общий хвост обработки: доменные ошибки уходят
// со своим статусом, всё остальное — 500 INTERNAL_ERROR.
func handleServiceError(w http.ResponseWriter, err error, operation string) {
	if handleDomainError(w, err) {
		return
	}

	logger.Error("HTTP: Неожиданная ошибка", err, zap.String("operation", operation))
	responseWithError(w, http.StatusInternalServerError,
		"Внутренняя ошибка сервера", task.CodeInternal)
}
