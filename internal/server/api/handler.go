// Package api реализует HTTP-слой сервера MovieVault.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения;
//   - разбор multipart-форм с постерами.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/movievault/movievault/internal/server/middleware"
	"github.com/movievault/movievault/internal/server/service"
	"github.com/movievault/movievault/internal/server/storage"
	"github.com/movievault/movievault/internal/shared/logger"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Gate: проверка JWT + перечитывание субъекта из БД;
//   - Posters: дисковое хранилище загружаемых постеров;
//   - Env: режим запуска (dev|prod) — в dev детали 500-х отдаются клиенту.
type Handler struct {
	Svc     *service.Services
	Log     *logger.HTTPLogger
	Gate    *middleware.AuthGate
	Posters *storage.PosterStorage
	Env     string
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
func NewHandler(svc *service.Services, log *logger.HTTPLogger, gate *middleware.AuthGate, posters *storage.PosterStorage, env string) *Handler {
	return &Handler{
		Svc:     svc,
		Log:     log,
		Gate:    gate,
		Posters: posters,
		Env:     env,
	}
}

// ErrorResponse стандартный формат ошибки API.
//
// Fields заполняется только для ошибок валидации (сообщение на поле).
// Detail заполняется для 500-х вне prod-режима.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
	Detail string            `json:"detail,omitempty"`
}

// Вспомогательная функция вывода ошибки
func WriteError(w http.ResponseWriter, status int, err error) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: err.Error(),
	})
}

// WriteValidationError отдаёт 400 с сообщениями по каждому полю.
func WriteValidationError(w http.ResponseWriter, fields map[string]string) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:  "validation failed",
		Fields: fields,
	})
}

// writeInternal отдаёт общий 500; детали ошибки уходят клиенту только вне prod.
func (h *Handler) writeInternal(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: "internal error"}
	if h.Env != "prod" && err != nil {
		resp.Detail = err.Error()
	}

	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(resp)
}
