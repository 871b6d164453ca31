// Package errors содержит общие доменные ошибки приложения
// и утилиты для error wrapping.
//
// Эти ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы в api слое.
package errors

import "errors"

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Неверные учётные данные
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Получена непредвиденная ошибка (в т.ч. недоступность БД)
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Запрос без bearer токена
	ErrUnauthorized = errors.New("access token required")
	// Токен не прошёл проверку подписи или истёк
	ErrInvalidToken = errors.New("invalid or expired token")
	// Токен валиден, но пользователь уже удалён
	ErrUnknownSubject = errors.New("user not found")
	// Ресурс уже существует (например email уже занят)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
	// В partial update не передано ни одного известного поля
	ErrNoFields = errors.New("no fields to update")
	// Файл постера не прошёл проверку (тип/размер)
	ErrBadUpload = errors.New("only image files are allowed")
)

// ValidationError — ошибка валидации с сообщениями по каждому полю.
//
// Сообщения собираются по всем полям сразу, а не до первой ошибки.
// В api слое маппится на 400, Fields отдаются клиенту как есть.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// Is позволяет проверять ValidationError через errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError создаёт ValidationError с пустой картой полей.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add добавляет сообщение об ошибке для поля.
func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = msg
}

// Empty сообщает, накопились ли ошибки по полям.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}
