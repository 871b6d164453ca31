package models

import (
	"time"

	"github.com/google/uuid"
)

// Movie — запись фильма, как она хранится и отдаётся клиенту.
//
// Poster — единственное необязательное поле: путь вида /uploads/<file>
// или null, если постер не загружался.
type Movie struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	PublishingYear int       `json:"publishing_year"`
	Poster         *string   `json:"poster"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MovieUpdate — набор опциональных полей для partial update.
//
// nil-поле означает "не трогать". Репозиторий мержит только заданные
// поля в фиксированный UPDATE, без сборки SQL из строк.
type MovieUpdate struct {
	Title          *string
	PublishingYear *int
	Poster         *string
}

// Empty сообщает, что ни одно известное поле не передано.
func (u MovieUpdate) Empty() bool {
	return u.Title == nil && u.PublishingYear == nil && u.Poster == nil
}

// Pagination — блок пагинации в ответе списка фильмов.
//
// Имена полей повторяют контракт API (camelCase).
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// MovieList — ответ эндпоинта списка фильмов.
type MovieList struct {
	Movies     []Movie    `json:"movies"`
	Pagination Pagination `json:"pagination"`
}
