package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/movievault/movievault/internal/server/models"
	serr "github.com/movievault/movievault/internal/shared/errors"
)

// Нижняя граница publishing_year; верхняя — текущий год + 10.
const minPublishingYear = 1900

// MoviesService реализует бизнес-логику работы с фильмами.
// Сервис:
//   - валидирует входные данные (по всем полям сразу);
//   - считает пагинацию;
//   - не знает о HTTP и БД напрямую.
type MoviesService struct {
	repo MoviesRepo
}

// NewMoviesService создаёт новый MoviesService.
func NewMoviesService(repo MoviesRepo) *MoviesService {
	return &MoviesService{repo: repo}
}

// MovieUpdateInput — сырые поля partial update из формы.
// nil-поле означает, что клиент его не передавал.
type MovieUpdateInput struct {
	Title          *string
	PublishingYear *string
	Poster         *string
}

// validateTitle проверяет title; сообщение пишется в ve.
func validateTitle(ve *serr.ValidationError, title string, required bool) (string, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		if required {
			ve.Add("title", "Title is required")
		} else {
			ve.Add("title", "Title cannot be empty")
		}
		return "", false
	}
	return title, true
}

// validateYear парсит и проверяет publishing_year; сообщение пишется в ve.
func validateYear(ve *serr.ValidationError, raw string) (int, bool) {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || year < minPublishingYear || year > time.Now().Year()+10 {
		ve.Add("publishingYear", "Publishing year must be a valid year")
		return 0, false
	}
	return year, true
}

// List возвращает страницу фильмов и блок пагинации.
//
// page и limit приходят уже распаршенными из query-параметров и НЕ
// ограничиваются сверху — отрицательные и огромные значения уходят
// в запрос как есть. totalPages = ceil(total/limit).
func (s *MoviesService) List(ctx context.Context, page, limit int) (models.MovieList, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return models.MovieList{}, err
	}

	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	offset := (page - 1) * limit

	movies, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return models.MovieList{}, err
	}

	return models.MovieList{
		Movies: movies,
		Pagination: models.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: limit,
		},
	}, nil
}

// Get возвращает фильм по id.
//
// Ошибки:
//   - ErrNotFound
//   - ErrInternal
func (s *MoviesService) Get(ctx context.Context, id uuid.UUID) (models.Movie, error) {
	return s.repo.GetByID(ctx, id)
}

// Create валидирует входные поля и сохраняет новый фильм.
//
// title — обязателен и непуст; year — обязателен, целое число
// в [1900, текущий год+10]. Ошибки валидации собираются по всем
// полям сразу и возвращаются одним ValidationError.
//
// poster — готовый путь вида /uploads/<file> (загрузку файла делает
// storage-слой до вызова сервиса) либо nil.
func (s *MoviesService) Create(ctx context.Context, title, year string, poster *string) (models.Movie, error) {
	ve := serr.NewValidationError()

	cleanTitle, _ := validateTitle(ve, title, true)
	cleanYear, _ := validateYear(ve, year)

	if !ve.Empty() {
		return models.Movie{}, ve
	}

	return s.repo.Create(ctx, cleanTitle, cleanYear, poster)
}

// Update выполняет partial update фильма.
//
// Валидируются только присутствующие поля (те же правила, что и в
// Create). Если не передано ни одного известного поля — ErrNoFields.
//
// Ошибки:
//   - ErrNoFields
//   - ValidationError (ErrInvalidInput)
//   - ErrNotFound — записи с таким id нет
func (s *MoviesService) Update(ctx context.Context, id uuid.UUID, in MovieUpdateInput) (models.Movie, error) {
	if in.Title == nil && in.PublishingYear == nil && in.Poster == nil {
		return models.Movie{}, serr.ErrNoFields
	}

	ve := serr.NewValidationError()
	upd := models.MovieUpdate{Poster: in.Poster}

	if in.Title != nil {
		if title, ok := validateTitle(ve, *in.Title, false); ok {
			upd.Title = &title
		}
	}
	if in.PublishingYear != nil {
		if year, ok := validateYear(ve, *in.PublishingYear); ok {
			upd.PublishingYear = &year
		}
	}

	if !ve.Empty() {
		return models.Movie{}, ve
	}

	return s.repo.Update(ctx, id, upd)
}

// Delete удаляет фильм по id.
//
// Ошибки:
//   - ErrNotFound — повторное удаление того же id тоже отдаёт ErrNotFound
//   - ErrInternal
func (s *MoviesService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
