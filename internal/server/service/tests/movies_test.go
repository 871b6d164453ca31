package tests

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/movievault/movievault/internal/server/models"
	"github.com/movievault/movievault/internal/server/service"
	"github.com/movievault/movievault/internal/server/service/mocks"
	serr "github.com/movievault/movievault/internal/shared/errors"
	"github.com/movievault/movievault/internal/shared/utils"
)

func newMoviesService(t *testing.T) (*service.MoviesService, *mocks.MockMoviesRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockMoviesRepo(ctrl)

	return service.NewMoviesService(repo), repo
}

// Успешное создание: поля после валидации уходят в репозиторий
func TestMoviesService_Create_OK(t *testing.T) {
	ctx := context.Background()
	svc, repo := newMoviesService(t)

	want := models.Movie{ID: uuid.New(), Title: "Heat", PublishingYear: 1995}

	repo.EXPECT().
		Create(ctx, "Heat", 1995, gomock.Nil()).
		Return(want, nil)

	got, err := svc.Create(ctx, "  Heat  ", "1995", nil)

	require.NoError(t, err)
	require.Equal(t, want, got)
}

// Пустой title
func TestMoviesService_Create_TitleRequired(t *testing.T) {
	svc, _ := newMoviesService(t)

	_, err := svc.Create(context.Background(), "   ", "1995", nil)

	var ve *serr.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "Title is required", ve.Fields["title"])
	// errors.Is тоже должен видеть ErrInvalidInput
	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

// Нечисловой год
func TestMoviesService_Create_YearNotANumber(t *testing.T) {
	svc, _ := newMoviesService(t)

	_, err := svc.Create(context.Background(), "Heat", "abc", nil)

	var ve *serr.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "Publishing year must be a valid year", ve.Fields["publishingYear"])
}

// Год вне диапазона [1900, текущий+10]
func TestMoviesService_Create_YearOutOfRange(t *testing.T) {
	svc, _ := newMoviesService(t)

	for _, raw := range []string{"1899", strconv.Itoa(time.Now().Year() + 11)} {
		_, err := svc.Create(context.Background(), "Heat", raw, nil)

		var ve *serr.ValidationError
		require.ErrorAs(t, err, &ve, "year %s", raw)
		require.Contains(t, ve.Fields, "publishingYear")
	}
}

// Ошибки собираются по всем полям сразу
func TestMoviesService_Create_CollectsAllFieldErrors(t *testing.T) {
	svc, _ := newMoviesService(t)

	_, err := svc.Create(context.Background(), "", "nope", nil)

	var ve *serr.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Fields, 2)
	require.Contains(t, ve.Fields, "title")
	require.Contains(t, ve.Fields, "publishingYear")
}

// Границы диапазона года включительно
func TestMoviesService_Create_YearBoundsInclusive(t *testing.T) {
	ctx := context.Background()
	svc, repo := newMoviesService(t)

	maxYear := time.Now().Year() + 10

	repo.EXPECT().Create(ctx, "Old", 1900, gomock.Nil()).Return(models.Movie{}, nil)
	repo.EXPECT().Create(ctx, "Future", maxYear, gomock.Nil()).Return(models.Movie{}, nil)

	_, err := svc.Create(ctx, "Old", "1900", nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Future", strconv.Itoa(maxYear), nil)
	require.NoError(t, err)
}

// Список с блоком пагинации: totalPages = ceil(total/limit)
func TestMoviesService_List_Pagination(t *testing.T) {
	ctx := context.Background()
	svc, repo := newMoviesService(t)

	movies := []models.Movie{{Title: "Heat"}, {Title: "Alien"}}

	repo.EXPECT().Count(ctx).Return(17, nil)
	// page=2, limit=8 -> offset=8
	repo.EXPECT().List(ctx, 8, 8).Return(movies, nil)

	list, err := svc.List(ctx, 2, 8)

	require.NoError(t, err)
	require.Equal(t, movies, list.Movies)
	require.Equal(t, 2, list.Pagination.CurrentPage)
	require.Equal(t, 3, list.Pagination.TotalPages) // ceil(17/8)
	require.Equal(t, 17, list.Pagination.TotalItems)
	require.Equal(t, 8, list.Pagination.ItemsPerPage)
}

// Отрицательный limit проходит в репозиторий как есть
func TestMoviesService_List_NegativeLimitPassedThrough(t *testing.T) {
	ctx := context.Background()
	svc, repo := newMoviesService(t)

	repo.EXPECT().Count(ctx).Return(5, nil)
	repo.EXPECT().List(ctx, -3, -3).Return([]models.Movie{}, nil)

	list, err := svc.List(ctx, 2, -3)

	require.NoError(t, err)
	require.Equal(t, 0, list.Pagination.TotalPages)
	require.Equal(t, -3, list.Pagination.ItemsPerPage)
}

// Ошибка Count прерывает выдачу
func TestMoviesService_List_CountFails(t *testing.T) {
	ctx := context.Background()
	svc, repo := newMoviesService(t)

	repo.EXPECT().Count(ctx).Return(0, serr.ErrInternal)

	_, err := svc.List(ctx, 1, 8)

	require.ErrorIs(t, err, serr.ErrInternal)
}

// Update без единого поля
func TestMoviesService_Update_NoFields(t *testing.T) {
	svc, _ := newMoviesService(t)

	_, err := svc.Update(context.Background(), uuid.New(), service.MovieUpdateInput{})

	require.ErrorIs(t, err, serr.ErrNoFields)
}

// Update только заголовка: год не валидируется и не передаётся
func TestMoviesService_Update_TitleOnly(t *testing.T) {
	ctx := context.Background()
	svc, repo := newMoviesService(t)

	id := uuid.New()
	want := models.Movie{ID: id, Title: "Heat 2", PublishingYear: 1995}

	repo.EXPECT().
		Update(ctx, id, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, upd models.MovieUpdate) (models.Movie, error) {
			require.NotNil(t, upd.Title)
			require.Equal(t, "Heat 2", *upd.Title)
			require.Nil(t, upd.PublishingYear)
			require.Nil(t, upd.Poster)
			return want, nil
		})

	got, err := svc.Update(ctx, id, service.MovieUpdateInput{Title: utils.StrPtr(" Heat 2 ")})

	require.NoError(t, err)
	require.Equal(t, want, got)
}

// Переданный, но пустой title — ошибка валидации
func TestMoviesService_Update_EmptyTitle(t *testing.T) {
	svc, _ := newMoviesService(t)

	_, err := svc.Update(context.Background(), uuid.New(), service.MovieUpdateInput{
		Title: utils.StrPtr("  "),
	})

	var ve *serr.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "Title cannot be empty", ve.Fields["title"])
}

// Переданный, но невалидный год
func TestMoviesService_Update_BadYear(t *testing.T) {
	svc, _ := newMoviesService(t)

	_, err := svc.Update(context.Background(), uuid.New(), service.MovieUpdateInput{
		PublishingYear: utils.StrPtr("12"),
	})

	var ve *serr.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Fields, "publishingYear")
}

// Записи с таким id нет
func TestMoviesService_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, repo := newMoviesService(t)

	id := uuid.New()

	repo.EXPECT().
		Update(ctx, id, gomock.Any()).
		Return(models.Movie{}, serr.ErrNotFound)

	_, err := svc.Update(ctx, id, service.MovieUpdateInput{Title: utils.StrPtr("x")})

	require.ErrorIs(t, err, serr.ErrNotFound)
}

// Get и Delete пробрасывают ошибки репозитория
func TestMoviesService_GetDelete_PassThrough(t *testing.T) {
	ctx := context.Background()
	svc, repo := newMoviesService(t)

	id := uuid.New()

	repo.EXPECT().GetByID(ctx, id).Return(models.Movie{}, serr.ErrNotFound)
	repo.EXPECT().Delete(ctx, id).Return(serr.ErrNotFound)

	_, err := svc.Get(ctx, id)
	if !errors.Is(err, serr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := svc.Delete(ctx, id); !errors.Is(err, serr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
