package tests

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/movievault/movievault/internal/server/models"
	"github.com/movievault/movievault/internal/server/repository"
	serr "github.com/movievault/movievault/internal/shared/errors"
	"github.com/movievault/movievault/internal/shared/utils"
)

const movieCols = "id, title, publishing_year, poster, created_at, updated_at"

func movieRow(id uuid.UUID, title string, year int, poster *string, ts time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "publishing_year", "poster", "created_at", "updated_at"}).
		AddRow(id, title, year, poster, ts, ts)
}

// Создание фильма: база возвращает запись целиком
func TestMoviesRepository_Create_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewMoviesRepository(db)

	id := uuid.New()
	now := time.Now()
	poster := utils.StrPtr("/uploads/poster-x.jpg")

	mock.ExpectQuery(`INSERT INTO movies`).
		WithArgs("Heat", 1995, poster).
		WillReturnRows(movieRow(id, "Heat", 1995, poster, now))

	m, err := repo.Create(context.Background(), "Heat", 1995, poster)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID != id || m.Title != "Heat" || m.PublishingYear != 1995 {
		t.Fatalf("unexpected movie: %+v", m)
	}
	if m.Poster == nil || *m.Poster != *poster {
		t.Fatalf("unexpected poster: %v", m.Poster)
	}
}

// Ошибка базы при создании
func TestMoviesRepository_Create_InternalError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewMoviesRepository(db)

	mock.ExpectQuery(`INSERT INTO movies`).
		WillReturnError(sql.ErrConnDone)

	_, err := repo.Create(context.Background(), "Heat", 1995, nil)

	if err != serr.ErrInternal {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

// Получение по id
func TestMoviesRepository_GetByID_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewMoviesRepository(db)

	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT ` + movieCols + ` FROM movies`).
		WithArgs(id).
		WillReturnRows(movieRow(id, "Alien", 1979, nil, now))

	m, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Title != "Alien" || m.Poster != nil {
		t.Fatalf("unexpected movie: %+v", m)
	}
}

// Записи нет
func TestMoviesRepository_GetByID_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewMoviesRepository(db)

	mock.ExpectQuery(`SELECT ` + movieCols + ` FROM movies`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), uuid.New())

	if err != serr.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// Подсчёт для пагинации
func TestMoviesRepository_Count_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewMoviesRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM movies`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(17))

	total, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 17 {
		t.Fatalf("expected 17, got %d", total)
	}
}

// Страница списка: limit/offset уходят в запрос как есть
func TestMoviesRepository_List_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewMoviesRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "publishing_year", "poster", "created_at", "updated_at"}).
		AddRow(uuid.New(), "Heat", 1995, nil, now, now).
		AddRow(uuid.New(), "Alien", 1979, nil, now, now)

	mock.ExpectQuery(`SELECT ` + movieCols).
		WithArgs(8, 8).
		WillReturnRows(rows)

	movies, err := repo.List(context.Background(), 8, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}
	if movies[0].Title != "Heat" {
		t.Fatalf("unexpected order: %+v", movies)
	}
}

// Пустая страница — пустой срез, не nil
func TestMoviesRepository_List_Empty(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewMoviesRepository(db)

	mock.ExpectQuery(`SELECT ` + movieCols).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "publishing_year", "poster", "created_at", "updated_at"}))

	movies, err := repo.List(context.Background(), 8, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if movies == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(movies) != 0 {
		t.Fatalf("expected empty page, got %d", len(movies))
	}
}

// Partial update: непереданные поля остаются прежними через COALESCE
func TestMoviesRepository_Update_TitleOnly(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewMoviesRepository(db)

	id := uuid.New()
	now := time.Now()
	title := utils.StrPtr("Heat (Director's Cut)")

	mock.ExpectQuery(`UPDATE movies`).
		WithArgs(title, nil, nil, id).
		WillReturnRows(movieRow(id, *title, 1995, nil, now))

	m, err := repo.Update(context.Background(), id, models.MovieUpdate{Title: title})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Title != *title {
		t.Fatalf("expected title %q, got %q", *title, m.Title)
	}
	if m.PublishingYear != 1995 {
		t.Fatalf("expected year untouched, got %d", m.PublishingYear)
	}
}

// Обновление несуществующей записи
func TestMoviesRepository_Update_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewMoviesRepository(db)

	mock.ExpectQuery(`UPDATE movies`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), uuid.New(), models.MovieUpdate{Title: utils.StrPtr("x")})

	if err != serr.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// Удаление
func TestMoviesRepository_Delete_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewMoviesRepository(db)

	id := uuid.New()

	mock.ExpectExec(`DELETE FROM movies`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// Повторное удаление: ни одна строка не затронута
func TestMoviesRepository_Delete_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewMoviesRepository(db)

	mock.ExpectExec(`DELETE FROM movies`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), uuid.New())

	if err != serr.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// Ошибка базы при удалении
func TestMoviesRepository_Delete_InternalError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewMoviesRepository(db)

	mock.ExpectExec(`DELETE FROM movies`).
		WillReturnError(sql.ErrConnDone)

	err := repo.Delete(context.Background(), uuid.New())

	if err != serr.ErrInternal {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
