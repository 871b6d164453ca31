package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/movievault/movievault/internal/server/models"
	serr "github.com/movievault/movievault/internal/shared/errors"
)

// MoviesRepository реализует доступ к хранилищу фильмов (PostgreSQL).
// Отвечает исключительно за сохранение и извлечение данных без бизнес-логики.
type MoviesRepository struct {
	db *sql.DB
}

// NewMoviesRepository создаёт новый экземпляр MoviesRepository.
func NewMoviesRepository(db *sql.DB) *MoviesRepository {
	return &MoviesRepository{db: db}
}

const movieColumns = `id, title, publishing_year, poster, created_at, updated_at`

func scanMovie(row *sql.Row) (models.Movie, error) {
	var m models.Movie
	err := row.Scan(&m.ID, &m.Title, &m.PublishingYear, &m.Poster, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// Create сохраняет новый фильм и возвращает созданную запись целиком
// (id и таймстемпы генерирует база).
//
// Ошибки:
//   - ErrInternal — ошибка базы данных
func (r *MoviesRepository) Create(ctx context.Context, title string, publishingYear int, poster *string) (models.Movie, error) {
	m, err := scanMovie(r.db.QueryRowContext(ctx, `
		INSERT INTO movies (title, publishing_year, poster)
		VALUES ($1, $2, $3)
		RETURNING `+movieColumns,
		title, publishingYear, poster,
	))

	if err != nil {
		return models.Movie{}, serr.ErrInternal
	}

	return m, nil
}

// GetByID возвращает фильм по id.
//
// Ошибки:
//   - ErrNotFound — записи нет
//   - ErrInternal — ошибка базы данных
func (r *MoviesRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Movie, error) {
	m, err := scanMovie(r.db.QueryRowContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE id=$1`,
		id,
	))

	if err != nil {
		if err == sql.ErrNoRows {
			return models.Movie{}, serr.ErrNotFound
		}
		return models.Movie{}, serr.ErrInternal
	}

	return m, nil
}

// Count возвращает общее число фильмов (для пагинации).
func (r *MoviesRepository) Count(ctx context.Context) (int, error) {
	var total int

	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&total)
	if err != nil {
		return 0, serr.ErrInternal
	}

	return total, nil
}

// List возвращает страницу фильмов в порядке убывания created_at.
//
// limit и offset передаются в запрос как есть — верхних границ
// репозиторий не навязывает.
func (r *MoviesRepository) List(ctx context.Context, limit, offset int) ([]models.Movie, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+movieColumns+`
		FROM movies
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, serr.ErrInternal
	}
	defer rows.Close()

	movies := make([]models.Movie, 0)
	for rows.Next() {
		var m models.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.PublishingYear, &m.Poster, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, serr.ErrInternal
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.ErrInternal
	}

	return movies, nil
}

// Update выполняет partial update: только заданные (non-nil) поля
// мержатся в фиксированный UPDATE через COALESCE, updated_at
// обновляется всегда. SQL из строк не собирается.
//
// Ошибки:
//   - ErrNotFound — записи с таким id нет
//   - ErrInternal — ошибка базы данных
func (r *MoviesRepository) Update(ctx context.Context, id uuid.UUID, upd models.MovieUpdate) (models.Movie, error) {
	m, err := scanMovie(r.db.QueryRowContext(ctx, `
		UPDATE movies
		SET title           = COALESCE($1, title),
		    publishing_year = COALESCE($2, publishing_year),
		    poster          = COALESCE($3, poster),
		    updated_at      = now()
		WHERE id = $4
		RETURNING `+movieColumns,
		upd.Title, upd.PublishingYear, upd.Poster, id,
	))

	if err != nil {
		if err == sql.ErrNoRows {
			return models.Movie{}, serr.ErrNotFound
		}
		return models.Movie{}, serr.ErrInternal
	}

	return m, nil
}

// Delete удаляет фильм по id.
//
// Ошибки:
//   - ErrNotFound — ни одна строка не затронута
//   - ErrInternal — ошибка базы данных
func (r *MoviesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id=$1`, id)
	if err != nil {
		return serr.ErrInternal
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return serr.ErrInternal
	}
	if affected == 0 {
		return serr.ErrNotFound
	}

	return nil
}
