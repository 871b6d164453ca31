// Package service содержит бизнес-логику приложения (movievault).
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/movievault/movievault/internal/server/config"
	"github.com/movievault/movievault/internal/server/models"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users  UsersRepo
	Movies MoviesRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth   *AuthService
	Movies *MoviesService
}

// NewServices собирает все сервисы приложения.
// cfg нужен AuthService (параметры хеширования пароля и JWT).
func NewServices(repos Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:   NewAuthService(repos.Users, cfg),
		Movies: NewMoviesService(repos.Movies),
	}
}

// UsersRepo — репозиторий пользователей (нужен для auth/register/login).
type UsersRepo interface {
	Create(ctx context.Context, email, passwordHash string) (uuid.UUID, error)
	GetByEmail(ctx context.Context, email string) (uuid.UUID, string, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
}

// MoviesRepo — репозиторий фильмов (CRUD + пагинация).
type MoviesRepo interface {
	Create(ctx context.Context, title string, publishingYear int, poster *string) (models.Movie, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Movie, error)
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, limit, offset int) ([]models.Movie, error)
	Update(ctx context.Context, id uuid.UUID, upd models.MovieUpdate) (models.Movie, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
