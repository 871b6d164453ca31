package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/movievault/movievault/internal/server/config"
	"github.com/movievault/movievault/internal/server/crypto"
	serr "github.com/movievault/movievault/internal/shared/errors"
)

// AuthService реализует бизнес-логику аутентификации.
//
// Ответственность:
//   - регистрация пользователей
//   - аутентификация (логин) и выпуск access-токена
//   - создание демо-пользователя при старте сервера
type AuthService struct {
	users UsersRepo

	pass crypto.BcryptParams
	jwt  crypto.JWTConfig

	seed config.SeedConfig
}

// NewAuthService создаёт AuthService с зависимостями и настройками из конфига.
func NewAuthService(users UsersRepo, cfg *config.Config) *AuthService {
	return &AuthService{
		users: users,

		pass: crypto.BcryptParams{
			Cost: cfg.Password.Bcrypt.Cost,
		},
		jwt: crypto.JWTConfig{
			Issuer:     cfg.Auth.Issuer,
			Audience:   cfg.Auth.Audience,
			SigningKey: cfg.Auth.JWT.SigningKey,
			AccessTTL:  cfg.Auth.AccessTTL,
		},

		seed: cfg.Auth.Seed,
	}
}

// Register регистрирует нового пользователя.
//
// Валидация:
//   - email обязателен и должен быть валидным
//   - пароль обязателен и длиной >= 8 символов
//
// Возвращает:
//   - id пользователя
//   - ErrInvalidInput при некорректных данных или ErrAlreadyExists если email уже зарегистрирован
func (s *AuthService) Register(ctx context.Context, email, password string) (uuid.UUID, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)

	if email == "" || password == "" || !regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`).MatchString(email) || len(password) < 8 {
		return uuid.Nil, serr.ErrInvalidInput
	}

	hash, err := crypto.HashPassword(password, s.pass)
	if err != nil {
		return uuid.Nil, serr.ErrInternal
	}
	return s.users.Create(ctx, email, hash)
}

// Login аутентифицирует пользователя и выдаёт access-токен.
//
// Поведение:
//   - не раскрывает факт существования email
//   - subject токена — id пользователя
//
// Ошибки:
//   - ErrInvalidInput
//   - ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, email, password string) (string, uuid.UUID, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return "", uuid.Nil, serr.ErrInvalidInput
	}
	// получаем юзера по email
	userID, hash, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// не палим существование email
		if errors.Is(err, serr.ErrNotFound) {
			return "", uuid.Nil, serr.ErrInvalidCredentials
		}
		return "", uuid.Nil, err
	}
	// проверяем пароль
	ok, err := crypto.VerifyPassword(password, hash)
	if err != nil {
		return "", uuid.Nil, serr.ErrInternal
	}
	if !ok {
		return "", uuid.Nil, serr.ErrInvalidCredentials
	}
	// создаём access токен
	access, err := crypto.NewAccessToken(userID.String(), s.jwt)
	if err != nil {
		return "", uuid.Nil, serr.ErrInternal
	}

	return access, userID, nil
}

// EnsureSeedUser создаёт демо-пользователя из конфига, если его ещё нет.
//
// Вызывается один раз при старте сервера. Повторный запуск ничего
// не меняет: существующий аккаунт остаётся как есть.
//
// Возвращает true, если пользователь был создан этим вызовом.
func (s *AuthService) EnsureSeedUser(ctx context.Context) (bool, error) {
	if !s.seed.Enabled {
		return false, nil
	}

	email := strings.TrimSpace(strings.ToLower(s.seed.Email))

	_, _, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, serr.ErrNotFound) {
		return false, err
	}

	hash, err := crypto.HashPassword(s.seed.Password, s.pass)
	if err != nil {
		return false, serr.ErrInternal
	}

	if _, err := s.users.Create(ctx, email, hash); err != nil {
		// параллельный старт мог успеть создать пользователя первым
		if errors.Is(err, serr.ErrAlreadyExists) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
