// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/movievault/movievault/internal/server/models"
	serr "github.com/movievault/movievault/internal/shared/errors"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

// userKey — ключ контекста, под которым хранится аутентифицированный пользователь.
const userKey ctxKey = "user"

// Identity — идентичность, которую гейт прикрепляет к запросу.
type Identity struct {
	ID    uuid.UUID
	Email string
}

// UserResolver — минимум, который гейту нужен от хранилища пользователей.
type UserResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
}

// AuthGate инкапсулирует проверку bearer-токена на защищённых маршрутах.
//
// Гейт:
//   - проверяет подпись и срок жизни токена (HS256)
//   - валидирует issuer и audience (если заданы)
//   - перечитывает субъект токена из БД на КАЖДЫЙ запрос —
//     удалённый аккаунт перестаёт проходить сразу, без ожидания
//     истечения токена (платим за это одним SELECT на запрос)
//
// Состояние между запросами не хранится.
type AuthGate struct {
	SigningKey string // симметричный ключ для подписи (HS256)
	Issuer     string // ожидаемый issuer (опционально)
	Audience   string // ожидаемая audience (опционально)

	Users UserResolver
}

// NewAuthGate создаёт новый AuthGate с заданными параметрами.
func NewAuthGate(signingKey, issuer, audience string, users UserResolver) *AuthGate {
	return &AuthGate{SigningKey: signingKey, Issuer: issuer, Audience: audience, Users: users}
}

// UserFromContext извлекает идентичность аутентифицированного пользователя из контекста.
//
// Возвращает:
//   - Identity
//   - false, если пользователь не аутентифицирован
func UserFromContext(ctx context.Context) (Identity, bool) {
	v := ctx.Value(userKey)
	id, ok := v.(Identity)
	return id, ok
}

// ContextWithUser кладёт идентичность в контекст (используется гейтом и тестами).
func ContextWithUser(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, userKey, id)
}

// AuthMiddleware возвращает HTTP middleware для защищённых маршрутов.
//
// Ответы:
//   - 401, если токен отсутствует;
//   - 403, если токен просрочен/не прошёл проверку или субъект удалён;
//   - 500, если не удалось перечитать пользователя из БД.
func (g *AuthGate) AuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := ExtractBearer(r.Header.Get("Authorization"))
			if tokenStr == "" {
				writeAuthError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
				return
			}

			claims := &jwt.RegisteredClaims{}

			parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
			_, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
				return []byte(g.SigningKey), nil
			})

			// просроченный и битый токен для клиента неразличимы
			if err != nil {
				writeAuthError(w, http.StatusForbidden, serr.ErrInvalidToken)
				return
			}

			if g.Issuer != "" && claims.Issuer != g.Issuer {
				writeAuthError(w, http.StatusForbidden, serr.ErrInvalidToken)
				return
			}

			if g.Audience != "" {
				ok := false
				for _, aud := range claims.Audience {
					if aud == g.Audience {
						ok = true
						break
					}
				}
				if !ok {
					writeAuthError(w, http.StatusForbidden, serr.ErrInvalidToken)
					return
				}
			}

			userID, err := uuid.Parse(strings.TrimSpace(claims.Subject))
			if err != nil {
				writeAuthError(w, http.StatusForbidden, serr.ErrInvalidToken)
				return
			}

			// перечитываем субъект из БД: токен мог пережить аккаунт
			user, err := g.Users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, serr.ErrNotFound) {
					writeAuthError(w, http.StatusForbidden, serr.ErrUnknownSubject)
					return
				}
				writeAuthError(w, http.StatusInternalServerError, serr.ErrInternal)
				return
			}

			ctx := ContextWithUser(r.Context(), Identity{ID: user.ID, Email: user.Email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractBearer извлекает JWT из заголовка Authorization.
//
// Ожидаемый формат:
//
//	Authorization: Bearer <token>
//
// Возвращает пустую строку, если формат некорректен.
func ExtractBearer(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// writeAuthError отдаёт ошибку гейта в том же JSON-формате, что и api слой.
func writeAuthError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
