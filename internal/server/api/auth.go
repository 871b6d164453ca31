// HTTP-хендлеры регистрации и логина
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	serr "github.com/movievault/movievault/internal/shared/errors"
)

// RegisterRequest описывает тело запроса регистрации пользователя.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse описывает успешный ответ регистрации.
type RegisterResponse struct {
	UserID string `json:"user_id"`
}

// LoginRequest описывает тело запроса входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserPayload — данные пользователя в ответе логина.
type UserPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// LoginResponse описывает успешный ответ входа пользователя.
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserPayload `json:"user"`
}

// Register обрабатывает регистрацию пользователя.
//
// Ответы:
//   - 201 Created: регистрация успешна;
//   - 400 Bad Request: неверный JSON или невалидные входные данные;
//   - 409 Conflict: пользователь уже существует;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Register
// @Description  Creates a new user account.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Register request"
// @Success      201 {object} RegisterResponse
// @Failure      400 {object} ErrorResponse "Invalid input or bad JSON"
// @Failure      409 {object} ErrorResponse "Email already registered"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	id, err := h.Svc.Auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		case errors.Is(err, serr.ErrAlreadyExists):
			WriteError(w, http.StatusConflict, serr.ErrAlreadyExists)
		default:
			h.Log.Logger.Sugar().Errorw("register failed", "error", err)
			h.writeInternal(w, err)
		}
		return
	}

	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(RegisterResponse{UserID: id.String()})
}

// Login обрабатывает вход пользователя и выдачу access-токена.
//
// Ответы:
//   - 200 OK: успешный вход;
//   - 400 Bad Request: неверный JSON или невалидные входные данные;
//   - 401 Unauthorized: неверные учётные данные;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Login
// @Description  Authenticates a user and returns a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login request"
// @Success      200 {object} LoginResponse
// @Failure      400 {object} ErrorResponse "Invalid input or bad JSON"
// @Failure      401 {object} ErrorResponse "Invalid credentials"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
		return
	}

	token, userID, err := h.Svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrInvalidInput):
			WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		case errors.Is(err, serr.ErrInvalidCredentials):
			WriteError(w, http.StatusUnauthorized, serr.ErrInvalidCredentials)
		default:
			h.Log.Logger.Sugar().Errorw("login failed", "error", err)
			h.writeInternal(w, err)
		}
		return
	}

	w.Header().Set(ContentType, JsonContentType)
	json.NewEncoder(w).Encode(LoginResponse{
		Token: token,
		User: UserPayload{
			ID:    userID.String(),
			Email: req.Email,
		},
	})
}
