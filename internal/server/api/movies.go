// HTTP-хендлеры CRUD по фильмам
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/movievault/movievault/internal/server/middleware"
	"github.com/movievault/movievault/internal/server/service"
	serr "github.com/movievault/movievault/internal/shared/errors"
)

// Дефолты пагинации списка фильмов.
const (
	defaultPage  = 1
	defaultLimit = 8
)

// память под multipart-форму; остальное уходит во временные файлы
const multipartMaxMemory = 10 << 20

// DeleteMovieResponse — ответ удаления фильма.
type DeleteMovieResponse struct {
	Message string `json:"message"`
}

// queryInt разбирает числовой query-параметр.
//
// Нечисловое значение и ноль заменяются дефолтом, отрицательные и
// сколь угодно большие значения проходят как есть — верхних границ
// у page/limit нет.
func queryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(name)))
	if err != nil || v == 0 {
		return def
	}
	return v
}

// parseMovieForm разбирает форму create/update.
// Принимает multipart (с постером) и обычный urlencoded (без него).
func parseMovieForm(r *http.Request) error {
	err := r.ParseMultipartForm(multipartMaxMemory)
	if err == nil {
		return nil
	}
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

// formLookup возвращает значение поля формы или nil, если поле не передавалось.
// Отличие от FormValue: пустая строка и отсутствие поля различимы.
func formLookup(r *http.Request, name string) *string {
	var vals []string
	if r.MultipartForm != nil {
		vals = r.MultipartForm.Value[name]
	}
	if vals == nil {
		vals = r.PostForm[name]
	}
	if len(vals) == 0 {
		return nil
	}
	return &vals[0]
}

// savePoster сохраняет постер из формы, если он был передан.
// Возвращает nil-путь, когда файла в форме нет.
func (h *Handler) savePoster(r *http.Request) (*string, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File["poster"]) == 0 {
		return nil, nil
	}

	path, err := h.Posters.Save(r.MultipartForm.File["poster"][0])
	if err != nil {
		return nil, err
	}
	return &path, nil
}

// identity достаёт пользователя из контекста; false — запрос не прошёл гейт.
func identity(w http.ResponseWriter, r *http.Request) (middleware.Identity, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
	}
	return user, ok
}

// ListMovies возвращает страницу фильмов с блоком пагинации.
//
// page (default 1) и limit (default 8) берутся из query-параметров
// и не ограничиваются сверху.
//
// @Summary      List movies
// @Description  Returns movies ordered by creation time (newest first) with pagination info.
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page number (default 1)"
// @Param        limit query int false "Items per page (default 8)"
// @Success      200 {object} models.MovieList
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/movies [get]
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	if _, ok := identity(w, r); !ok {
		return
	}

	page := queryInt(r, "page", defaultPage)
	limit := queryInt(r, "limit", defaultLimit)

	list, err := h.Svc.Movies.List(r.Context(), page, limit)
	if err != nil {
		h.Log.Logger.Sugar().Errorw("list movies failed", "error", err)
		h.writeInternal(w, err)
		return
	}

	w.Header().Set(ContentType, JsonContentType)
	json.NewEncoder(w).Encode(list)
}

// GetMovie возвращает один фильм по id.
//
// Некорректный id неотличим от несуществующего — в обоих случаях 404.
//
// @Summary      Get movie
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Movie ID (UUID)"
// @Success      200 {object} models.Movie
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "Movie not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/movies/{id} [get]
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	if _, ok := identity(w, r); !ok {
		return
	}

	movieID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		return
	}

	movie, err := h.Svc.Movies.Get(r.Context(), movieID)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			WriteError(w, http.StatusNotFound, serr.ErrNotFound)
			return
		}
		h.Log.Logger.Sugar().Errorw("get movie failed", "error", err, "movie_id", movieID.String())
		h.writeInternal(w, err)
		return
	}

	w.Header().Set(ContentType, JsonContentType)
	json.NewEncoder(w).Encode(movie)
}

// CreateMovie создаёт новый фильм.
//
// Форма: title, publishingYear, опциональный файл poster.
// Ошибки валидации собираются по всем полям и отдаются одним ответом.
//
// @Summary      Create movie
// @Description  Creates a movie from a multipart form with an optional poster image.
// @Tags         movies
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        title          formData string true  "Movie title"
// @Param        publishingYear formData int    true  "Publishing year"
// @Param        poster         formData file   false "Poster image (jpeg/jpg/png/gif, up to 5MB)"
// @Success      201 {object} models.Movie
// @Failure      400 {object} ErrorResponse "Validation failed"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/movies [post]
func (h *Handler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	if _, ok := identity(w, r); !ok {
		return
	}

	if err := parseMovieForm(r); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		return
	}

	poster, err := h.savePoster(r)
	if err != nil {
		if errors.Is(err, serr.ErrBadUpload) {
			WriteValidationError(w, map[string]string{"poster": serr.ErrBadUpload.Error()})
			return
		}
		h.Log.Logger.Sugar().Errorw("save poster failed", "error", err)
		h.writeInternal(w, err)
		return
	}

	movie, err := h.Svc.Movies.Create(r.Context(), r.FormValue("title"), r.FormValue("publishingYear"), poster)
	if err != nil {
		var ve *serr.ValidationError
		switch {
		case errors.As(err, &ve):
			WriteValidationError(w, ve.Fields)
		default:
			h.Log.Logger.Sugar().Errorw("create movie failed", "error", err)
			h.writeInternal(w, err)
		}
		return
	}

	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(movie)
}

// UpdateMovie выполняет partial update фильма.
//
// Меняются только переданные поля; не переданные остаются как есть.
// Запрос без единого известного поля — 400.
//
// @Summary      Update movie
// @Description  Partially updates a movie: only supplied form fields are changed.
// @Tags         movies
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id             path     string true  "Movie ID (UUID)"
// @Param        title          formData string false "Movie title"
// @Param        publishingYear formData int    false "Publishing year"
// @Param        poster         formData file   false "Poster image"
// @Success      200 {object} models.Movie
// @Failure      400 {object} ErrorResponse "Validation failed or no fields"
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "Movie not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/movies/{id} [patch]
func (h *Handler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	if _, ok := identity(w, r); !ok {
		return
	}

	movieID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		return
	}

	if err := parseMovieForm(r); err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		return
	}

	poster, err := h.savePoster(r)
	if err != nil {
		if errors.Is(err, serr.ErrBadUpload) {
			WriteValidationError(w, map[string]string{"poster": serr.ErrBadUpload.Error()})
			return
		}
		h.Log.Logger.Sugar().Errorw("save poster failed", "error", err)
		h.writeInternal(w, err)
		return
	}

	movie, err := h.Svc.Movies.Update(r.Context(), movieID, service.MovieUpdateInput{
		Title:          formLookup(r, "title"),
		PublishingYear: formLookup(r, "publishingYear"),
		Poster:         poster,
	})
	if err != nil {
		var ve *serr.ValidationError
		switch {
		case errors.Is(err, serr.ErrNoFields):
			WriteError(w, http.StatusBadRequest, serr.ErrNoFields)
		case errors.As(err, &ve):
			WriteValidationError(w, ve.Fields)
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		default:
			h.Log.Logger.Sugar().Errorw("update movie failed", "error", err, "movie_id", movieID.String())
			h.writeInternal(w, err)
		}
		return
	}

	w.Header().Set(ContentType, JsonContentType)
	json.NewEncoder(w).Encode(movie)
}

// DeleteMovie удаляет фильм по id.
//
// Повторное удаление того же id отдаёт 404 — подтверждение получает
// только тот, кто реально удалил запись.
//
// @Summary      Delete movie
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Movie ID (UUID)"
// @Success      200 {object} DeleteMovieResponse
// @Failure      401 {object} ErrorResponse "Unauthorized"
// @Failure      404 {object} ErrorResponse "Movie not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/movies/{id} [delete]
func (h *Handler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	if _, ok := identity(w, r); !ok {
		return
	}

	movieID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		return
	}

	if err := h.Svc.Movies.Delete(r.Context(), movieID); err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			WriteError(w, http.StatusNotFound, serr.ErrNotFound)
			return
		}
		h.Log.Logger.Sugar().Errorw("delete movie failed", "error", err, "movie_id", movieID.String())
		h.writeInternal(w, err)
		return
	}

	w.Header().Set(ContentType, JsonContentType)
	json.NewEncoder(w).Encode(DeleteMovieResponse{Message: "Movie deleted successfully"})
}
