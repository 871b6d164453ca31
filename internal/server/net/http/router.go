// Package http реализует маршрутизацию HTTP-слоя сервера MovieVault.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - сквозные middleware: логирование, CORS, перехват паник;
//   - раздачу загруженных постеров статикой;
//   - единые JSON-ответы для незнакомых маршрутов.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/movievault/movievault/internal/server/api"
	"github.com/movievault/movievault/internal/server/middleware"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - middleware логирования, CORS и recover для всех запросов;
//   - публичные эндпоинты аутентификации под префиксом /api/auth;
//   - группу защищённых JWT эндпоинтов /api/movies;
//   - статику постеров под /uploads;
//   - JSON-ответ 404 вместо дефолта фреймворка.
func NewRouter(h *api.Handler) http.Handler {
	r := chi.NewRouter()
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware())
	// перехват паник: общий 500, детали только вне prod
	r.Use(middleware.RecoverMiddleware(h.Log, h.Env))
	// фронтенд живёт на другом origin — политика разрешающая
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// статика загруженных постеров
	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(h.Posters.Dir())),
	))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		// Публичные пути
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})

		// защищённые пути
		r.Group(func(r chi.Router) {
			// проверка access токена + перечитывание субъекта из БД
			r.Use(h.Gate.AuthMiddleware())
			// CRUD запросы для фильмов
			r.Route("/movies", func(r chi.Router) {
				r.Get("/", h.ListMovies)          // список с пагинацией
				r.Post("/", h.CreateMovie)        // создание фильма
				r.Get("/{id}", h.GetMovie)        // один фильм
				r.Patch("/{id}", h.UpdateMovie)   // partial update
				r.Delete("/{id}", h.DeleteMovie)  // удаление
			})
		})
	})

	// незнакомый путь и незнакомый метод отвечают одинаково
	r.NotFound(routeNotFound)
	r.MethodNotAllowed(routeNotFound)

	return r
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]string{"message": "Route not found"})
}
