package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/movievault/movievault/internal/shared/logger"
)

// RecoverMiddleware перехватывает паники хендлеров и отдаёт общий 500.
//
// Детали ошибки логируются всегда, а клиенту отдаются только вне
// prod-режима (env != "prod").
func RecoverMiddleware(log *logger.HTTPLogger, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				log.Sugar().Errorw("panic recovered",
					"error", rec,
					"method", r.Method,
					"uri", r.RequestURI,
				)

				resp := map[string]string{"message": "Something went wrong!"}
				if env != "prod" {
					resp["error"] = fmt.Sprintf("%v", rec)
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(resp)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
