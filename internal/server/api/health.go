package api

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthResponse — ответ liveness-эндпоинта.
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Health отдаёт состояние сервера.
//
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Router       /api/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(ContentType, JsonContentType)
	json.NewEncoder(w).Encode(HealthResponse{
		Status:    "OK",
		Message:   "Movie backend API is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
