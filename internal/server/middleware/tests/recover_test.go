package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/movievault/movievault/internal/server/middleware"
	"github.com/movievault/movievault/internal/shared/logger"
)

func panicHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
}

// Паника превращается в 500; в dev детали уходят клиенту
func TestRecoverMiddleware_Dev_ExposesDetail(t *testing.T) {
	mw := middleware.RecoverMiddleware(logger.NewHTTPLogger(), "dev")
	handler := mw(panicHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/movies", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, "Something went wrong!", resp["message"])
	require.Equal(t, "boom", resp["error"])
}

// В prod детали паники клиенту не отдаются
func TestRecoverMiddleware_Prod_HidesDetail(t *testing.T) {
	mw := middleware.RecoverMiddleware(logger.NewHTTPLogger(), "prod")
	handler := mw(panicHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/movies", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Equal(t, "Something went wrong!", resp["message"])
	require.Empty(t, resp["error"])
}

// Без паники middleware прозрачен
func TestRecoverMiddleware_PassThrough(t *testing.T) {
	mw := middleware.RecoverMiddleware(logger.NewHTTPLogger(), "dev")
	handler := mw(testHandler(http.StatusOK, "ok"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok", rr.Body.String())
}
