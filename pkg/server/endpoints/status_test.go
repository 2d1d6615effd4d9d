package endpoints

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthcheckEndpoint(t *testing.T) {
	t.Run("reports ok when the database responds", func(t *testing.T) {
		srv, stores := newTestServer()

		stores.health.On("CheckConnectivity").Return(nil)

		req := httptest.NewRequest("GET", "/api/v1/healthcheck", nil)
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
	})

	t.Run("reports an error when the database is unreachable", func(t *testing.T) {
		srv, stores := newTestServer()

		stores.health.On("CheckConnectivity").Return(errors.New("connection refused"))

		req := httptest.NewRequest("GET", "/api/v1/healthcheck", nil)
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status": "error", "error": "database connectivity check failed"}`, w.Body.String())
	})
}
