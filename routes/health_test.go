package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"stickyboard/database"
	"stickyboard/testutils"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	t.Run("Database Unavailable", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/health", nil)
		c := testutils.GetTestGinContext(w, req)

		HealthCheck(c, &database.Database{})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("Database Reachable", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/health", nil)
		c := testutils.GetTestGinContext(w, req)

		HealthCheck(c, testutils.SetupSQLiteDB(t))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})
}
