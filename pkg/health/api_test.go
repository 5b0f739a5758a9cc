package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dariofm/flightdeck/pkg/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthGet(t *testing.T) {
	t.Run("reports healthy", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
		w := httptest.NewRecorder()

		health.HealthGet()(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var resp health.HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp.Status)
		assert.NotEmpty(t, resp.Uptime)
		assert.NotEmpty(t, resp.GoVersion)
	})

	t.Run("rejects non-GET methods", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/v1/health", nil)
		w := httptest.NewRecorder()

		health.HealthGet()(w, r)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
