package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHandlerExposesRequests(t *testing.T) {
	reg := NewRegistry()
	m := New(reg)
	m.IncrementRequest("/recalls", http.StatusCreated)
	m.IncrementRequest("/recalls", http.StatusConflict)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/recalls", "4xx")))

	rr := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "recallguard_http_requests_total")
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}
