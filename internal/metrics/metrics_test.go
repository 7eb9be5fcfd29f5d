package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New(false)

	m.ReportsRendered.WithLabelValues("html").Inc()
	m.ReportsRendered.WithLabelValues("html").Inc()
	m.ReportsRendered.WithLabelValues("pdf").Inc()
	m.StatsComputed.Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReportsRendered.WithLabelValues("html")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportsRendered.WithLabelValues("pdf")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StatsComputed))
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New(false)

	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/projects/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for _, path := range []string{"/projects/a", "/projects/b", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/projects/:id", "GET", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("unmatched", "GET", "404")))
}

func TestHandler(t *testing.T) {
	m := New(true)
	m.LoginLinksIssued.Inc()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "risk_assessment_auth_login_links_issued_total 1"))
	assert.Contains(t, body, "go_goroutines")
}
