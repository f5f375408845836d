package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guardian/guardian-api/libs/go/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLoggingMiddleware_RecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	indicators := metrics.NewPromIndicators(reg)

	router := gin.New()
	router.Use(CorrelationIDMiddleware(), RequestLoggingMiddleware(indicators, true))
	router.GET("/api/v1/accounts/:account/executors", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": []string{}})
	})

	for _, account := range []string{"0x01", "0x02"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/"+account+"/executors", nil)
		req.Header.Set("X-Guardian-Signature", "0xdeadbeef")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	families, err := reg.Gather()
	require.NoError(t, err)
	var routes []string
	for _, mf := range families {
		if !strings.Contains(mf.GetName(), "http_request") {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "route" {
					routes = append(routes, l.GetValue())
				}
			}
		}
	}
	assert.ElementsMatch(t, []string{"/api/v1/accounts/:account/executors", "unmatched"}, routes)
}

func TestRequestLoggingMiddleware_NilIndicators(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLoggingMiddleware(nil, false))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoggableHeaders_Redacts(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("X-Guardian-Signature", "0xdead")
	c.Request.Header.Set("X-Guardian-Address", "0xabc")

	headers := loggableHeaders(c)
	assert.Equal(t, "[REDACTED]", headers["X-Guardian-Signature"])
	assert.Equal(t, "0xabc", headers["X-Guardian-Address"])
}
