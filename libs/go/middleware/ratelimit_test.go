package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRateLimitedRouter(rl *RateLimiter, pre ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(pre...)
	router.Use(rl.Middleware())
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) }
	router.GET("/test", ok)
	router.GET("/health", ok)
	router.GET("/metrics", ok)
	return router
}

func doRequest(router http.Handler, path, forwardedFor string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("allows requests within burst", func(t *testing.T) {
		rl := NewRateLimiter(10, 20)
		defer rl.Stop()
		router := newRateLimitedRouter(rl)

		for i := 0; i < 10; i++ {
			w := doRequest(router, "/test", "192.168.1.1")
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "10", w.Header().Get("X-RateLimit-Limit"))
			assert.NotEmpty(t, w.Header().Get("X-RateLimit-Remaining"))
		}
	})

	t.Run("blocks requests past burst", func(t *testing.T) {
		rl := NewRateLimiter(1, 2)
		defer rl.Stop()
		router := newRateLimitedRouter(rl)

		var last *httptest.ResponseRecorder
		for i := 0; i < 3; i++ {
			last = doRequest(router, "/test", "192.168.1.2")
		}
		assert.Equal(t, http.StatusTooManyRequests, last.Code)
		assert.Equal(t, "1", last.Header().Get("Retry-After"))
	})

	t.Run("clients have separate buckets", func(t *testing.T) {
		rl := NewRateLimiter(1, 1)
		defer rl.Stop()
		router := newRateLimitedRouter(rl)

		assert.Equal(t, http.StatusOK, doRequest(router, "/test", "192.168.1.3").Code)
		assert.Equal(t, http.StatusOK, doRequest(router, "/test", "192.168.1.4").Code)
		assert.Equal(t, http.StatusTooManyRequests, doRequest(router, "/test", "192.168.1.3").Code)
	})

	t.Run("verified signers are keyed by address", func(t *testing.T) {
		rl := NewRateLimiter(1, 1)
		defer rl.Stop()
		signer := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
		router := newRateLimitedRouter(rl, func(c *gin.Context) {
			if c.GetHeader("X-Test-Signed") != "" {
				c.Set(signerKey, signer)
			}
		})

		signed := func() int {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("X-Test-Signed", "1")
			req.Header.Set("X-Forwarded-For", "10.0.0.1")
			router.ServeHTTP(w, req)
			return w.Code
		}
		assert.Equal(t, http.StatusOK, signed())
		// same IP, unsigned: separate bucket
		assert.Equal(t, http.StatusOK, doRequest(router, "/test", "10.0.0.1").Code)
		assert.Equal(t, http.StatusTooManyRequests, signed())
	})

	t.Run("health and metrics bypass limits", func(t *testing.T) {
		rl := NewRateLimiter(1, 1)
		defer rl.Stop()
		router := newRateLimitedRouter(rl)

		for i := 0; i < 10; i++ {
			assert.Equal(t, http.StatusOK, doRequest(router, "/health", "").Code)
			assert.Equal(t, http.StatusOK, doRequest(router, "/metrics", "").Code)
		}
	})

	t.Run("concurrent requests", func(t *testing.T) {
		rl := NewRateLimiter(10, 20)
		defer rl.Stop()
		router := newRateLimitedRouter(rl)

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			ok      int
			limited int
		)
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				code := doRequest(router, "/test", "192.168.1.100").Code
				mu.Lock()
				defer mu.Unlock()
				switch code {
				case http.StatusOK:
					ok++
				case http.StatusTooManyRequests:
					limited++
				}
			}()
		}
		wg.Wait()

		assert.GreaterOrEqual(t, ok, 20)
		assert.Greater(t, limited, 0)
		assert.Equal(t, 50, ok+limited)
	})
}

func TestRateLimiter_Sweep(t *testing.T) {
	rl := &RateLimiter{rate: 10, burst: 20, stop: make(chan struct{})}
	defer rl.Stop()

	rl.limiterFor("recent")
	rl.limiters.Store("idle", &limiterEntry{seen: time.Now().Add(-15 * time.Minute)})
	go rl.sweep(20 * time.Millisecond)

	assert.Eventually(t, func() bool {
		_, exists := rl.limiters.Load("idle")
		return !exists
	}, time.Second, 10*time.Millisecond)

	_, exists := rl.limiters.Load("recent")
	assert.True(t, exists)
}
