package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisStore "github.com/samuelarogbonlo/tata-pay/internal/adapter/storage/redis"
)

func newRateLimitedRouter(t *testing.T, rule RateLimitRule) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	store := redisStore.NewRateLimitStore(client)

	r := gin.New()
	r.POST("/deposit", RateLimiter(store, "deposits", rule, zerolog.Nop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, mr
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	r, _ := newRateLimitedRouter(t, RateLimitRule{Limit: 3, Window: time.Minute})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/deposit", nil))
		require.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	r, _ := newRateLimitedRouter(t, RateLimitRule{Limit: 2, Window: time.Minute})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/deposit", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/deposit", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_001")
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimiter_DegradedModeAllows(t *testing.T) {
	r, mr := newRateLimitedRouter(t, RateLimitRule{Limit: 1, Window: time.Minute})
	mr.Close()

	// With the store unreachable requests pass through without headers.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/deposit", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}

func TestRateLimiter_KeyedByAccount(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	store := redisStore.NewRateLimitStore(client)

	rule := RateLimitRule{Limit: 1, Window: time.Minute}
	r := gin.New()
	r.POST("/deposit", func(c *gin.Context) {
		c.Set(CtxAccountID, c.GetHeader("X-Test-Account"))
	}, RateLimiter(store, "deposits", rule, zerolog.Nop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func(account string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/deposit", nil)
		req.Header.Set("X-Test-Account", account)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("alice"))
	assert.Equal(t, http.StatusTooManyRequests, send("alice"))
	// A different account has its own counter.
	assert.Equal(t, http.StatusOK, send("bob"))
}

func TestDefaultRateLimitRules(t *testing.T) {
	rules := DefaultRateLimitRules()
	for _, group := range []string{"auth_login", "auth_register", "deposits", "batches", "claims", "votes", "governance", "read"} {
		rule, ok := rules[group]
		require.True(t, ok, "missing rule for %s", group)
		assert.Positive(t, rule.Limit)
		assert.Positive(t, rule.Window)
	}
}
