package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/solvely-pub/internal/config"
	"github.com/iliyamo/solvely-pub/internal/logging"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func newCachedEcho(rdb *redis.Client, calls *int) *echo.Echo {
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}, TTL: time.Minute, Prefix: "cache", MaxBodyBytes: 1 << 16}
	e := echo.New()
	e.Use(logging.RequestLogger(zerolog.Nop()))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: []string{"*"}}))
	e.GET("/api/version", func(c echo.Context) error {
		*calls++
		return c.JSON(http.StatusOK, echo.Map{"data": "1.0.0"})
	}, NewRedisCache(cfg, rdb))
	return e
}

func getWithOrigin(e *echo.Echo) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	req.Header.Set(echo.HeaderOrigin, "https://app.example")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRedisCache_HitReplaysBodyWithoutDuplicateHeaders(t *testing.T) {
	_, rdb := newRedis(t)
	calls := 0
	e := newCachedEcho(rdb, &calls)

	miss := getWithOrigin(e)
	require.Equal(t, http.StatusOK, miss.Code)
	assert.Equal(t, "MISS", miss.Header().Get("X-Cache"))

	hit := getWithOrigin(e)
	require.Equal(t, http.StatusOK, hit.Code)
	assert.Equal(t, "HIT", hit.Header().Get("X-Cache"))
	assert.Equal(t, 1, calls)
	assert.JSONEq(t, miss.Body.String(), hit.Body.String())

	assert.Equal(t, []string{"*"}, hit.Header().Values(echo.HeaderAccessControlAllowOrigin))
	assert.Len(t, hit.Header().Values(echo.HeaderXRequestID), 1)
	assert.NotEqual(t, miss.Header().Get(echo.HeaderXRequestID), hit.Header().Get(echo.HeaderXRequestID))
	assert.Len(t, hit.Header().Values(echo.HeaderVary), len(miss.Header().Values(echo.HeaderVary)))
	assert.Equal(t, []string{echo.MIMEApplicationJSON}, hit.Header().Values(echo.HeaderContentType))
}

func TestRedisCache_StoresEntityHeadersOnly(t *testing.T) {
	mr, rdb := newRedis(t)
	calls := 0
	e := newCachedEcho(rdb, &calls)
	getWithOrigin(e)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	raw, err := mr.Get(keys[0])
	require.NoError(t, err)

	_, hdr, _, ok := decodeCached([]byte(raw))
	require.True(t, ok)
	assert.Equal(t, echo.MIMEApplicationJSON, hdr.Get(echo.HeaderContentType))
	assert.Empty(t, hdr.Get(echo.HeaderXRequestID))
	assert.Empty(t, hdr.Get(echo.HeaderAccessControlAllowOrigin))
	assert.Empty(t, hdr.Get(echo.HeaderVary))
	assert.Empty(t, hdr.Get("X-Cache"))
}

func TestRedisCache_Expires(t *testing.T) {
	mr, rdb := newRedis(t)
	calls := 0
	e := newCachedEcho(rdb, &calls)

	getWithOrigin(e)
	mr.FastForward(2 * time.Minute)
	rec := getWithOrigin(e)

	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, 2, calls)
}

func TestTokenBucket_Redis(t *testing.T) {
	mr, rdb := newRedis(t)
	cfg := testLimitConfig()
	e := echo.New()
	e.POST("/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, NewTokenBucket(cfg, rdb))

	post := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		return rec
	}

	first := post()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusOK, post().Code)

	blocked := post()
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "1", blocked.Header().Get("Retry-After"))
	assert.Contains(t, blocked.Body.String(), `"statuscode":429`)

	key := "rl:ip:192.0.2.1:route:POST /login"
	assert.True(t, mr.Exists(key))
	assert.Greater(t, mr.TTL(key), time.Duration(0))
}

func TestTokenBucket_RedisDownAllows(t *testing.T) {
	mr, rdb := newRedis(t)
	mr.Close()

	e := echo.New()
	e.POST("/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, NewTokenBucket(testLimitConfig(), rdb))
	for i := 0; i < 4; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
