package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu      sync.Mutex
	data    map[string]string
	ttls    map[string]time.Duration
	failGet bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (s *memoryStore) Get(_ context.Context, key string) *redis.StringCmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet {
		return redis.NewStringResult("", errors.New("connection refused"))
	}
	v, ok := s.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (s *memoryStore) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = string(value.([]byte))
	s.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (s *memoryStore) SetNX(_ context.Context, key string, _ interface{}, _ time.Duration) *redis.BoolCmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	s.data[key] = "1"
	return redis.NewBoolResult(true, nil)
}

func (s *memoryStore) Del(_ context.Context, keys ...string) *redis.IntCmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func newIdempotentRouter(store idempotencyStore, status int, calls *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/bookings", idempotency(store, time.Hour), func(c *gin.Context) {
		*calls++
		c.JSON(status, gin.H{"call": *calls})
	})
	return r
}

func post(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", nil)
	if key != "" {
		req.Header.Set(HeaderIdempotencyKey, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysSuccessfulResponse(t *testing.T) {
	store := newMemoryStore()
	calls := 0
	r := newIdempotentRouter(store, http.StatusCreated, &calls)

	first := post(r, "k-1")
	second := post(r, "k-1")

	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(HeaderReplayed))
	assert.Equal(t, time.Hour, store.ttls["idempotency:/v1/bookings:k-1"])
	_, locked := store.data["idempotency:/v1/bookings:k-1:lock"]
	assert.False(t, locked)

	post(r, "k-2")
	assert.Equal(t, 2, calls)
}

func TestIdempotency_WithoutKeyPassesThrough(t *testing.T) {
	calls := 0
	r := newIdempotentRouter(newMemoryStore(), http.StatusCreated, &calls)

	post(r, "")
	post(r, "")
	assert.Equal(t, 2, calls)
}

func TestIdempotency_FailuresAreNotStored(t *testing.T) {
	store := newMemoryStore()
	calls := 0
	r := newIdempotentRouter(store, http.StatusBadRequest, &calls)

	post(r, "k-1")
	w := post(r, "k-1")
	assert.Equal(t, 2, calls)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, w.Header().Get(HeaderReplayed))
}

func TestIdempotency_InFlightRequestConflicts(t *testing.T) {
	store := newMemoryStore()
	store.data["idempotency:/v1/bookings:k-1:lock"] = "1"
	calls := 0
	r := newIdempotentRouter(store, http.StatusCreated, &calls)

	w := post(r, "k-1")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 0, calls)
}

func TestIdempotency_CacheDownFailsOpen(t *testing.T) {
	store := newMemoryStore()
	store.failGet = true
	calls := 0
	r := newIdempotentRouter(store, http.StatusCreated, &calls)

	w := post(r, "k-1")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, calls)
}

func TestIdempotency_NilClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	calls := 0
	r := gin.New()
	r.POST("/v1/bookings", Idempotency(nil, time.Hour), func(c *gin.Context) {
		calls++
		c.Status(http.StatusNoContent)
	})

	post(r, "k-1")
	post(r, "k-1")
	assert.Equal(t, 2, calls)
}
