package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"yelagiri_booking/internal/infrastructure/telemetry"
	"yelagiri_booking/pkg"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"

	idempotencyLockTTL = 30 * time.Second
)

// idempotencyStore is the subset of *redis.Client the middleware uses.
type idempotencyStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Idempotency replays the stored response of a previous request carrying
// the same Idempotency-Key. Requests without the header, or with a nil
// client, pass straight through. Only 2xx responses are stored, so a failed
// attempt can be retried with the same key.
func Idempotency(client *redis.Client, ttl time.Duration) gin.HandlerFunc {
	if client == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return idempotency(client, ttl)
}

func idempotency(store idempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := fmt.Sprintf("idempotency:%s:%s", c.FullPath(), key)

		cached, err := store.Get(ctx, cacheKey).Bytes()
		switch {
		case err == nil:
			var resp cachedResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				c.Header(HeaderReplayed, "true")
				c.Data(resp.Status, resp.ContentType, resp.Body)
				c.Abort()
				return
			}
		case !errors.Is(err, redis.Nil):
			telemetry.Logger.Warn("[idempotency] cache unavailable, passing through", zap.Error(err))
			c.Next()
			return
		}

		lockKey := cacheKey + ":lock"
		acquired, err := store.SetNX(ctx, lockKey, 1, idempotencyLockTTL).Result()
		if err != nil {
			telemetry.Logger.Warn("[idempotency] lock unavailable, passing through", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			appErr := pkg.NewDomainErrorSimple("IDEMPOTENCY_IN_PROGRESS", "A request with this Idempotency-Key is in progress", http.StatusConflict)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		defer store.Del(context.WithoutCancel(ctx), lockKey)

		rec := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		status := rec.Status()
		if status < 200 || status >= 300 {
			return
		}
		payload, err := json.Marshal(cachedResponse{
			Status:      status,
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.body.Bytes(),
		})
		if err != nil {
			return
		}
		if err := store.Set(context.WithoutCancel(ctx), cacheKey, payload, ttl).Err(); err != nil {
			telemetry.Logger.Warn("[idempotency] storing response failed", zap.String("key", key), zap.Error(err))
		}
	}
}

type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
