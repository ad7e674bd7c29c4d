package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-space/core/internal/pkg/response"
	"github.com/redis/go-redis/v9"
)

const (
	idempotenceHeader = "x-idempotence"
	idempotenceTTL    = time.Minute
	idempotencePrefix = "portfolio:idempotence:"

	pendingMark = "pending"
	doneMark    = "done"
)

// Idempotence rejects a POST or PUT that repeats one seen in the last minute,
// so a double-clicked contact form does not send two messages.
//
// The key is the x-idempotence header. Without headerOnly a request lacking the
// header is keyed by a hash of its method, URL, body, client IP and user agent.
// A failed request releases its key. It is a no-op without redis.
func Idempotence(rdb *redis.Client, headerOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || (c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut) {
			c.Next()
			return
		}
		key := c.GetHeader(idempotenceHeader)
		if key != "" {
			key = c.Request.URL.Path + ":" + key
		} else if !headerOnly {
			key = fingerprint(c)
		}
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		redisKey := idempotencePrefix + key
		claimed, err := rdb.SetNX(ctx, redisKey, pendingMark, idempotenceTTL).Result()
		if err != nil {
			c.Next()
			return
		}
		if !claimed {
			msg := "This request was already processed. Wait a minute before sending it again."
			if rdb.Get(ctx, redisKey).Val() == pendingMark {
				msg = "An identical request is still being processed."
			}
			response.Conflict(c, msg)
			return
		}

		c.Next()

		if s := c.Writer.Status(); s >= 200 && s < 300 {
			rdb.SetArgs(ctx, redisKey, doneMark, redis.SetArgs{KeepTTL: true})
		} else {
			rdb.Del(ctx, redisKey)
		}
	}
}

func fingerprint(c *gin.Context) string {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	h := sha256.New()
	for _, part := range []string{c.Request.Method, c.Request.URL.String(), c.ClientIP(), c.Request.UserAgent()} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
