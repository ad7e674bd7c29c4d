package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// APICachePrefix namespaces cached API responses in redis.
const APICachePrefix = "portfolio:api-cache:"

const (
	defaultCacheTTL     = 15 * time.Second
	defaultCacheMaxBody = 1 << 20
	staleSeconds        = 60
	cacheStatusHeader   = "x-portfolio-cache"
	privateCacheControl = "private, no-store, max-age=0"
)

// HTTPCacheOptions configures HTTPCache.
type HTTPCacheOptions struct {
	TTL time.Duration
	// EnableCDNHeader advertises s-maxage so a shared cache in front can hold the page too.
	EnableCDNHeader bool
	Disable         bool
	// SkipPaths are exact paths, or prefixes when they end in "*".
	SkipPaths    []string
	MaxBodyBytes int
}

func (o HTTPCacheOptions) withDefaults() HTTPCacheOptions {
	if o.TTL <= 0 {
		o.TTL = defaultCacheTTL
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = defaultCacheMaxBody
	}
	return o
}

func (o HTTPCacheOptions) skips(path string) bool {
	for _, p := range o.SkipPaths {
		if prefix, ok := strings.CutSuffix(p, "*"); ok {
			if strings.HasPrefix(path, prefix) {
				return true
			}
		} else if p == path {
			return true
		}
	}
	return false
}

func (o HTTPCacheOptions) cacheControl() string {
	secs := int(o.TTL / time.Second)
	if o.EnableCDNHeader {
		return fmt.Sprintf("public, max-age=0, s-maxage=%d, stale-while-revalidate=%d", secs, staleSeconds)
	}
	return fmt.Sprintf("public, max-age=%d", secs)
}

type cachedResponse struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// recordingWriter tees the response body into buf until limit is exceeded.
type recordingWriter struct {
	gin.ResponseWriter
	buf         bytes.Buffer
	limit       int
	tooBig      bool
	publicValue string
}

// WriteHeader withdraws the shared-cache header from anything but a 200.
func (w *recordingWriter) WriteHeader(code int) {
	if code != http.StatusOK && w.Header().Get("Cache-Control") == w.publicValue {
		w.Header().Del("Cache-Control")
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.record(p)
	return w.ResponseWriter.Write(p)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.record([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

func (w *recordingWriter) record(p []byte) {
	if w.tooBig {
		return
	}
	if w.buf.Len()+len(p) > w.limit {
		w.tooBig = true
		w.buf.Reset()
		return
	}
	w.buf.Write(p)
}

// HTTPCache serves anonymous GET requests from redis for opts.TTL.
// Signed-in admins always see fresh data and get a private Cache-Control.
// With a nil client it only passes through.
func HTTPCache(rdb *redis.Client, opts HTTPCacheOptions) gin.HandlerFunc {
	o := opts.withDefaults()
	return func(c *gin.Context) {
		if o.Disable || rdb == nil || c.Request.Method != http.MethodGet || o.skips(c.Request.URL.Path) {
			c.Next()
			return
		}
		if IsAuthenticated(c) {
			c.Header("Cache-Control", privateCacheControl)
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := APICachePrefix + c.Request.URL.RequestURI()
		if hit, ok := loadCached(ctx, rdb, key); ok {
			c.Header("Cache-Control", o.cacheControl())
			c.Header(cacheStatusHeader, "hit")
			c.Data(http.StatusOK, hit.ContentType, hit.Body)
			c.Abort()
			return
		}

		rec := &recordingWriter{ResponseWriter: c.Writer, limit: o.MaxBodyBytes, publicValue: o.cacheControl()}
		c.Writer = rec
		c.Header(cacheStatusHeader, "miss")
		c.Header("Cache-Control", rec.publicValue)
		c.Next()

		if rec.Status() != http.StatusOK || rec.tooBig || rec.buf.Len() == 0 || !storable(rec.Header()) {
			return
		}
		raw, err := json.Marshal(cachedResponse{
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.buf.Bytes(),
		})
		if err != nil {
			return
		}
		_ = rdb.Set(ctx, key, raw, o.TTL).Err()
	}
}

// Handlers opt out of caching by replacing Cache-Control with no-store or private.
func storable(h http.Header) bool {
	cc := strings.ToLower(h.Get("Cache-Control"))
	return !strings.Contains(cc, "no-store") && !strings.Contains(cc, "private")
}

func loadCached(ctx context.Context, rdb *redis.Client, key string) (cachedResponse, bool) {
	raw, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return cachedResponse{}, false
	}
	var hit cachedResponse
	if json.Unmarshal(raw, &hit) != nil || len(hit.Body) == 0 {
		return cachedResponse{}, false
	}
	if hit.ContentType == "" {
		hit.ContentType = "application/json; charset=utf-8"
	}
	return hit, true
}

// PurgeHTTPCache drops every cached API response and reports how many were removed.
// Admin writes call it so public readers see changes immediately.
func PurgeHTTPCache(ctx context.Context, rdb *redis.Client) (int64, error) {
	if rdb == nil {
		return 0, nil
	}
	var removed int64
	iter := rdb.Scan(ctx, 0, APICachePrefix+"*", 200).Iterator()
	batch := make([]string, 0, 200)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := rdb.Del(ctx, batch...).Result()
		removed += n
		batch = batch[:0]
		return err
	}
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := flush(); err != nil {
				return removed, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, err
	}
	return removed, flush()
}
