package middleware

import (
	"bufio"
	"bytes"
	"fmt"
	"hash/fnv"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ghostart/goapi/base/ctx"
	"github.com/ghostart/goapi/base/log"
	"github.com/ghostart/goapi/service/cache"
	"github.com/ghostart/goapi/service/cache/provider"
	"github.com/ghostart/goapi/service/cache/provider/primitive"
)

const (
	HeaderXCache = "X-Cache"

	cacheMiddlewarePfx = "httpCacheMiddleware"
)

var (
	cacheMiddlewareLocalCache provider.Provider

	// each CacheHttp instance gets its own key space
	cacheMiddlewareInstances int64

	once = sync.Once{}
)

// SetupCache allocates the in-process response cache. Later calls are no-ops.
func SetupCache(sizeMB int) {
	once.Do(func() {
		cacheMiddlewareLocalCache = primitive.NewPrimitive(sizeMB)
	})
}

// RevisionFunc reports the current data revision. Responses cached under an
// older revision are never served.
type RevisionFunc func(ctx.Ctx) (int64, error)

// Response is the cached response data structure.
type Response struct {
	Value       []byte `json:"value"`
	ContentType string `json:"contentType"`
}

type bodyDumpResponseWriter struct {
	statusCode int
	io.Writer
	http.ResponseWriter
}

func (w *bodyDumpResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyDumpResponseWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

func (w *bodyDumpResponseWriter) Flush() {
	w.ResponseWriter.(http.Flusher).Flush()
}

func (w *bodyDumpResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return w.ResponseWriter.(http.Hijacker).Hijack()
}

func sortURLParams(URL *url.URL) {
	params := URL.Query()
	for _, param := range params {
		sort.Strings(param)
	}
	URL.RawQuery = params.Encode()
}

func generateKey(URL string, revision int64) string {
	hash := fnv.New64a()
	hash.Write([]byte(URL))

	return fmt.Sprintf("%s:%d", strconv.FormatUint(hash.Sum64(), 36), revision)
}

// CacheHttp serves successful GET responses from the local cache for ttl, as
// long as revision has not moved.
func CacheHttp(ttl time.Duration, revision RevisionFunc) echo.MiddlewareFunc {
	if cacheMiddlewareLocalCache == nil {
		panic("need SetupCache before using CacheHttp")
	}

	cacheService := cache.New(cache.ServiceConfig{
		Ttl:   ttl,
		Pfx:   fmt.Sprintf("%s:%d", cacheMiddlewarePfx, atomic.AddInt64(&cacheMiddlewareInstances, 1)),
		Cache: cacheMiddlewareLocalCache,
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Get("ctx").(ctx.Ctx)

			rev, err := revision(ctx)
			if err != nil {
				ctx.WithField("err", err).Error("revision failed, bypass cache")
				return next(c)
			}

			sortURLParams(c.Request().URL)
			key := generateKey(c.Request().URL.String(), rev)

			response := Response{}
			if err := cacheService.Get(ctx, key, &response); err == nil {
				// cache hit
				c.Response().Header().Set(echo.HeaderContentType, response.ContentType)
				c.Response().Header().Set(HeaderXCache, "HIT")
				c.Response().WriteHeader(http.StatusOK)
				_, err := c.Response().Write(response.Value)
				return err
			} else if err != cache.ErrNotFound {
				ctx.WithFields(log.Fields{
					"err": err,
				}).Error("failed to cacheService.Get")
			}

			// cache miss
			c.Response().Header().Set(HeaderXCache, "MISS")
			resBody := new(bytes.Buffer)
			origin := c.Response().Writer
			writer := &bodyDumpResponseWriter{Writer: io.MultiWriter(origin, resBody), ResponseWriter: origin}
			c.Response().Writer = writer
			defer func() { c.Response().Writer = origin }()

			if err := next(c); err != nil {
				c.Error(err)
			}

			if writer.statusCode == http.StatusOK {
				response := Response{
					Value:       resBody.Bytes(),
					ContentType: writer.Header().Get(echo.HeaderContentType),
				}
				// oversized entries are logged by the provider and served uncached
				_ = cacheService.Set(ctx, key, response)
			}

			return nil
		}
	}
}
