package mw

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"room-booking-console/internal/service"
)

// CacheKey derives the cache entry a request reads and fills.
type CacheKey func(c *gin.Context) string

// TenantQueryKey keys a response by tenant, route and the allowed filters in
// allow-list order, so "?b=1&a=2", "?a=2&b=1" and "?a=2&junk=x" share an entry.
func TenantQueryKey(allowed []string) CacheKey {
	return func(c *gin.Context) string {
		filters := service.FromValues(c.Request.URL.Query(), allowed)
		return c.Param("tenant") + "|" + c.FullPath() + "|" + filters.Query(allowed)
	}
}

type download struct {
	status int
	header http.Header
	body   []byte
}

// recordingWriter copies everything written so it can be replayed.
type recordingWriter struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w recordingWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w recordingWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Cache keeps successful GET responses in store for ttl. Responses served
// from the cache carry X-Cache: HIT.
func Cache(store *cache.Cache, ttl time.Duration, key CacheKey) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		k := key(c)
		if v, found := store.Get(k); found {
			d := v.(download)
			h := c.Writer.Header()
			for name, values := range d.header {
				h[name] = values
			}
			h.Set("X-Cache", "HIT")
			c.Writer.WriteHeader(d.status)
			c.Writer.Write(d.body)
			c.Abort()
			return
		}

		rw := recordingWriter{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = rw
		c.Next()

		if status := rw.Status(); status >= 200 && status < 300 {
			store.Set(k, download{status: status, header: rw.Header().Clone(), body: rw.buf.Bytes()}, ttl)
		}
	}
}
