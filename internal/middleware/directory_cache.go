package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
)

// DirectoryCache serves repeated GET requests from an in-process cache.
// The clinician directory and specialty lists change rarely during a
// workday, so a short TTL removes most of their read load.
type DirectoryCache struct {
	cache *gocache.Cache
	ttl   time.Duration
}

type cachedResponse struct {
	status      int
	contentType string
	body        []byte
}

func NewDirectoryCache(ttl time.Duration) *DirectoryCache {
	return &DirectoryCache{
		cache: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

type captureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (dc *DirectoryCache) Cache() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		if entry, found := dc.cache.Get(key); found {
			cached := entry.(cachedResponse)
			c.Header("X-Cache", "HIT")
			c.Data(cached.status, cached.contentType, cached.body)
			c.Abort()
			return
		}

		w := &captureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w
		c.Header("X-Cache", "MISS")

		c.Next()

		if w.Status() == http.StatusOK {
			dc.cache.Set(key, cachedResponse{
				status:      w.Status(),
				contentType: w.Header().Get("Content-Type"),
				body:        w.body.Bytes(),
			}, dc.ttl)
		}
	}
}
