package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/kasir-receipt/internal/domain/entity"
	"github.com/sangkips/kasir-receipt/internal/domain/repository"
	"github.com/sirupsen/logrus"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
	// IdempotencyCleanupInterval is how often expired keys are purged
	IdempotencyCleanupInterval = time.Hour
)

// replayedHeaders are the response headers stored with a key and sent again
// on replay. Content-Type is stored separately.
var replayedHeaders = []string{"Content-Disposition", "X-Print-Job-ID"}

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo   repository.IdempotencyRepository
	Logger logrus.FieldLogger
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response of a POST whose Idempotency-Key
// was already seen, so a retried print request does not print twice. Only
// 2xx responses are stored.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	log := config.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		subject := Subject(c)

		existing, err := config.Repo.GetByKey(c.Request.Context(), key, subject)
		if err != nil {
			log.WithError(err).Warn("idempotency lookup failed")
			c.Next()
			return
		}

		if existing != nil && !existing.IsExpired() {
			for name, value := range existing.ResponseHeaders {
				c.Header(name, value)
			}
			c.Header("X-Idempotency-Replayed", "true")
			contentType := existing.ContentType
			if contentType == "" {
				contentType = "application/json; charset=utf-8"
			}
			c.Data(existing.ResponseCode, contentType, existing.ResponseBody)
			c.Abort()
			return
		}

		blw := &responseWriter{body: bytes.NewBufferString(""), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		if status := blw.Status(); status < 200 || status >= 300 {
			return
		}

		headers := make(map[string]string)
		for _, name := range replayedHeaders {
			if v := c.Writer.Header().Get(name); v != "" {
				headers[name] = v
			}
		}

		ikey := &entity.IdempotencyKey{
			Key:             key,
			Subject:         subject,
			Endpoint:        c.Request.Method + " " + c.FullPath(),
			ResponseCode:    blw.Status(),
			ContentType:     c.Writer.Header().Get("Content-Type"),
			ResponseHeaders: headers,
			ResponseBody:    bytes.Clone(blw.body.Bytes()),
			ExpiresAt:       time.Now().Add(IdempotencyKeyTTL),
		}
		if err := config.Repo.Create(c.Request.Context(), ikey); err != nil {
			log.WithError(err).Warn("failed to store idempotency key")
		}
	}
}

// StartIdempotencyCleanup purges expired keys from repo every interval until
// ctx is cancelled.
func StartIdempotencyCleanup(ctx context.Context, repo repository.IdempotencyRepository, interval time.Duration, log logrus.FieldLogger) {
	if interval <= 0 {
		interval = IdempotencyCleanupInterval
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := repo.DeleteExpired(ctx); err != nil {
					log.WithError(err).Warn("failed to purge expired idempotency keys")
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}
