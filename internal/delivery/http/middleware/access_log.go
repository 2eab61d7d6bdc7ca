package middleware

import (
	"log"
	"time"

	"shutterbid/internal/metrics"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// AccessLogMiddleware tags every request with an X-Request-ID, logs the
// outcome, and feeds the HTTP metrics.
type AccessLogMiddleware struct {
	logger  *log.Logger
	metrics *metrics.Collector
}

func NewAccessLogMiddleware(logger *log.Logger, collector *metrics.Collector) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger, metrics: collector}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
			c.Set("X-Request-ID", rid)
		}

		err := c.Next()

		dur := time.Since(start)
		status := c.Response().StatusCode()
		m.metrics.RecordHTTPRequest(status, dur)

		m.logger.Printf(
			"HTTP access | rid=%s ip=%s method=%s path=%s status=%d latency=%s",
			rid, c.IP(), c.Method(), c.OriginalURL(), status, dur,
		)

		return err
	}
}
