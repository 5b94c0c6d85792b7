package middleware

import (
	"time"

	"github.com/fekuna/goldsmith-catalog-service/pkg/logger"
	"github.com/fekuna/goldsmith-catalog-service/pkg/metrics"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestLogger logs every request and feeds the Prometheus collectors.
// The route template is used as the metric label to keep cardinality bounded.
func RequestLogger(log logger.ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// let the HTTP error handler write the response so the status is final
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			duration := time.Since(start)
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			metrics.RecordRequest(req.Method, route, status, duration)

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", status),
				zap.Duration("latency", duration),
				zap.String("remote_ip", c.RealIP()),
			}
			switch {
			case status >= 500:
				log.Error("request failed", append(fields, zap.Error(err))...)
			case status >= 400:
				log.Warn("request rejected", fields...)
			default:
				log.Info("request served", fields...)
			}
			return nil
		}
	}
}
