// Package middleware provides http.RoundTripper wrappers for the outgoing service client.
package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mycotrack/mycotrack/pkg/logging"
)

// RequestLogger returns a transport wrapper that logs outgoing requests at DEBUG level.
// Pass nil logger to disable logging (makes it optional/injectable).
func RequestLogger(logger *zap.Logger) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		if next == nil {
			next = http.DefaultTransport
		}
		// If no logger provided, pass through without logging
		if logger == nil {
			return next
		}

		return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()

			resp, err := next.RoundTrip(req)

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("url", logging.SanitizeURL(req.URL.String())),
				zap.String("request_id", req.Header.Get("X-Request-ID")),
				zap.Duration("duration", time.Since(start)),
			}
			if err != nil {
				logger.Debug("HTTP request failed", append(fields, zap.String("error", logging.SanitizeError(err)))...)
				return nil, err
			}

			logger.Debug("HTTP request", append(fields, zap.Int("status", resp.StatusCode))...)
			return resp, nil
		})
	}
}

// roundTripperFunc adapts a function to http.RoundTripper.
type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
