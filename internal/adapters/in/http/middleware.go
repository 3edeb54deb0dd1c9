package http

import (
	"errors"
	"net/http"
	"time"

	"fooddelivery/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// requestMetrics counts requests by route template, so /orders/:id/accept is
// one series regardless of the order id.
func requestMetrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = statusOf(err)
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				}
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			if status == 0 {
				status = http.StatusOK
			}
			m.ObserveRequest(c.Request().Method, route, status, time.Since(start))
			return err
		}
	}
}
