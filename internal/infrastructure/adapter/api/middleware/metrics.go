package middleware

import (
	"time"

	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/gin-gonic/gin"
)

// RequestObserver records finished HTTP requests
type RequestObserver interface {
	ObserveRequest(route, method string, status int, elapsed time.Duration)
}

// unmatchedRoute labels requests no route matched, keeping label cardinality bounded
const unmatchedRoute = "unmatched"

// Metrics records request counts and latency per route template
func Metrics(observer RequestObserver, timeProvider coreport.TimeProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := timeProvider.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		observer.ObserveRequest(route, c.Request.Method, c.Writer.Status(), timeProvider.Since(start).Std())
	}
}
