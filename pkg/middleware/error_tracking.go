package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// SentryMiddleware returns a middleware that attaches a Sentry hub to each
// request so handlers and downstream middleware can report with context.
func SentryMiddleware() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         2 * time.Second,
	})
}

// RecoveryWithSentry returns a middleware that recovers from panics and
// reports them to Sentry before answering with a 500.
func RecoveryWithSentry() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				hub := sentrygin.GetHubFromContext(c)
				if hub == nil {
					hub = sentry.CurrentHub().Clone()
				}

				hub.Scope().SetRequest(c.Request)
				hub.Scope().SetContext("panic", map[string]interface{}{
					"value":      fmt.Sprintf("%v", err),
					"stacktrace": string(debug.Stack()),
				})

				hub.RecoverWithContext(c.Request.Context(), err)
				hub.Flush(2 * time.Second)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":   "Internal Server Error",
					"message": "An unexpected error occurred",
				})
			}
		}()

		c.Next()
	}
}

// ErrorHandler captures unreported 5xx responses and forwards them to Sentry.
// It should sit near the end of the middleware chain.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		statusCode := c.Writer.Status()

		hub := sentrygin.GetHubFromContext(c)
		if hub == nil {
			return
		}

		for _, ginErr := range c.Errors {
			if statusCode >= 500 {
				hub.Scope().SetRequest(c.Request)
				hub.Scope().SetTag("http.status_code", fmt.Sprintf("%d", statusCode))
				hub.CaptureException(ginErr.Err)
			}
		}

		if statusCode >= 500 && len(c.Errors) == 0 {
			hub.Scope().SetRequest(c.Request)
			hub.CaptureMessage(fmt.Sprintf("HTTP %d: %s %s", statusCode, c.Request.Method, c.Request.URL.Path))
		}
	}
}
