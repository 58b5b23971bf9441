package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookVerifier checks a webhook signature. It may consume the body.
type WebhookVerifier interface {
	Verify(r *http.Request) bool
}

// WebhookHMAC rejects deliveries whose signature does not match the body.
// The platform treats 401 as a permanent failure, so nothing is retried.
// The body is buffered first, so a body cut short by BodyLimit is answered
// with 413 instead of failing the signature check.
func WebhookHMAC(verifier WebhookVerifier, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				log.Warn("Webhook body too large",
					zap.String("path", c.Request.URL.Path),
					zap.Int64("limit", tooLarge.Limit),
					zap.String("request_id", GetRequestID(c)))
				c.AbortWithStatus(http.StatusRequestEntityTooLarge)
				return
			}
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		if !verifier.Verify(c.Request) {
			log.Warn("Webhook signature rejected",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
				zap.String("request_id", GetRequestID(c)))
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Next()
	}
}
