package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"ecommerce-transactions/internal/core/ports"
	"ecommerce-transactions/pkg/apperror"
	"ecommerce-transactions/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	HeaderClientID    = "X-Client-Id"
	HeaderRequestID   = "X-Request-Id"
	HeaderTraceParent = "traceparent"
	HeaderTraceState  = "tracestate"
	HeaderBaggage     = "baggage"

	// Context keys
	CtxRequestID = "request_id"
	CtxClaims    = "transaction_claims"
)

// TransactionAuth requires a bearer token issued for the transaction named
// by the :id path parameter.
func TransactionAuth(tokenSvc ports.TokenService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenStr == "" {
			response.Abort(c, apperror.InvalidToken())
			return
		}

		claims, err := tokenSvc.Validate(tokenStr)
		if err != nil {
			log.Debug().Err(err).Msg("rejected transaction token")
			response.Abort(c, apperror.InvalidToken())
			return
		}

		if claims.TransactionID != c.Param("id") {
			log.Warn().
				Str("path_transaction_id", c.Param("id")).
				Str("token_transaction_id", claims.TransactionID).
				Msg("transaction token used for another transaction")
			response.Abort(c, apperror.InvalidToken())
			return
		}

		c.Set(CtxClaims, claims)
		c.Next()
	}
}

// RequestLogger logs every HTTP request and stores the inbound trace context
// on the request context so it reaches the retry queues.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(CtxRequestID, requestID)
		c.Header(HeaderRequestID, requestID)

		if tp := c.GetHeader(HeaderTraceParent); tp != "" {
			ctx := ports.WithTracingInfo(c.Request.Context(), ports.TracingInfo{
				TraceParent: tp,
				TraceState:  c.GetHeader(HeaderTraceState),
				Baggage:     c.GetHeader(HeaderBaggage),
			})
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Str("client_id", c.GetHeader(HeaderClientID)).
			Str("request_id", requestID).
			Msg("http request")
	}
}

// Recovery turns a panic into a problem-detail 500.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				response.Abort(c, apperror.InternalError(fmt.Errorf("panic: %v", r)))
			}
		}()
		c.Next()
	}
}
