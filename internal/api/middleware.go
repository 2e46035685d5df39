package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fitchallenge/internal/identity"
	"fitchallenge/internal/logger"
	"fitchallenge/internal/metrics"
	"fitchallenge/internal/repository"
	"fitchallenge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Constants for context keys
const (
	ContextRequestIDKey = "requestID"
	RequestIDHeader     = "X-Request-ID"
)

// CORSMiddleware allows every origin, like the deployed mobile client expects.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET,HEAD,PUT,PATCH,POST,DELETE")
		if reqHeaders := c.GetHeader("Access-Control-Request-Headers"); reqHeaders != "" {
			h.Set("Access-Control-Allow-Headers", reqHeaders)
			h.Add("Vary", "Access-Control-Request-Headers")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequestLoggerMiddleware stamps every request with an ID and logs it when done.
func RequestLoggerMiddleware(log *logger.LogMiddleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), requestID))

		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		l := log.Logger(c.Request.Context())
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			l.Error("Request Completed", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			l.Warn("Request Completed", fields...)
		default:
			l.Info("Request Completed", fields...)
		}
	}
}

// MetricsMiddleware records request counts and latency per matched route.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTPRequest(route, c.Request.Method, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// respondWithError maps service, repository and provider errors to a status code.
func respondWithError(c *gin.Context, err error) {
	_ = c.Error(err)

	var providerErr *identity.ProviderError
	switch {
	case errors.Is(err, service.ErrValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrDuplicateKey):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrRoutineNotFound),
		errors.Is(err, service.ErrExerciseNotInRoutine),
		errors.Is(err, repository.ErrNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrUpdateFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrMediaUnavailable):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, identity.ErrInvalidToken):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &providerErr):
		abortWithError(c, http.StatusInternalServerError, providerErr.Message)
	default:
		abortWithError(c, http.StatusInternalServerError, err.Error())
	}
}
