package middleware

import (
	"github.com/daksh-app/daksh/backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
)

// RequestID tags every request with a uuid unless the caller sent one.
func RequestID() echo.MiddlewareFunc {
	return eMiddleware.RequestIDWithConfig(eMiddleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	})
}

// RequestLogger logs one line per request into log.
func RequestLogger(log logger.Logger) echo.MiddlewareFunc {
	log = log.WithComponent("http")
	return eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				log.Error("request failed", append(args, "error", v.Error.Error())...)
				return nil
			}
			log.Info("request", args...)
			return nil
		},
	})
}
