package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestLogger writes one line per request. Server errors log at error
// level and client errors at warn.
func RequestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		level := zapcore.InfoLevel
		switch {
		case status >= 500:
			level = zapcore.ErrorLevel
		case status >= 400:
			level = zapcore.WarnLevel
		}

		// fiber reuses the request buffer; entries may outlive the handler.
		fields := []zap.Field{
			zap.String("method", utils.CopyString(c.Method())),
			zap.String("path", utils.CopyString(c.Path())),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", utils.CopyString(c.IP())),
		}
		if id, ok := c.Locals("user_id").(string); ok {
			fields = append(fields, zap.String("user_id", id))
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		if ce := logger.Check(level, "request"); ce != nil {
			ce.Write(fields...)
		}
		return err
	}
}
