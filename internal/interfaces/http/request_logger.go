package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/semillas-api/pkg/logger"
)

// RequestLogger registra método, ruta, status y latencia de cada petición. Los 5xx salen en
// nivel error con el error interno que dejó writeError.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
			if e, ok := c.Locals(LocalError).(error); ok {
				ev = ev.Err(e)
			}
		}
		if err != nil {
			ev = log.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return err
	}
}
