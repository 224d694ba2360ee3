package middleware

import (
	"time"

	"fiber-erp/utils"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs every request with method, path, status and
// latency.
func RequestLogger(ctx *fiber.Ctx) error {
	start := time.Now()
	err := ctx.Next()

	utils.Log.WithFields(map[string]interface{}{
		"method":  ctx.Method(),
		"path":    ctx.Path(),
		"status":  ctx.Response().StatusCode(),
		"latency": time.Since(start).String(),
	}).Info("request")

	return err
}
