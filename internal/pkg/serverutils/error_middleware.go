package serverutils

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware recovers from handler panics and normalizes fiber
// errors into the standard envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[PANIC] %s %s: %v", ctx.Method(), ctx.Path(), r)
				_ = ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, "internal server error"))
			}
		}()

		err := ctx.Next()
		if err == nil {
			return nil
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, err.Error()))
	}
}
