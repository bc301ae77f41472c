package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// Healthz reports process liveness. There is no backing store to check;
// all state is in memory.
func Healthz(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
