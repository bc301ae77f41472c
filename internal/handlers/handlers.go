// Package handlers contains the HTTP handlers for the chat and ad APIs.
package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// sessionID returns the anonymous session id set by the session middleware,
// or "" when the middleware is not installed.
func sessionID(c fiber.Ctx) string {
	sid, _ := c.Locals("session_id").(string)
	return sid
}
