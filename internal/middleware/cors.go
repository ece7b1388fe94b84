package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// ErrCORS is returned for requests whose Origin is not the allowed frontend.
var ErrCORS = fiber.NewError(fiber.StatusForbidden, "Error de CORS")

// CORS allows exactly one origin. Requests from any other origin are rejected
// before reaching the routes; requests without an Origin header are not
// cross-origin and pass through.
func CORS(allowedOrigin string) []fiber.Handler {
	gate := func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" || (allowedOrigin != "" && origin == allowedOrigin) {
			return c.Next()
		}
		return ErrCORS
	}
	if allowedOrigin == "" {
		return []fiber.Handler{gate}
	}
	return []fiber.Handler{gate, cors.New(cors.Config{
		AllowOrigins: allowedOrigin,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
	})}
}
