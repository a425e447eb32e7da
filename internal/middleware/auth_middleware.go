package middleware

import (
	"log"

	"delight/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "auth"

// PageAuth is the access gate for browser pages. Unauthenticated traffic
// on a protected page is redirected to the login page; authenticated
// traffic on the login page is redirected home.
func PageAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies(SessionCookie)

		authenticated := false
		if cookie != "" {
			if _, err := authService.ValidateToken(cookie); err == nil {
				authenticated = true
			}
		}

		if !authenticated && c.Path() != "/login" {
			return c.Redirect("/login", fiber.StatusFound)
		}
		if authenticated && c.Path() == "/login" {
			return c.Redirect("/", fiber.StatusFound)
		}

		return c.Next()
	}
}

// AuthRequired is a Fiber middleware guarding JSON APIs with the session
// cookie. It stores the session claims in the request context.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies(SessionCookie)
		if cookie == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
			})
		}

		claims, err := authService.ValidateToken(cookie)
		if err != nil {
			log.Printf("Session validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired session",
			})
		}

		// Store claims in Fiber context for subsequent handlers
		c.Locals("username", claims["username"])
		c.Locals("role", claims["role"])

		return c.Next()
	}
}
