package middleware

import (
	"strings"

	"freshcart/internal/apperr"
	"freshcart/internal/models"
	"freshcart/internal/services"

	"github.com/gofiber/fiber/v2"
)

const userLocal = "user"

// Protect is a Fiber middleware that requires a valid bearer token issued to
// an existing user. The user is stored in the request locals.
func Protect(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return apperr.Authentication("not authorized, no token")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return apperr.Authentication("authorization header format must be 'Bearer <token>'")
		}

		user, err := authService.ResolveUser(c.UserContext(), strings.TrimSpace(parts[1]))
		if err != nil {
			return err
		}

		c.Locals(userLocal, user)
		return c.Next()
	}
}

// AdminOnly rejects callers that are not admins. It must run after Protect.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin {
			return apperr.Authorization("not authorized as an admin")
		}
		return c.Next()
	}
}

// CurrentUser returns the user stored by Protect, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocal).(*models.User)
	return user
}
