package middleware

import (
	"strings"

	"coopcredit/internal/config"
	"coopcredit/internal/pkg/jwt"
	"coopcredit/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware. The token is read
// from the access_token cookie first, then the Authorization header.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := c.Cookies("access_token")

		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals("userID", claims.UserID)
		c.Locals("documentNumber", claims.DocumentNumber)
		c.Locals("username", claims.Username)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only ADMIN role
func AdminOnly() fiber.Handler {
	return RoleMiddleware("ADMIN")
}

// AnalystOrAdmin middleware allows ANALYST or ADMIN roles
func AnalystOrAdmin() fiber.Handler {
	return RoleMiddleware("ANALYST", "ADMIN")
}

// SelfOrStaff allows staff roles through unconditionally and AFFILIATE
// users only when the document number in the route matches their own
func SelfOrStaff(paramName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		if role == "ANALYST" || role == "ADMIN" {
			return c.Next()
		}

		documentNumber, _ := c.Locals("documentNumber").(string)
		if documentNumber != "" && documentNumber == c.Params(paramName) {
			return c.Next()
		}

		return response.Forbidden(c, "You can only access your own records")
	}
}
