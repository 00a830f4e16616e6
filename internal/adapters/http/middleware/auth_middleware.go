package middleware

import (
	"strings"

	"astrafin-backoffice/internal/config"
	"astrafin-backoffice/internal/core/domain"
	"astrafin-backoffice/internal/pkg/jwt"
	"astrafin-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Set user info in context
		c.Locals("userID", claims.UserID)
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

		// Check if user's role is in allowed roles
		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only ADMIN or SUPER_ADMIN roles
func AdminOnly() fiber.Handler {
	return RoleMiddleware(string(domain.RoleAdmin), string(domain.RoleSuperAdmin))
}

// SuperAdminOnly middleware allows only the SUPER_ADMIN role
func SuperAdminOnly() fiber.Handler {
	return RoleMiddleware(string(domain.RoleSuperAdmin))
}

// ValidatorOnly middleware allows the validation-tier roles
func ValidatorOnly() fiber.Handler {
	return RoleMiddleware(string(domain.RoleAdmin), string(domain.RoleSuperAdmin))
}

// CurrentActor extracts the authenticated actor from the request context.
// Must run behind AuthMiddleware.
func CurrentActor(c *fiber.Ctx) (domain.Actor, bool) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return domain.Actor{}, false
	}
	role, ok := c.Locals("role").(string)
	if !ok {
		return domain.Actor{}, false
	}
	return domain.Actor{ID: userID, Role: domain.Role(role)}, true
}
