package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hiresphere/api/internal/apperror"
	"github.com/hiresphere/api/internal/config"
	"github.com/hiresphere/api/internal/model"
	"github.com/hiresphere/api/internal/repository"
	"github.com/hiresphere/api/internal/util"
)

const (
	LocalUser = "current_user"
)

// Claims is the JWT payload issued at login.
type Claims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// RequireAuth validates the bearer token and loads the user into locals so
// handlers never re-fetch it.
func RequireAuth(users *repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return util.HandleError(c, apperror.Unauthorized("Missing or malformed authorization header"))
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(config.LoadAuthConfig().JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return util.HandleError(c, apperror.Unauthorized("Invalid or expired token"))
		}

		if _, err := uuid.Parse(claims.Subject); err != nil {
			return util.HandleError(c, apperror.Unauthorized("Invalid token subject"))
		}
		user, err := users.FindByID(claims.Subject)
		if err != nil {
			return util.HandleError(c, apperror.Unauthorized("User no longer exists"))
		}
		if user.Status != "active" {
			return util.HandleError(c, apperror.Forbidden("Account is disabled"))
		}

		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// RequireRole gates a route to the given roles. It assumes RequireAuth ran
// first.
func RequireRole(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals(LocalUser).(*model.User)
		if !ok {
			return util.HandleError(c, apperror.Unauthorized("Authentication required"))
		}
		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}
		return util.HandleError(c, apperror.Forbidden("Insufficient permissions"))
	}
}

// CurrentUser retrieves the authenticated user placed by RequireAuth.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(LocalUser).(*model.User)
	return user
}
