package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-backoffice/internal/model"
	"go-backoffice/internal/service"
	"go-backoffice/internal/stock"
	"go-backoffice/pkg/jwt"
)

// Authenticator resolves a bearer token to its claims and current user.
type Authenticator interface {
	Authenticate(tokenString string) (*jwt.Claims, *model.User, error)
}

func unauthorized(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": message, "code": code})
}

// bearerToken reads "Authorization: Bearer <token>". Browsers cannot set
// headers on a websocket handshake, so upgrades may pass ?token= instead.
func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		if websocket.IsWebSocketUpgrade(c) && c.Query("token") != "" {
			return c.Query("token"), nil
		}
		return "", jwt.ErrMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization format. Use: Bearer <token>")
	}
	return parts[1], nil
}

// RequireAuth is middleware that validates the session and sets user info in context
func RequireAuth(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := bearerToken(c)
		if err != nil {
			return unauthorized(c, "unauthorized", err.Error())
		}

		claims, user, err := auth.Authenticate(tokenString)
		switch {
		case errors.Is(err, service.ErrSessionTimeout):
			return unauthorized(c, "session_timeout", err.Error())
		case errors.Is(err, service.ErrSessionReplaced):
			return unauthorized(c, "session_replaced", err.Error())
		case errors.Is(err, service.ErrUserInactive):
			return unauthorized(c, "user_inactive", err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			return unauthorized(c, "unauthorized", err.Error())
		case err != nil:
			return unauthorized(c, "unauthorized", jwt.ErrInvalidToken.Error())
		}

		// Privileges come from the database so that revocations apply immediately.
		c.Locals("user_id", claims.UserID.String())
		c.Locals("user_email", user.Email)
		c.Locals("user_name", user.FullName)
		c.Locals("user_role", user.RoleCode())
		c.Locals("user_privileges", user.GetPrivilegeCodes())

		return c.Next()
	}
}

// RequirePrivilege checks if the authenticated user has the required privilege
func RequirePrivilege(requiredPrivilege string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if HasPrivilege(c, requiredPrivilege) {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden: requires '" + requiredPrivilege + "' privilege",
			"code":  "forbidden",
		})
	}
}

// RequireAnyPrivilege checks if the user has at least one of the specified privileges
func RequireAnyPrivilege(requiredPrivileges ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, p := range requiredPrivileges {
			if HasPrivilege(c, p) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden: requires one of " + strings.Join(requiredPrivileges, ", ") + " privileges",
			"code":  "forbidden",
		})
	}
}

func HasPrivilege(c *fiber.Ctx, code string) bool {
	privileges, _ := c.Locals("user_privileges").([]string)
	for _, p := range privileges {
		if p == code {
			return true
		}
	}
	return false
}

// CurrentUserID is uuid.Nil outside RequireAuth.
func CurrentUserID(c *fiber.Ctx) uuid.UUID {
	raw, _ := c.Locals("user_id").(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// CurrentActor is the user changes made by this request are attributed to.
func CurrentActor(c *fiber.Ctx) stock.Actor {
	name, _ := c.Locals("user_name").(string)
	email, _ := c.Locals("user_email").(string)
	return stock.Actor{ID: CurrentUserID(c), Name: name, Email: email}
}

// CurrentScope limits sales visibility to the caller unless they may view all.
func CurrentScope(c *fiber.Ctx) service.Scope {
	return service.Scope{
		UserID: CurrentUserID(c),
		All:    HasPrivilege(c, model.PrivTransactionViewAll),
	}
}
