package bearer

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/GoDocVault/GoDocVault/internal/auth"
	"github.com/GoDocVault/GoDocVault/internal/web/handler"
)

const scheme = "Bearer "

// New builds a middleware that resolves the Authorization bearer token to
// an account. Requests without a resolvable token are rejected with 401;
// on success the account and the presented token land in fiber.Locals for
// the handlers behind it.
func New(svc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, scheme) {
			return handler.Error(c, auth.ErrUnauthenticated)
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, scheme))

		acct, err := svc.Resolve(token)
		if err != nil {
			return handler.Error(c, err)
		}

		c.Locals(handler.LocalsAccount, acct)
		c.Locals(handler.LocalsToken, token)

		return c.Next()
	}
}
