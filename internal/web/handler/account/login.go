package account

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/GoDocVault/GoDocVault/internal/auth"
	"github.com/GoDocVault/GoDocVault/internal/db/models"
	"github.com/GoDocVault/GoDocVault/internal/web/handler"
)

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Role       string `json:"role" validate:"omitempty,oneof=staff manager admin"`
	Department string `json:"department" validate:"max=100"`
}

// LoginRequest is the payload for credential login. OTPCode is empty on
// the first call; accounts with an enrolled second factor repeat the call
// with a current code.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	OTPCode  string `json:"otpCode" validate:"omitempty,len=6,numeric"`
}

// SessionResponse is returned on successful registration and login.
type SessionResponse struct {
	Token   string `json:"token"`
	Account View   `json:"account"`
}

// MFARequiredResponse signals that credentials were accepted but a second
// factor is still outstanding. No token is issued yet.
type MFARequiredResponse struct {
	RequireMFA bool   `json:"requireMfa"`
	Message    string `json:"message"`
}

// Register handles POST /api/auth/register.
func (s *Service) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	if err := validate.Struct(&req); err != nil {
		return handler.BadRequest(c, err.Error())
	}

	acct, token, err := s.svc.Register(
		req.Name, req.Email, req.Password,
		models.Role(req.Role), req.Department,
	)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(SessionResponse{
		Token:   token,
		Account: NewView(acct),
	})
}

// Login handles POST /api/auth/login.
func (s *Service) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	if err := validate.Struct(&req); err != nil {
		return handler.BadRequest(c, err.Error())
	}

	acct, token, err := s.svc.Login(req.Email, req.Password, req.OTPCode)
	if err != nil {
		// the password was right but a second factor is outstanding;
		// this is a normal step of the flow, not a failure.
		if errors.Is(err, auth.ErrMFARequired) {
			return c.JSON(MFARequiredResponse{
				RequireMFA: true,
				Message:    "one-time code required",
			})
		}

		return handler.Error(c, err)
	}

	return c.JSON(SessionResponse{
		Token:   token,
		Account: NewView(acct),
	})
}

// Logout handles POST /api/auth/logout. It revokes exactly the token the
// request was authenticated with; other sessions stay live.
func (s *Service) Logout(c *fiber.Ctx) error {
	token, _ := c.Locals(handler.LocalsToken).(string)

	if err := s.svc.Logout(token); err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(fiber.Map{"message": "logged out"})
}

// LogoutAll handles POST /api/auth/logout-all, revoking every session of
// the authenticated account.
func (s *Service) LogoutAll(c *fiber.Ctx) error {
	if err := s.svc.LogoutAll(currentAccount(c)); err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(fiber.Map{"message": "all sessions revoked"})
}
