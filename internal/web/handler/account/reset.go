package account

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GoDocVault/GoDocVault/internal/web/handler"
)

// ResetRequestRequest is the payload for requesting a password reset.
type ResetRequestRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetCompleteRequest is the payload for redeeming a reset ticket.
type ResetCompleteRequest struct {
	Ticket      string `json:"ticket" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// genericResetMessage is returned whether or not the email is known, so
// the endpoint cannot be used to probe which addresses have accounts.
const genericResetMessage = "if the address is registered, a reset ticket has been issued"

// ResetRequest handles POST /api/auth/password-reset/request.
func (s *Service) ResetRequest(c *fiber.Ctx) error {
	var req ResetRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	if err := validate.Struct(&req); err != nil {
		return handler.BadRequest(c, err.Error())
	}

	if err := s.svc.RequestReset(req.Email); err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(fiber.Map{"message": genericResetMessage})
}

// ResetComplete handles POST /api/auth/password-reset/complete. Redeeming
// a ticket replaces the password and revokes every existing session.
func (s *Service) ResetComplete(c *fiber.Ctx) error {
	var req ResetCompleteRequest
	if err := c.BodyParser(&req); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	if err := validate.Struct(&req); err != nil {
		return handler.BadRequest(c, err.Error())
	}

	if err := s.svc.CompleteReset(req.Ticket, req.NewPassword); err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(fiber.Map{"message": "password updated, all sessions revoked"})
}
