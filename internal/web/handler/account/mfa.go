package account

import (
	"github.com/gofiber/fiber/v2"

	"github.com/GoDocVault/GoDocVault/internal/web/handler"
)

// MFACodeRequest carries a one-time code for activating or disabling the
// second factor.
type MFACodeRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// MFAEnrollResponse returns the fresh shared secret and its otpauth URL
// for the authenticator app. The factor stays inactive until the account
// confirms it with a valid code.
type MFAEnrollResponse struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

// MFAEnroll handles POST /api/auth/mfa/enroll.
func (s *Service) MFAEnroll(c *fiber.Ctx) error {
	enrollment, err := s.svc.BeginMFAEnrollment(currentAccount(c))
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(MFAEnrollResponse{
		Secret: enrollment.Secret,
		URL:    enrollment.URL,
	})
}

// MFAActivate handles POST /api/auth/mfa/activate, confirming a pending
// enrollment with a current code.
func (s *Service) MFAActivate(c *fiber.Ctx) error {
	var req MFACodeRequest
	if err := c.BodyParser(&req); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	if err := validate.Struct(&req); err != nil {
		return handler.BadRequest(c, err.Error())
	}

	if err := s.svc.ActivateMFA(currentAccount(c), req.Code); err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(fiber.Map{"message": "second factor enabled"})
}

// MFADisable handles POST /api/auth/mfa/disable. Turning the factor off
// requires proving possession of it one last time.
func (s *Service) MFADisable(c *fiber.Ctx) error {
	var req MFACodeRequest
	if err := c.BodyParser(&req); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	if err := validate.Struct(&req); err != nil {
		return handler.BadRequest(c, err.Error())
	}

	if err := s.svc.DisableMFA(currentAccount(c), req.Code); err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(fiber.Map{"message": "second factor disabled"})
}
