package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/GoDocVault/GoDocVault/internal/auth"
	"github.com/GoDocVault/GoDocVault/internal/db/controller/account"
	"github.com/GoDocVault/GoDocVault/internal/db/controller/document"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error maps a service error to its HTTP status and writes the JSON error
// body. Unrecognized errors become a generic 500 so internal detail never
// reaches the client.
func Error(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, auth.ErrDuplicateEmail):
		status, message = fiber.StatusConflict, err.Error()
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidMFACode),
		errors.Is(err, auth.ErrUnauthenticated):
		status, message = fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, auth.ErrForbidden):
		status, message = fiber.StatusForbidden, err.Error()
	case errors.Is(err, auth.ErrInvalidOrExpiredTicket),
		errors.Is(err, auth.ErrInvalidRole),
		errors.Is(err, auth.ErrMFANotEnrolled):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, auth.ErrStoreUnavailable):
		status = fiber.StatusServiceUnavailable
		message = auth.ErrStoreUnavailable.Error()
	case errors.Is(err, document.ErrDocumentNotFound),
		errors.Is(err, account.ErrAccountNotFound):
		status, message = fiber.StatusNotFound, err.Error()
	}

	return c.Status(status).JSON(ErrorResponse{Error: message})
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: message})
}
