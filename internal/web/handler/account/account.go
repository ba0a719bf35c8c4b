package account

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/GoDocVault/GoDocVault/internal/auth"
	"github.com/GoDocVault/GoDocVault/internal/config"
	"github.com/GoDocVault/GoDocVault/internal/db/models"
	"github.com/GoDocVault/GoDocVault/internal/web/handler"
	"github.com/GoDocVault/GoDocVault/internal/web/middleware/bearer"
)

const (
	// Path is the base path of the account API.
	Path = "/api/auth"
)

// Service is the account handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	svc *auth.Service
}

// Handler is the account handler.
var Handler = Service{}

var validate = validator.New()

// Init initializes the account handler and registers its routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, svc *auth.Service) error {
	if app == nil || cfg == nil || db == nil || svc == nil {
		return errors.New(handler.ErrNilACSFatalLogMsg)
	}

	s.cfg = cfg
	s.svc = svc

	authed := bearer.New(svc)

	app.Route(Path, func(router fiber.Router) {
		router.Post("/register", s.Register)
		router.Post("/login", s.Login)
		router.Post("/logout", authed, s.Logout)
		router.Post("/logout-all", authed, s.LogoutAll)
		router.Post("/password-reset/request", s.ResetRequest)
		router.Post("/password-reset/complete", s.ResetComplete)
		router.Post("/mfa/enroll", authed, s.MFAEnroll)
		router.Post("/mfa/activate", authed, s.MFAActivate)
		router.Post("/mfa/disable", authed, s.MFADisable)
	})

	return nil
}

// View is the JSON projection of an account. Secret material and reset
// tickets never appear in it.
type View struct {
	ID          uint64     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Department  string     `json:"department,omitempty"`
	MFAEnabled  bool       `json:"mfaEnabled"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// NewView projects an account to its API shape.
func NewView(acct *models.Account) View {
	return View{
		ID:          acct.ID,
		Name:        acct.Name,
		Email:       acct.Email,
		Role:        string(acct.Role),
		Department:  acct.Department,
		MFAEnabled:  acct.MFAEnabled,
		LastLoginAt: acct.LastLoginAt,
	}
}

// currentAccount pulls the authenticated account out of fiber.Locals. The
// bearer middleware guarantees it is set on protected routes.
func currentAccount(c *fiber.Ctx) *models.Account {
	acct, _ := c.Locals(handler.LocalsAccount).(*models.Account)
	return acct
}
