package document

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GoDocVault/GoDocVault/internal/auth"
	"github.com/GoDocVault/GoDocVault/internal/config"
	controller "github.com/GoDocVault/GoDocVault/internal/db/controller/document"
	"github.com/GoDocVault/GoDocVault/internal/db/models"
	"github.com/GoDocVault/GoDocVault/internal/web/handler"
	"github.com/GoDocVault/GoDocVault/internal/web/middleware/bearer"
)

const (
	// Path is the base path of the document API.
	Path = "/api/documents"

	defaultPageSize = 20
	maxPageSize     = 100
)

// Service is the document handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
	svc *auth.Service
}

// Handler is the document handler.
var Handler = Service{}

var validate = validator.New()

// Init initializes the document handler and registers its routes. Every
// route sits behind the bearer middleware; an unauthenticated request
// never reaches a handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, svc *auth.Service) error {
	if app == nil || cfg == nil || db == nil || svc == nil {
		return errors.New(handler.ErrNilACSFatalLogMsg)
	}

	s.cfg = cfg
	s.db = db
	s.svc = svc

	app.Route(Path, func(router fiber.Router) {
		router.Use(bearer.New(svc))

		router.Get(handler.RootPath, s.List)
		router.Post(handler.RootPath, s.Create)
		router.Get("/:id", s.Get)
		router.Patch("/:id", s.Update)
		router.Delete("/:id", s.Delete)
		router.Put("/:id/shares", s.Share)
		router.Delete("/:id/shares/:granteeID", s.Unshare)
	})

	return nil
}

// GrantView is the JSON projection of a grant.
type GrantView struct {
	GranteeID  uint64 `json:"granteeId"`
	Permission string `json:"permission"`
}

// View is the JSON projection of a document. Grants are included only for
// the owner; a grantee sees the document, not who else it is shared with.
type View struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	FileName    string      `json:"fileName,omitempty"`
	FileSize    int64       `json:"fileSize"`
	OwnerID     uint64      `json:"ownerId"`
	Status      string      `json:"status"`
	Grants      []GrantView `json:"grants,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// NewView projects a document for the given viewer.
func NewView(doc *models.Document, viewerID uint64) View {
	v := View{
		ID:          doc.ID,
		Title:       doc.Title,
		Description: doc.Description,
		FileName:    doc.FileName,
		FileSize:    doc.FileSize,
		OwnerID:     doc.OwnerID,
		Status:      string(doc.Status),
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}

	if doc.OwnerID == viewerID {
		for i := range doc.Grants {
			v.Grants = append(v.Grants, GrantView{
				GranteeID:  doc.Grants[i].GranteeID,
				Permission: string(doc.Grants[i].Permission),
			})
		}
	}

	return v
}

func currentAccount(c *fiber.Ctx) *models.Account {
	acct, _ := c.Locals(handler.LocalsAccount).(*models.Account)
	return acct
}

// load fetches the document and checks the operation against the
// requester in one step.
func (s *Service) load(c *fiber.Ctx, op auth.Operation) (*models.Document, *models.Account, error) {
	acct := currentAccount(c)

	doc, err := controller.FindByID(s.db, c.Params("id"))
	if err != nil {
		return nil, nil, err
	}

	if err := auth.Authorize(acct.ID, doc, op); err != nil {
		return nil, nil, err
	}

	return doc, acct, nil
}

// CreateRequest is the payload for registering a new document.
type CreateRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
	FileName    string `json:"fileName" validate:"max=255"`
	FileSize    int64  `json:"fileSize" validate:"min=0"`
	Status      string `json:"status" validate:"omitempty,oneof=draft review published archived"`
}

// UpdateRequest is the payload for modifying document metadata. Nil
// fields are left untouched.
type UpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	FileName    *string `json:"fileName" validate:"omitempty,max=255"`
	FileSize    *int64  `json:"fileSize" validate:"omitempty,min=0"`
	Status      *string `json:"status" validate:"omitempty,oneof=draft review published archived"`
}

// ShareRequest is the payload for granting or regranting access.
type ShareRequest struct {
	GranteeID  uint64 `json:"granteeId" validate:"required"`
	Permission string `json:"permission" validate:"required,oneof=read write delete"`
}

// ListResponse is the paginated document listing.
type ListResponse struct {
	Documents []View `json:"documents"`
	Total     int64  `json:"total"`
	Page      int    `json:"page"`
	PageSize  int    `json:"pageSize"`
}

// List handles GET /api/documents. It returns every document the account
// owns or holds a grant on, newest first.
func (s *Service) List(c *fiber.Ctx) error {
	acct := currentAccount(c)

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	pageSize := c.QueryInt("pageSize", defaultPageSize)
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	docs, total, err := controller.ListAccessible(s.db, acct.ID, pageSize, (page-1)*pageSize)
	if err != nil {
		return handler.Error(c, err)
	}

	resp := ListResponse{
		Documents: make([]View, 0, len(docs)),
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}

	for i := range docs {
		resp.Documents = append(resp.Documents, NewView(&docs[i], acct.ID))
	}

	return c.JSON(resp)
}

// Create handles POST /api/documents. The authenticated account becomes
// the owner.
func (s *Service) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	if err := validate.Struct(&req); err != nil {
		return handler.BadRequest(c, err.Error())
	}

	acct := currentAccount(c)

	status := models.DocumentStatus(req.Status)
	if status == "" {
		status = models.StatusDraft
	}

	doc := &models.Document{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		FileName:    req.FileName,
		FileSize:    req.FileSize,
		OwnerID:     acct.ID,
		Status:      status,
	}

	if err := controller.Create(s.db, doc); err != nil {
		return handler.Error(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(NewView(doc, acct.ID))
}

// Get handles GET /api/documents/:id.
func (s *Service) Get(c *fiber.Ctx) error {
	doc, acct, err := s.load(c, auth.OpRead)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(NewView(doc, acct.ID))
}

// Update handles PATCH /api/documents/:id.
func (s *Service) Update(c *fiber.Ctx) error {
	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	if err := validate.Struct(&req); err != nil {
		return handler.BadRequest(c, err.Error())
	}

	doc, acct, err := s.load(c, auth.OpWrite)
	if err != nil {
		return handler.Error(c, err)
	}

	if req.Title != nil {
		doc.Title = *req.Title
	}

	if req.Description != nil {
		doc.Description = *req.Description
	}

	if req.FileName != nil {
		doc.FileName = *req.FileName
	}

	if req.FileSize != nil {
		doc.FileSize = *req.FileSize
	}

	if req.Status != nil {
		doc.Status = models.DocumentStatus(*req.Status)
	}

	if err := controller.Save(s.db, doc); err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(NewView(doc, acct.ID))
}

// Delete handles DELETE /api/documents/:id. The document's grants go with
// it.
func (s *Service) Delete(c *fiber.Ctx) error {
	doc, _, err := s.load(c, auth.OpDelete)
	if err != nil {
		return handler.Error(c, err)
	}

	if err := controller.Delete(s.db, doc.ID); err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(fiber.Map{"message": "document deleted"})
}

// Share handles PUT /api/documents/:id/shares. Only the owner may manage
// grants; a grant to an existing grantee replaces the level in place. The
// owner cannot grant to themselves.
func (s *Service) Share(c *fiber.Ctx) error {
	var req ShareRequest
	if err := c.BodyParser(&req); err != nil {
		return handler.BadRequest(c, "invalid request body")
	}

	if err := validate.Struct(&req); err != nil {
		return handler.BadRequest(c, err.Error())
	}

	acct := currentAccount(c)

	doc, err := controller.FindByID(s.db, c.Params("id"))
	if err != nil {
		return handler.Error(c, err)
	}

	if doc.OwnerID != acct.ID {
		return handler.Error(c, auth.ErrForbidden)
	}

	if req.GranteeID == acct.ID {
		return handler.BadRequest(c, "owner already has full access")
	}

	if err := controller.UpsertGrant(s.db, doc.ID, req.GranteeID, models.Permission(req.Permission)); err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(fiber.Map{"message": "access granted"})
}

// Unshare handles DELETE /api/documents/:id/shares/:granteeID. Removing
// an absent grant succeeds.
func (s *Service) Unshare(c *fiber.Ctx) error {
	acct := currentAccount(c)

	doc, err := controller.FindByID(s.db, c.Params("id"))
	if err != nil {
		return handler.Error(c, err)
	}

	if doc.OwnerID != acct.ID {
		return handler.Error(c, auth.ErrForbidden)
	}

	granteeID, err := c.ParamsInt("granteeID")
	if err != nil || granteeID < 1 {
		return handler.BadRequest(c, "invalid grantee id")
	}

	if err := controller.RemoveGrant(s.db, doc.ID, uint64(granteeID)); err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(fiber.Map{"message": "access revoked"})
}
