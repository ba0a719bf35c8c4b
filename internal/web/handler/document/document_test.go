package document_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoDocVault/GoDocVault/internal/auth"
	"github.com/GoDocVault/GoDocVault/internal/config"
	"github.com/GoDocVault/GoDocVault/internal/db/models"
	documenthandler "github.com/GoDocVault/GoDocVault/internal/web/handler/document"
)

type testEnv struct {
	app *fiber.App
	svc *auth.Service
}

func setupTestApp(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Account{},
		&models.SessionToken{},
		&models.Document{},
		&models.Grant{},
	))

	svc := auth.NewService(db)
	app := fiber.New()

	handler := documenthandler.Service{}
	require.NoError(t, handler.Init(app, &config.Config{}, db, svc))

	return &testEnv{app: app, svc: svc}
}

func (e *testEnv) register(t *testing.T, email string) (*models.Account, string) {
	t.Helper()

	acct, token, err := e.svc.Register("Test Person", email, "correct horse", "", "")
	require.NoError(t, err)

	return acct, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}

	return resp, parsed
}

func (e *testEnv) createDocument(t *testing.T, token, title string) string {
	t.Helper()

	resp, body := e.do(t, fiber.MethodPost, "/api/documents", token, fiber.Map{
		"title":    title,
		"fileName": "report.pdf",
		"fileSize": 1024,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	id, _ := body["id"].(string)
	require.NotEmpty(t, id)

	return id
}

func TestCreateAndGet(t *testing.T) {
	env := setupTestApp(t)
	owner, token := env.register(t, "owner@example.com")

	id := env.createDocument(t, token, "quarterly report")

	resp, body := env.do(t, fiber.MethodGet, "/api/documents/"+id, token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "quarterly report", body["title"])
	assert.Equal(t, float64(owner.ID), body["ownerId"])
	assert.Equal(t, "draft", body["status"])
}

func TestRequiresAuthentication(t *testing.T) {
	env := setupTestApp(t)

	resp, _ := env.do(t, fiber.MethodGet, "/api/documents", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetUnknownDocument(t *testing.T) {
	env := setupTestApp(t)
	_, token := env.register(t, "owner@example.com")

	resp, _ := env.do(t, fiber.MethodGet, "/api/documents/no-such-id", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAccessFollowsGrantLevel(t *testing.T) {
	env := setupTestApp(t)
	_, ownerToken := env.register(t, "owner@example.com")
	other, otherToken := env.register(t, "other@example.com")

	id := env.createDocument(t, ownerToken, "shared report")

	// no grant yet
	resp, _ := env.do(t, fiber.MethodGet, "/api/documents/"+id, otherToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// read grant allows reading, not writing
	resp, _ = env.do(t, fiber.MethodPut, "/api/documents/"+id+"/shares", ownerToken, fiber.Map{
		"granteeId":  other.ID,
		"permission": "read",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, fiber.MethodGet, "/api/documents/"+id, otherToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, fiber.MethodPatch, "/api/documents/"+id, otherToken, fiber.Map{
		"title": "renamed",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// regrant to write replaces the level; write covers read but not delete
	resp, _ = env.do(t, fiber.MethodPut, "/api/documents/"+id+"/shares", ownerToken, fiber.Map{
		"granteeId":  other.ID,
		"permission": "write",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, fiber.MethodPatch, "/api/documents/"+id, otherToken, fiber.Map{
		"title": "renamed",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, fiber.MethodDelete, "/api/documents/"+id, otherToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestUnshareRevokesAccess(t *testing.T) {
	env := setupTestApp(t)
	_, ownerToken := env.register(t, "owner@example.com")
	other, otherToken := env.register(t, "other@example.com")

	id := env.createDocument(t, ownerToken, "temporary share")

	resp, _ := env.do(t, fiber.MethodPut, "/api/documents/"+id+"/shares", ownerToken, fiber.Map{
		"granteeId":  other.ID,
		"permission": "read",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, fiber.MethodDelete,
		fmt.Sprintf("/api/documents/%s/shares/%d", id, other.ID), ownerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, fiber.MethodGet, "/api/documents/"+id, otherToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestShareIsOwnerOnly(t *testing.T) {
	env := setupTestApp(t)
	owner, ownerToken := env.register(t, "owner@example.com")
	other, otherToken := env.register(t, "other@example.com")

	id := env.createDocument(t, ownerToken, "locked down")

	// a grantee with delete-level access still cannot manage grants
	resp, _ := env.do(t, fiber.MethodPut, "/api/documents/"+id+"/shares", ownerToken, fiber.Map{
		"granteeId":  other.ID,
		"permission": "delete",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, fiber.MethodPut, "/api/documents/"+id+"/shares", otherToken, fiber.Map{
		"granteeId":  owner.ID,
		"permission": "read",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// granting to the owner is rejected outright
	resp, _ = env.do(t, fiber.MethodPut, "/api/documents/"+id+"/shares", ownerToken, fiber.Map{
		"granteeId":  owner.ID,
		"permission": "read",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGrantsVisibleToOwnerOnly(t *testing.T) {
	env := setupTestApp(t)
	_, ownerToken := env.register(t, "owner@example.com")
	other, otherToken := env.register(t, "other@example.com")

	id := env.createDocument(t, ownerToken, "private shares")

	resp, _ := env.do(t, fiber.MethodPut, "/api/documents/"+id+"/shares", ownerToken, fiber.Map{
		"granteeId":  other.ID,
		"permission": "read",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, body := env.do(t, fiber.MethodGet, "/api/documents/"+id, ownerToken, nil)
	assert.NotEmpty(t, body["grants"])

	_, body = env.do(t, fiber.MethodGet, "/api/documents/"+id, otherToken, nil)
	assert.Empty(t, body["grants"])
}

func TestDeleteDocument(t *testing.T) {
	env := setupTestApp(t)
	_, token := env.register(t, "owner@example.com")

	id := env.createDocument(t, token, "short lived")

	resp, _ := env.do(t, fiber.MethodDelete, "/api/documents/"+id, token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, fiber.MethodGet, "/api/documents/"+id, token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListAccessible(t *testing.T) {
	env := setupTestApp(t)
	_, ownerToken := env.register(t, "owner@example.com")
	other, otherToken := env.register(t, "other@example.com")

	first := env.createDocument(t, ownerToken, "mine")
	env.createDocument(t, ownerToken, "also mine")
	env.createDocument(t, otherToken, "theirs")

	resp, body := env.do(t, fiber.MethodGet, "/api/documents", ownerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["total"])

	// the grant makes the owner's document show up for the grantee
	resp, _ = env.do(t, fiber.MethodPut, "/api/documents/"+first+"/shares", ownerToken, fiber.Map{
		"granteeId":  other.ID,
		"permission": "read",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = env.do(t, fiber.MethodGet, "/api/documents", otherToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["total"])

	resp, body = env.do(t, fiber.MethodGet, "/api/documents?page=1&pageSize=1", otherToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	docs, _ := body["documents"].([]any)
	assert.Len(t, docs, 1)
	assert.Equal(t, float64(2), body["total"])
}

func TestUpdateDocument(t *testing.T) {
	env := setupTestApp(t)
	_, token := env.register(t, "owner@example.com")

	id := env.createDocument(t, token, "draft title")

	resp, body := env.do(t, fiber.MethodPatch, "/api/documents/"+id, token, fiber.Map{
		"title":  "final title",
		"status": "published",
	})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "final title", body["title"])
	assert.Equal(t, "published", body["status"])
	assert.Equal(t, "report.pdf", body["fileName"], "untouched fields keep their value")
}
