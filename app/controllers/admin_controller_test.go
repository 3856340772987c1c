package controllers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dltpay/paygate/app/models"
	"github.com/dltpay/paygate/app/repository"
	"github.com/dltpay/paygate/internal/pkg/cache"
	"github.com/dltpay/paygate/internal/pkg/router"
)

var testDBSeq atomic.Int64

func strPtr(s string) *string {
	return &s
}

// setupTestApp wires a fiber app with the full API router against an
// in-memory database and cache.
func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:controllers_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.WebhookEvent{},
		&models.Admin{},
		&models.CorsClient{},
	))
	repository.InitializeFactory(db)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	t.Setenv("ADMIN_TOKEN_SECRET", "controller-test-secret")

	app := fiber.New()
	router.InstallRouter(app)
	return app, db
}

func seedAdmin(t *testing.T, db *gorm.DB) *models.Admin {
	t.Helper()

	admin, err := models.CreateAdmin("admin", "password123")
	require.NoError(t, err)
	require.NoError(t, db.Create(admin).Error)
	return admin
}

func loginAdmin(t *testing.T, app *fiber.App) string {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"password123"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, target, body, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestAdminLoginRequiresCredentials(t *testing.T) {
	app, _ := setupTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/admin/login", `{"username":"admin"}`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Username and password are required", decodeBody(t, resp)["message"])
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	app, db := setupTestApp(t)
	seedAdmin(t, db)

	resp := doJSON(t, app, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", decodeBody(t, resp)["message"])
}

func TestAdminRoutesRequireToken(t *testing.T) {
	app, _ := setupTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/admin/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/admin/users", "", "not-a-real-token")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminListUsers(t *testing.T) {
	app, db := setupTestApp(t)
	seedAdmin(t, db)
	require.NoError(t, db.Create(&models.User{Email: strPtr("jane@example.com"), FullName: "Jane Doe"}).Error)

	token := loginAdmin(t, app)
	resp := doJSON(t, app, http.MethodGet, "/api/admin/users", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["total"])
	users := body["users"].([]interface{})
	require.Len(t, users, 1)
	assert.Equal(t, "jane@example.com", users[0].(map[string]interface{})["email"])
}

func TestAdminBlacklistUser(t *testing.T) {
	app, db := setupTestApp(t)
	seedAdmin(t, db)

	user := &models.User{Email: strPtr("jane@example.com"), GsmNumber: "+491701234567"}
	require.NoError(t, db.Create(user).Error)

	token := loginAdmin(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/admin/users/blacklist", `{}`, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/admin/users/blacklist", `{"userId":9999}`, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/admin/users/blacklist",
		fmt.Sprintf(`{"userId":%d}`, user.ID), token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "User successfully blacklisted", decodeBody(t, resp)["message"])

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.True(t, reloaded.IsBlacklisted)
}

func TestAdminListOrdersIncludesUser(t *testing.T) {
	app, db := setupTestApp(t)
	seedAdmin(t, db)

	user := &models.User{Email: strPtr("jane@example.com")}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.Order{
		WertOrderID: "o1",
		Status:      models.ORDER_COMPLETE,
		UserID:      user.ID,
	}).Error)

	token := loginAdmin(t, app)
	resp := doJSON(t, app, http.MethodGet, "/api/admin/orders", "", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	orders := body["orders"].([]interface{})
	require.Len(t, orders, 1)
	order := orders[0].(map[string]interface{})
	assert.Equal(t, "o1", order["wert_order_id"])
	assert.Equal(t, "jane@example.com", order["user"].(map[string]interface{})["email"])
}
