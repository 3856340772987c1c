package controllers

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dltpay/paygate/app/repository"
	"github.com/dltpay/paygate/internal/pkg/security"
)

const adminTokenTTL = time.Hour

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleAdminLogin verifies backoffice credentials and issues a bearer token.
func HandleAdminLogin(c *fiber.Ctx) error {
	var req adminLoginRequest
	if err := c.BodyParser(&req); err != nil || req.Username == "" || req.Password == "" {
		return fail(c, fiber.StatusBadRequest, "Username and password are required")
	}

	admin, err := repository.GetGlobalFactory().GetAdminRepository().GetByUsername(req.Username)
	if err != nil || !admin.CheckPassword(req.Password) {
		return fail(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := security.GenerateAdminToken(admin.ID, admin.Username, adminTokenTTL, security.AdminTokenSecret())
	if err != nil {
		log.Printf("[Admin] token generation failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
	})
}

// HandleAdminListUsers returns customers, newest first.
func HandleAdminListUsers(c *fiber.Ctx) error {
	offset, limit := pagination(c)

	repos := repository.GetGlobalRepositories()
	users, err := repos.User.List(offset, limit)
	if err != nil {
		log.Printf("[Admin] list users failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}
	total, err := repos.User.Count()
	if err != nil {
		log.Printf("[Admin] count users failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"users":   users,
		"total":   total,
	})
}

type blacklistRequest struct {
	UserID uint `json:"userId"`
}

// HandleAdminBlacklistUser flags a customer so further payment initiations
// are rejected.
func HandleAdminBlacklistUser(c *fiber.Ctx) error {
	var req blacklistRequest
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		return fail(c, fiber.StatusBadRequest, "User ID is required")
	}

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByID(req.UserID)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "User not found")
	}

	user.IsBlacklisted = true
	if err := repos.User.Update(user); err != nil {
		log.Printf("[Admin] blacklist user %d failed: %v", req.UserID, err)
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User successfully blacklisted",
	})
}

// HandleAdminListOrders returns orders with their users, newest first.
func HandleAdminListOrders(c *fiber.Ctx) error {
	offset, limit := pagination(c)

	repos := repository.GetGlobalRepositories()
	orders, err := repos.Order.ListWithUser(offset, limit)
	if err != nil {
		log.Printf("[Admin] list orders failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}
	total, err := repos.Order.Count()
	if err != nil {
		log.Printf("[Admin] count orders failed: %v", err)
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"orders":  orders,
		"total":   total,
	})
}

func pagination(c *fiber.Ctx) (int, int) {
	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit <= 0 || limit > 200 {
		limit = 50
	}
	return offset, limit
}
