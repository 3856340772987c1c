package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/dltpay/paygate/app/controllers"
	"github.com/dltpay/paygate/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// Payment initiation is rate limited per client. The webhook route is
	// not, so a provider burst never drops events.
	api.Post("/initiate-payment", limiter.New(), controllers.HandleInitiatePayment)
	api.Get("/get-payment-data", controllers.HandleGetPaymentData)
	api.Post("/webhook", controllers.HandleWebhook)

	admin := api.Group("/admin")
	admin.Post("/login", controllers.HandleAdminLogin)
	admin.Get("/users", middleware.RequireAdmin, controllers.HandleAdminListUsers)
	admin.Post("/users/blacklist", middleware.RequireAdmin, controllers.HandleAdminBlacklistUser)
	admin.Get("/orders", middleware.RequireAdmin, controllers.HandleAdminListOrders)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
