package controllers

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dltpay/paygate/app/repository"
	"github.com/dltpay/paygate/internal/pkg/relay"
	"github.com/dltpay/paygate/internal/pkg/webhook"
)

// HandleWebhook receives payment provider callbacks. The provider retries
// on non-2xx, so only a lost audit write is allowed to fail the request.
func HandleWebhook(c *fiber.Ctx) error {
	// c.Body() is only valid during the handler, keep our own copy.
	raw := make([]byte, len(c.Body()))
	copy(raw, c.Body())

	var evt webhook.Event
	if err := json.Unmarshal(raw, &evt); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid JSON payload",
		})
	}
	evt.Raw = raw

	svc := webhook.NewService(repository.GetGlobalRepositories(), relay.NewFromEnv())

	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	outcome, err := svc.Process(ctx, &evt)
	if err != nil {
		log.Printf("[Webhook] processing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": outcome.Message(),
	})
}
