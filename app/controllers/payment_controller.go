package controllers

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dltpay/paygate/app/models"
	"github.com/dltpay/paygate/app/repository"
	"github.com/dltpay/paygate/internal/pkg/env"
	"github.com/dltpay/paygate/internal/pkg/pending"
	"github.com/dltpay/paygate/internal/pkg/wallet"
	"github.com/dltpay/paygate/internal/pkg/widget"
)

// defaultSCAddress is the settlement contract used for partners without a
// dedicated cors_clients entry.
const defaultSCAddress = "0x69EdA8b0601C34f3BD0fdAEd7B252D2Db133A4A9"

const defaultDailyLimit = 1000

var validate = validator.New()

type initiatePaymentRequest struct {
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	FullName  string  `json:"fullName" validate:"required,max=150"`
	Email     string  `json:"email" validate:"required,email,max=200"`
	GsmNumber string  `json:"gsmNumber" validate:"required,max=30"`
	BirthDate string  `json:"birthDate" validate:"omitempty"`
}

// HandleInitiatePayment prepares a widget session: it provisions a wallet
// for the customer, signs the smart-contract payload and hands back a
// single-use checkout URL.
func HandleInitiatePayment(c *fiber.Ctx) error {
	var req initiatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Missing required fields")
	}
	if err := validate.Struct(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Missing required fields")
	}

	repos := repository.GetGlobalRepositories()
	origin := resolveOrigin(c)

	scAddress := defaultSCAddress
	if client, err := repos.CorsClient.GetByDomain(origin); err == nil && client.SCAddress != "" {
		scAddress = client.SCAddress
	}

	if overDailyLimit(repos.Order, scAddress, req.Amount) {
		return fail(c, fiber.StatusServiceUnavailable, "System is under maintenance. Please try again later.")
	}

	existing, err := repos.User.GetByGsmNumber(req.GsmNumber)
	if err == nil && existing.IsBlacklisted {
		return fail(c, fiber.StatusForbidden, "User is blacklisted")
	}

	walletAddress := ""
	if err == nil {
		walletAddress = existing.WalletAddress
	}
	if walletAddress == "" {
		walletAddress = provisionWallet(c.Context(), req)
	}
	if walletAddress == "" {
		return fail(c, fiber.StatusForbidden, "Wallet could not be provisioned for this user")
	}

	inputData, err := widget.EncodeBuyWithUSDT(req.Amount, walletAddress)
	if err != nil {
		log.Printf("[Payment] encode call data: %v", err)
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	clickID := uuid.NewString()
	signedData, err := widget.SignSmartContractData(widget.SignedData{
		Address:         walletAddress,
		Commodity:       "USDT",
		CommodityAmount: req.Amount,
		Network:         env.GetEnv("NETWORK", "polygon"),
		SCAddress:       scAddress,
		SCInputData:     inputData,
	}, env.GetEnv("PRIVATE_KEY", ""))
	if err != nil {
		log.Printf("[Payment] sign widget payload: %v", err)
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	user := &models.User{
		Email:         &req.Email,
		FullName:      req.FullName,
		GsmNumber:     req.GsmNumber,
		WalletAddress: walletAddress,
		LastClickID:   clickID,
	}
	if err := repos.User.UpsertByEmail(user); err != nil {
		log.Printf("[Payment] upsert user %s: %v", req.Email, err)
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	token := uuid.NewString()
	tx := &pending.Transaction{
		SignedData: signedData,
		WidgetOptions: widget.Options{
			PartnerID: env.GetEnv("WERT_PARTNER_ID", ""),
			ClickID:   clickID,
			Origin:    env.GetEnv("WERT_ORIGIN", "https://widget.wert.io"),
		},
	}
	if err := pending.Default().Put(c.Context(), token, tx); err != nil {
		log.Printf("[Payment] store pending transaction: %v", err)
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}

	checkoutURL := env.GetEnv("CHECKOUT_URL", "http://localhost:5173")
	return c.JSON(fiber.Map{
		"success":    true,
		"paymentUrl": checkoutURL + "?token=" + token,
	})
}

// HandleGetPaymentData hands the signed widget payload to the checkout
// frontend exactly once per token.
func HandleGetPaymentData(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return fail(c, fiber.StatusBadRequest, "Token is missing")
	}

	tx, err := pending.Default().Take(c.Context(), token)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "Payment session not found or has expired")
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"signedData":    tx.SignedData,
		"widgetOptions": tx.WidgetOptions,
	})
}

// overDailyLimit checks whether the request would push today's completed
// volume for the settlement contract over the configured cap. A failing sum
// query blocks initiation rather than risking an uncapped day.
func overDailyLimit(orders repository.OrderRepository, scAddress string, amount float64) bool {
	limit, err := strconv.ParseFloat(env.GetEnv("STAKEHOLDER_DAILY_LIMIT", ""), 64)
	if err != nil || limit <= 0 {
		limit = defaultDailyLimit
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	total, err := orders.SumCompletedCurrencyAmount(scAddress, dayStart, now)
	if err != nil {
		log.Printf("[Payment] daily volume lookup failed: %v", err)
		return true
	}

	return total+amount > limit
}

// provisionWallet registers the customer with the custody provider and
// returns the assigned address, or "" when provisioning failed.
func provisionWallet(ctx context.Context, req initiatePaymentRequest) string {
	firstName, lastName := splitFullName(req.FullName)

	reqCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	customer, err := wallet.NewClientFromEnv().CreateCustomer(reqCtx, wallet.CreateCustomerParams{
		FirstName: firstName,
		LastName:  lastName,
		Email:     req.Email,
		Phone:     req.GsmNumber,
		BirthDate: req.BirthDate,
	})
	if err != nil {
		log.Printf("[Payment] wallet provisioning failed: %v", err)
		return ""
	}
	return customer.WalletAddress()
}

func splitFullName(fullName string) (string, string) {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], parts[0]
	}
	return parts[0], strings.Join(parts[1:], " ")
}
