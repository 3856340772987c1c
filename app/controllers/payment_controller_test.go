package controllers_test

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dltpay/paygate/app/models"
)

const (
	testWalletAddress = "0x8ba1f109551bD432803012645Ac136ddd64DBA72"
	defaultSCAddress  = "0x69EdA8b0601C34f3BD0fdAEd7B252D2Db133A4A9"
)

// newWalletServer fakes the custody provider and points the client env at it.
func newWalletServer(t *testing.T) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"cust-1","walletAddresses":[%q]}`, testWalletAddress)
	}))
	t.Cleanup(server.Close)
	t.Setenv("WALLET_API_URL", server.URL)
}

func setSigningKey(t *testing.T) {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	t.Setenv("PRIVATE_KEY", hex.EncodeToString(crypto.FromECDSA(key)))
}

const initiateBody = `{"amount":5,"fullName":"Jane Doe","email":"jane@example.com","gsmNumber":"+491701234567"}`

func TestInitiatePaymentRequiresFields(t *testing.T) {
	app, _ := setupTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/initiate-payment", `{"amount":5}`, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing required fields", decodeBody(t, resp)["message"])
}

func TestInitiatePaymentRejectsBlacklistedUser(t *testing.T) {
	app, db := setupTestApp(t)
	require.NoError(t, db.Create(&models.User{
		Email:         strPtr("jane@example.com"),
		GsmNumber:     "+491701234567",
		IsBlacklisted: true,
	}).Error)

	resp := doJSON(t, app, http.MethodPost, "/api/initiate-payment", initiateBody, "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "User is blacklisted", decodeBody(t, resp)["message"])
}

func TestInitiatePaymentEnforcesDailyLimit(t *testing.T) {
	app, db := setupTestApp(t)
	t.Setenv("STAKEHOLDER_DAILY_LIMIT", "10")

	completed := time.Now()
	require.NoError(t, db.Create(&models.Order{
		WertOrderID:    "o-done",
		Status:         models.ORDER_COMPLETE,
		SCAddress:      defaultSCAddress,
		CurrencyAmount: 8,
		CompletedAt:    &completed,
	}).Error)

	resp := doJSON(t, app, http.MethodPost, "/api/initiate-payment", initiateBody, "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "System is under maintenance. Please try again later.", decodeBody(t, resp)["message"])
}

func TestInitiateAndFetchPaymentData(t *testing.T) {
	app, db := setupTestApp(t)
	newWalletServer(t)
	setSigningKey(t)

	resp := doJSON(t, app, http.MethodPost, "/api/initiate-payment", initiateBody, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	paymentURL, _ := body["paymentUrl"].(string)
	require.NotEmpty(t, paymentURL)

	parsed, err := url.Parse(paymentURL)
	require.NoError(t, err)
	token := parsed.Query().Get("token")
	require.NotEmpty(t, token)

	// customer row upserted with the provisioned wallet and a click id
	var user models.User
	require.NoError(t, db.Where("email = ?", "jane@example.com").First(&user).Error)
	assert.Equal(t, testWalletAddress, user.WalletAddress)
	assert.NotEmpty(t, user.LastClickID)

	resp = doJSON(t, app, http.MethodGet, "/api/get-payment-data?token="+token, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeBody(t, resp)
	signedData := data["signedData"].(map[string]interface{})
	assert.Equal(t, testWalletAddress, signedData["address"])
	assert.Equal(t, "USDT", signedData["commodity"])
	assert.NotEmpty(t, signedData["signature"])
	options := data["widgetOptions"].(map[string]interface{})
	assert.Equal(t, user.LastClickID, options["click_id"])

	// a session token is single use
	resp = doJSON(t, app, http.MethodGet, "/api/get-payment-data?token="+token, "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInitiatePaymentReusesExistingWallet(t *testing.T) {
	app, db := setupTestApp(t)
	setSigningKey(t)
	// no wallet server configured on purpose: provisioning must not be called
	t.Setenv("WALLET_API_URL", "http://127.0.0.1:1")

	require.NoError(t, db.Create(&models.User{
		Email:         strPtr("jane@example.com"),
		GsmNumber:     "+491701234567",
		WalletAddress: testWalletAddress,
	}).Error)

	resp := doJSON(t, app, http.MethodPost, "/api/initiate-payment", initiateBody, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetPaymentDataValidation(t *testing.T) {
	app, _ := setupTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/get-payment-data", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Token is missing", decodeBody(t, resp)["message"])

	resp = doJSON(t, app, http.MethodGet, "/api/get-payment-data?token=unknown", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Payment session not found or has expired", decodeBody(t, resp)["message"])
}
