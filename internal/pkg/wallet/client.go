// Package wallet talks to the custodial wallet provider that provisions a
// crypto address for each verified customer.
package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dltpay/paygate/internal/pkg/env"
)

const defaultBaseURL = "https://wallet.swipelux.com"

// Client is an API client for the wallet provider.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClientFromEnv builds a client from WALLET_API_KEY and WALLET_API_URL.
func NewClientFromEnv() *Client {
	return &Client{
		APIKey:  env.GetEnv("WALLET_API_KEY", ""),
		BaseURL: env.GetEnv("WALLET_API_URL", defaultBaseURL),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreateCustomerParams is the customer record sent to the provider.
type CreateCustomerParams struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birthDate,omitempty"`
}

// CustomerResponse is the provider's answer to a customer creation.
type CustomerResponse struct {
	ID              string   `json:"id"`
	WalletAddresses []string `json:"walletAddresses"`
}

// WalletAddress returns the first provisioned address, or "" when the
// provider has not assigned one yet.
func (r *CustomerResponse) WalletAddress() string {
	if len(r.WalletAddresses) == 0 {
		return ""
	}
	return r.WalletAddresses[0]
}

// CreateCustomer registers the customer with the provider and returns the
// provisioning result.
func (c *Client) CreateCustomer(ctx context.Context, params CreateCustomerParams) (*CustomerResponse, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal customer params: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/customers", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build customer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wallet provider request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read wallet provider response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("wallet provider returned %d: %s", resp.StatusCode, string(payload))
	}

	var customer CustomerResponse
	if err := json.Unmarshal(payload, &customer); err != nil {
		return nil, fmt.Errorf("decode wallet provider response: %w", err)
	}
	return &customer, nil
}
