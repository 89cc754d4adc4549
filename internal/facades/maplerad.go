package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sbilibin2017/gw-provider-wallet/internal/logger"
)

// APIError is a non-retryable provider rejection (4xx). It surfaces the
// provider's message to the command caller unchanged.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider error (status %d): %s", e.StatusCode, e.Message)
}

// RateLimiter gates outbound provider calls.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// MapleradClient wraps all outbound calls to the provider: auth headers,
// rate limiting before every call, bounded exponential-backoff retry on
// network errors and 5xx. It carries no business semantics.
type MapleradClient struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	limiter    RateLimiter
	maxRetries uint64
}

func NewMapleradClient(baseURL, secretKey string, limiter RateLimiter) *MapleradClient {
	return &MapleradClient{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter:    limiter,
		maxRetries: 2,
	}
}

// envelope is the provider's response wrapper.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *MapleradClient) do(ctx context.Context, method, path string, payload, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal provider request: %w", err)
		}
	}

	attempt := func() error {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return backoff.Permanent(fmt.Errorf("rate limit wait failed: %w", err))
			}
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create provider request: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+c.secretKey)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			logger.Log.Warnw("provider request failed", "method", method, "path", path, "error", err)
			return err
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read provider response: %w", err)
		}

		if resp.StatusCode >= 500 {
			logger.Log.Warnw("provider server error", "method", method, "path", path, "status", resp.StatusCode)
			return fmt.Errorf("provider server error (status %d)", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			var env envelope
			message := http.StatusText(resp.StatusCode)
			if err := json.Unmarshal(respBody, &env); err == nil && env.Message != "" {
				message = env.Message
			}
			logger.Log.Warnw("provider rejected request", "method", method, "path", path, "status", resp.StatusCode, "message", message)
			return backoff.Permanent(&APIError{StatusCode: resp.StatusCode, Message: message})
		}

		if out != nil {
			var env envelope
			if err := json.Unmarshal(respBody, &env); err != nil {
				return backoff.Permanent(fmt.Errorf("failed to decode provider response: %w", err))
			}
			data := env.Data
			if data == nil {
				data = respBody
			}
			if err := json.Unmarshal(data, out); err != nil {
				return backoff.Permanent(fmt.Errorf("failed to decode provider payload: %w", err))
			}
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(attempt, policy); err != nil {
		if permanent, ok := err.(*backoff.PermanentError); ok {
			return permanent.Unwrap()
		}
		return err
	}
	return nil
}

// Customer is the provider's customer resource.
type Customer struct {
	ID string `json:"id"`
}

// CreateCustomer registers a customer with the provider and returns its id.
func (c *MapleradClient) CreateCustomer(ctx context.Context, firstName, lastName, email, country string) (string, error) {
	payload := map[string]string{
		"first_name": firstName,
		"last_name":  lastName,
		"email":      email,
		"country":    country,
	}

	var customer Customer
	if err := c.do(ctx, http.MethodPost, "/customers", payload, &customer); err != nil {
		return "", err
	}
	if customer.ID == "" {
		return "", fmt.Errorf("provider returned no customer id")
	}
	return customer.ID, nil
}

// VirtualAccount is the provider's virtual account resource.
type VirtualAccount struct {
	ID            string `json:"id"`
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
}

// CreateVirtualAccount provisions a deposit account for a customer.
func (c *MapleradClient) CreateVirtualAccount(ctx context.Context, customerID, currency string) (*VirtualAccount, error) {
	payload := map[string]string{
		"customer_id": customerID,
		"currency":    currency,
	}

	var account VirtualAccount
	if err := c.do(ctx, http.MethodPost, "/issuing/virtual_accounts", payload, &account); err != nil {
		return nil, err
	}
	if account.AccountNumber == "" {
		return nil, fmt.Errorf("provider returned no account number")
	}
	return &account, nil
}

// TransferDestination describes the receiving bank account of a transfer.
type TransferDestination struct {
	Type          string `json:"type"`
	BankCode      string `json:"bank_code"`
	AccountNumber string `json:"account_number"`
	Name          string `json:"name"`
}

// TransferRequest is the outbound transfer payload. Amount is in minor units.
type TransferRequest struct {
	CustomerID  string              `json:"customer_id"`
	Amount      int64               `json:"amount"`
	Currency    string              `json:"currency"`
	Reason      string              `json:"reason"`
	Destination TransferDestination `json:"destination"`
}

// Transfer is the provider's transfer resource.
type Transfer struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

// CreateTransfer initiates a withdrawal to an external bank account.
func (c *MapleradClient) CreateTransfer(ctx context.Context, req TransferRequest) (*Transfer, error) {
	var transfer Transfer
	if err := c.do(ctx, http.MethodPost, "/transfers", req, &transfer); err != nil {
		return nil, err
	}
	if transfer.Reference == "" {
		transfer.Reference = transfer.ID
	}
	return &transfer, nil
}

// Card is the provider's issued card resource.
type Card struct {
	ID        string `json:"id"`
	MaskedPan string `json:"masked_pan"`
	Status    string `json:"status"`
}

// CreateCard issues a virtual card for a customer.
func (c *MapleradClient) CreateCard(ctx context.Context, customerID, currency, brand string) (*Card, error) {
	payload := map[string]any{
		"customer_id":  customerID,
		"currency":     currency,
		"type":         "VIRTUAL",
		"auto_approve": true,
		"brand":        brand,
	}

	var card Card
	if err := c.do(ctx, http.MethodPost, "/issuing", payload, &card); err != nil {
		return nil, err
	}
	if card.ID == "" {
		return nil, fmt.Errorf("provider returned no card id")
	}
	return &card, nil
}

// FundCard moves amount (minor units) from the wallet onto a card.
func (c *MapleradClient) FundCard(ctx context.Context, cardID string, amount int64) error {
	payload := map[string]int64{"amount": amount}
	return c.do(ctx, http.MethodPost, "/issuing/"+cardID+"/fund", payload, nil)
}

// WithdrawFromCard moves amount (minor units) from a card back to the wallet.
func (c *MapleradClient) WithdrawFromCard(ctx context.Context, cardID string, amount int64) error {
	payload := map[string]int64{"amount": amount}
	return c.do(ctx, http.MethodPost, "/issuing/"+cardID+"/withdraw", payload, nil)
}

// FreezeCard suspends spending on a card.
func (c *MapleradClient) FreezeCard(ctx context.Context, cardID string) error {
	return c.do(ctx, http.MethodPatch, "/issuing/"+cardID+"/freeze", nil, nil)
}

// UnfreezeCard resumes spending on a card.
func (c *MapleradClient) UnfreezeCard(ctx context.Context, cardID string) error {
	return c.do(ctx, http.MethodPatch, "/issuing/"+cardID+"/unfreeze", nil, nil)
}
