package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const (
	SandboxBaseURL = "https://api.sandbox.paypal.com"
	LiveBaseURL    = "https://api.paypal.com"
)

// amountTolerance absorbs rounding noise between what the client quoted and
// what the gateway recorded.
var amountTolerance = decimal.NewFromFloat(0.01)

// PayPalClient verifies captured PayPal orders against the Orders v2 API.
// One synchronous call per checkout, no retry: a slow or failing gateway
// simply fails the verification.
type PayPalClient struct {
	clientID     string
	clientSecret string
	http         *resty.Client
}

func NewPayPalClient(baseURL, clientID, clientSecret string, timeout time.Duration) *PayPalClient {
	return &PayPalClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		http:         resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
	}
}

func (c *PayPalClient) accessToken(ctx context.Context) (string, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return "", fmt.Errorf("paypal client credentials are not set")
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBasicAuth(c.clientID, c.clientSecret).
		SetHeader("Accept", "application/json").
		SetFormData(map[string]string{"grant_type": "client_credentials"}).
		Post("/v1/oauth2/token")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("paypal token request failed with status %d", resp.StatusCode())
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("access token missing in response")
	}
	return body.AccessToken, nil
}

type paypalOrder struct {
	PurchaseUnits []struct {
		Amount struct {
			Value string `json:"value"`
		} `json:"amount"`
	} `json:"purchase_units"`
}

func (c *PayPalClient) Verify(ctx context.Context, paymentRef string, expectedAmount decimal.Decimal) (bool, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return false, err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Accept", "application/json").
		Get("/v2/checkout/orders/" + paymentRef)
	if err != nil {
		return false, err
	}
	if resp.StatusCode() != http.StatusOK {
		return false, fmt.Errorf("paypal order lookup failed with status %d", resp.StatusCode())
	}

	var order paypalOrder
	if err := json.Unmarshal(resp.Body(), &order); err != nil {
		return false, fmt.Errorf("failed to parse order response: %w", err)
	}
	if len(order.PurchaseUnits) == 0 {
		return false, fmt.Errorf("paypal order %s has no purchase units", paymentRef)
	}

	paid, err := decimal.NewFromString(order.PurchaseUnits[0].Amount.Value)
	if err != nil {
		return false, fmt.Errorf("invalid amount in order response: %w", err)
	}

	return paid.Sub(expectedAmount).Abs().LessThan(amountTolerance), nil
}
