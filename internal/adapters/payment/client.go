package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"

	"tourneyslots/internal/domain"
)

type gatewayClient struct {
	client   *http.Client
	baseURL  string
	keyID    string
	secret   string
	currency string
}

// NewGatewayClient returns a PaymentGateway backed by a Razorpay-style HTTP
// API. Orders are created server side; the client app completes the checkout
// and posts the signed result back for verification.
func NewGatewayClient(client *http.Client, baseURL, keyID, secret, currency string) domain.PaymentGateway {
	if client == nil {
		client = http.DefaultClient
	}
	return &gatewayClient{
		client:   client,
		baseURL:  baseURL,
		keyID:    keyID,
		secret:   secret,
		currency: currency,
	}
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

func (g *gatewayClient) CreateOrder(ctx context.Context, receipt string, amount int64) (string, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:   amount,
		Currency: g.currency,
		Receipt:  receipt,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode order request: %w", err)
	}

	url := g.baseURL + "/v1/orders"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.keyID, g.secret)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach payment gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("payment gateway returned status: %d", resp.StatusCode)
	}

	var order createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return "", fmt.Errorf("failed to decode gateway response: %w", err)
	}
	if order.ID == "" {
		return "", fmt.Errorf("payment gateway returned empty order id")
	}
	return order.ID, nil
}

// VerifySignature checks the HMAC-SHA256 of "orderID|paymentID" keyed with the
// gateway secret, as the gateway computes it on checkout completion.
func (g *gatewayClient) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
