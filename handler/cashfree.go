package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cab_booking/config"
	"cab_booking/constants"
	"cab_booking/model"
)

// Cashfree is a thin client for the payment gateway's order API. The
// gateway reports outcomes asynchronously through the webhook endpoint.
type Cashfree struct {
	Config model.CashfreeConfig
	Client *http.Client
}

func NewCashfree() *Cashfree {
	return &Cashfree{
		Config: model.CashfreeConfig{
			BaseURL:       config.ConfigDefault("CASHFREE_API_URL", "https://sandbox.cashfree.com/pg"),
			ClientId:      config.Config("CASHFREE_API_KEY"),
			ClientSecret:  config.Config("CASHFREE_API_SECRET"),
			APIVersion:    config.ConfigDefault("CASHFREE_API_VERSION", "2023-08-01"),
			WebhookSecret: config.Config("CASHFREE_WEBHOOK_SECRET"),
			ReturnURL:     config.Config("CLIENT_URL") + "/bookings",
		},
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (cf *Cashfree) setHeaders(req *http.Request) {
	req.Header.Set("x-api-version", cf.Config.APIVersion)
	req.Header.Set("x-client-id", cf.Config.ClientId)
	req.Header.Set("x-client-secret", cf.Config.ClientSecret)
	req.Header.Set("Content-Type", "application/json")
}

// CreateOrder opens a gateway order. The order id doubles as the
// idempotency key on the gateway side.
func (cf *Cashfree) CreateOrder(order model.CashfreeOrderRequest) (*model.CashfreeOrderResponse, error) {
	payload, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, cf.Config.BaseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	cf.setHeaders(req)

	resp, err := cf.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("cashfree create order failed: status %d: %s", resp.StatusCode, string(body))
	}

	var result model.CashfreeOrderResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetOrder fetches the current gateway state of an order, used by the
// client-polled status fallback when the webhook is delayed.
func (cf *Cashfree) GetOrder(orderId string) (*model.CashfreeOrderResponse, error) {
	req, err := http.NewRequest(http.MethodGet, cf.Config.BaseURL+"/orders/"+orderId, nil)
	if err != nil {
		return nil, err
	}
	cf.setHeaders(req)

	resp, err := cf.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("cashfree get order failed: status %d: %s", resp.StatusCode, string(body))
	}

	var result model.CashfreeOrderResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// VerifyWebhookSignature checks the x-webhook-signature header, an
// HMAC-SHA256 over timestamp+rawBody, base64-encoded.
func (cf *Cashfree) VerifyWebhookSignature(timestamp string, rawBody []byte, signature string) bool {
	if cf.Config.WebhookSecret == "" {
		return true
	}
	h := hmac.New(sha256.New, []byte(cf.Config.WebhookSecret))
	h.Write([]byte(timestamp))
	h.Write(rawBody)
	expected := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// MapPaymentStatus collapses gateway statuses onto the booking enum.
func MapPaymentStatus(status string) string {
	switch status {
	case "PAID", "SUCCESS":
		return constants.PaymentCompleted
	case "FAILED", "CANCELLED", "EXPIRED", "TERMINATED":
		return constants.PaymentFailed
	default:
		return constants.PaymentPending
	}
}
