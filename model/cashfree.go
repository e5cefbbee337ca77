package model

import "encoding/json"

type CashfreeConfig struct {
	BaseURL       string
	ClientId      string
	ClientSecret  string
	APIVersion    string
	WebhookSecret string
	ReturnURL     string
}

type CashfreeCustomerDetails struct {
	CustomerId    string `json:"customer_id"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email,omitempty"`
}

type CashfreeOrderMeta struct {
	ReturnURL string `json:"return_url,omitempty"`
}

type CashfreeOrderRequest struct {
	OrderId         string                  `json:"order_id"`
	OrderAmount     float64                 `json:"order_amount"`
	OrderCurrency   string                  `json:"order_currency"`
	CustomerDetails CashfreeCustomerDetails `json:"customer_details"`
	OrderMeta       CashfreeOrderMeta       `json:"order_meta"`
}

type CashfreeOrderResponse struct {
	CfOrderId        json.Number `json:"cf_order_id"`
	OrderId          string      `json:"order_id"`
	OrderStatus      string      `json:"order_status"` // ACTIVE, PAID, EXPIRED, TERMINATED
	PaymentSessionId string      `json:"payment_session_id"`
	OrderAmount      float64     `json:"order_amount"`
	PaymentStatus    string      `json:"payment_status,omitempty"`
}

// CashfreeWebhookEvent is the raw shape Cashfree posts to the webhook
// endpoint: {type, data: {order: {...}, payment: {...}}}.
type CashfreeWebhookEvent struct {
	Type string `json:"type"` // PAYMENT_SUCCESS_WEBHOOK variants collapse to PAYMENT_SUCCESS / PAYMENT_FAILED
	Data struct {
		Order struct {
			OrderId     string `json:"order_id"`
			OrderStatus string `json:"order_status"`
		} `json:"order"`
		Payment struct {
			PaymentMethod string      `json:"payment_method"`
			CfPaymentId   json.Number `json:"cf_payment_id"`
		} `json:"payment"`
	} `json:"data"`
}
