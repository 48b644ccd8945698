package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultStripeAPIBase = "https://api.stripe.com"

type CheckoutSessionParams struct {
	ProductName       string
	Currency          string
	UnitAmount        int64
	SuccessURL        string
	CancelURL         string
	CustomerEmail     string
	ClientReferenceID string
	Metadata          map[string]string
}

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type CheckoutClient interface {
	CreateCheckoutSession(ctx context.Context, p CheckoutSessionParams) (*CheckoutSession, error)
}

type stripeHTTPClient struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewStripeClient(secretKey, baseURL string, timeout time.Duration) CheckoutClient {
	if baseURL == "" {
		baseURL = DefaultStripeAPIBase
	}
	return &stripeHTTPClient{
		secretKey: secretKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: timeout},
	}
}

func (c *stripeHTTPClient) CreateCheckoutSession(ctx context.Context, p CheckoutSessionParams) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", p.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(p.UnitAmount, 10))
	form.Set("line_items[0][price_data][product_data][name]", p.ProductName)
	form.Set("success_url", p.SuccessURL)
	form.Set("cancel_url", p.CancelURL)
	form.Set("client_reference_id", p.ClientReferenceID)
	form.Set("allow_promotion_codes", "true")
	if p.CustomerEmail != "" {
		form.Set("customer_email", p.CustomerEmail)
	}
	for k, v := range p.Metadata {
		form.Set("metadata["+k+"]", v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/checkout/sessions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.secretKey, "")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stripe create session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var body struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		_ = json.Unmarshal(raw, &body)
		return nil, fmt.Errorf("stripe create session failed: %s %s", resp.Status, body.Error.Message)
	}

	var out CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode stripe session: %w", err)
	}
	if out.URL == "" {
		return nil, fmt.Errorf("stripe: session %q has no url", out.ID)
	}
	return &out, nil
}
