package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Eursukkul/campsite-reservation/internal/apperr"
	"github.com/Eursukkul/campsite-reservation/internal/models"
)

// StripeHandler opens a hosted checkout session. The gateway receives the
// amount in minor units; no provider reference is stored until the payment
// is confirmed.
type StripeHandler struct {
	client   CheckoutClient
	currency string
}

func NewStripeHandler(client CheckoutClient, currency string) *StripeHandler {
	if currency == "" {
		currency = "krw"
	}
	return &StripeHandler{client: client, currency: currency}
}

func (h *StripeHandler) Method() models.PaymentMethod { return models.MethodStripe }

func (h *StripeHandler) Initiate(ctx context.Context, req Request) (*Result, error) {
	if h.client == nil {
		return nil, apperr.New(apperr.ErrUnavailable, "card gateway is not configured")
	}
	rid := strconv.FormatUint(uint64(req.Reservation.ID), 10)
	uid := strconv.FormatUint(uint64(req.Customer.UserID), 10)

	name := fmt.Sprintf("예약 전액 결제 (예약 #%s)", rid)
	if req.Type == TypeDeposit {
		name = fmt.Sprintf("예약 보증금 (예약 #%s)", rid)
	}

	session, err := h.client.CreateCheckoutSession(ctx, CheckoutSessionParams{
		ProductName:       name,
		Currency:          h.currency,
		UnitAmount:        req.Amount.Minor(),
		SuccessURL:        req.Origin + "/reservations?payment=success",
		CancelURL:         req.Origin + "/reservations?payment=cancelled",
		CustomerEmail:     req.Customer.Email,
		ClientReferenceID: uid,
		Metadata: map[string]string{
			"user_id":        uid,
			"reservation_id": rid,
			"payment_type":   string(req.Type),
			"customer_email": req.Customer.Email,
			"customer_name":  req.Customer.Name,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUnavailable, err)
	}

	return &Result{
		Method:        models.MethodStripe,
		ReservationID: req.Reservation.ID,
		Amount:        req.Amount,
		URL:           session.URL,
		SessionID:     session.ID,
	}, nil
}
