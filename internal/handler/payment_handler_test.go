package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/Eursukkul/campsite-reservation/internal/apperr"
	"github.com/Eursukkul/campsite-reservation/internal/models"
	"github.com/Eursukkul/campsite-reservation/internal/money"
	"github.com/Eursukkul/campsite-reservation/internal/payment"
	"github.com/Eursukkul/campsite-reservation/internal/policy"
	"github.com/Eursukkul/campsite-reservation/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutSvc(got *service.CheckoutInput) *mockPaymentService {
	return &mockPaymentService{
		checkoutFn: func(_ context.Context, _ *policy.Identity, in service.CheckoutInput) (*payment.Result, error) {
			*got = in
			return &payment.Result{Method: in.Method, ReservationID: in.ReservationID, Amount: money.FromMajor(30000), URL: in.Origin + "/payment/toss?x=1"}, nil
		},
	}
}

func TestCheckout_Handler_UsesOriginHeader(t *testing.T) {
	var got service.CheckoutInput
	e := newEcho()
	c, rec := newContext(e, http.MethodPost, "/api/v1/payments/checkout",
		strings.NewReader(`{"reservation_id":5,"payment_type":"deposit","payment_method":"toss"}`), guest)
	c.Request().Header.Set(echo.HeaderOrigin, "https://camp.example/")

	require.NoError(t, NewPaymentHandler(checkoutSvc(&got), "https://fallback.example").Checkout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://camp.example", got.Origin)
	assert.Equal(t, payment.TypeDeposit, got.Type)
	assert.Equal(t, models.MethodToss, got.Method)
	assert.Contains(t, rec.Body.String(), `"amount":"30000.00"`)
}

func TestCheckout_Handler_FallsBackToPublicOrigin(t *testing.T) {
	var got service.CheckoutInput
	e := newEcho()
	c, _ := newContext(e, http.MethodPost, "/api/v1/payments/checkout",
		strings.NewReader(`{"reservation_id":5,"payment_type":"full","payment_method":"bank_transfer"}`), guest)

	require.NoError(t, NewPaymentHandler(checkoutSvc(&got), "https://fallback.example/").Checkout(c))
	assert.Equal(t, "https://fallback.example", got.Origin)
}

func TestCheckout_Handler_RejectsUnknownMethod(t *testing.T) {
	e := newEcho()
	c, _ := newContext(e, http.MethodPost, "/api/v1/payments/checkout",
		strings.NewReader(`{"reservation_id":5,"payment_type":"full","payment_method":"paypal"}`), guest)

	err := NewPaymentHandler(&mockPaymentService{}, "").Checkout(c)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestSubmitBankTransfer_Handler(t *testing.T) {
	var got service.BankTransferInput
	svc := &mockPaymentService{
		submitFn: func(_ context.Context, _ *policy.Identity, in service.BankTransferInput) error {
			got = in
			return nil
		},
	}
	e := newEcho()
	c, rec := newContext(e, http.MethodPost, "/api/v1/payments/bank-transfer",
		strings.NewReader(`{"reservation_id":5,"amount":"30000","proof":"https://files.example/p.png"}`), guest)

	require.NoError(t, NewPaymentHandler(svc, "").SubmitBankTransfer(c))
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.Equal(t, money.FromMajor(30000), got.Amount)
}

func TestApproveBankTransfer_Handler(t *testing.T) {
	var gotID uint
	var gotStatus models.PaymentStatus
	svc := &mockPaymentService{
		approveFn: func(_ context.Context, _ *policy.Identity, id uint, status models.PaymentStatus) error {
			gotID, gotStatus = id, status
			return nil
		},
	}
	e := newEcho()
	c, _ := newContext(e, http.MethodPost, "/api/v1/admin/payments/5/bank-transfer/approve",
		strings.NewReader(`{"payment_status":"fully_paid"}`), admin)
	c.SetParamNames("reservationId")
	c.SetParamValues("5")

	require.NoError(t, NewPaymentHandler(svc, "").ApproveBankTransfer(c))
	assert.Equal(t, uint(5), gotID)
	assert.Equal(t, models.PaymentFullyPaid, gotStatus)

	c, _ = newContext(e, http.MethodPost, "/api/v1/admin/payments/5/bank-transfer/approve",
		strings.NewReader(`{"payment_status":"unpaid"}`), admin)
	c.SetParamNames("reservationId")
	c.SetParamValues("5")
	assert.ErrorIs(t, NewPaymentHandler(svc, "").ApproveBankTransfer(c), apperr.ErrInvalidInput)
}

func TestRejectBankTransfer_Handler_NoteIsOptional(t *testing.T) {
	gotNote := "unset"
	svc := &mockPaymentService{
		rejectFn: func(_ context.Context, _ *policy.Identity, id uint, note string) error {
			assert.Equal(t, uint(5), id)
			gotNote = note
			return nil
		},
	}
	e := newEcho()
	c, rec := newContext(e, http.MethodPost, "/api/v1/admin/payments/5/bank-transfer/reject", strings.NewReader(`{}`), admin)
	c.SetParamNames("reservationId")
	c.SetParamValues("5")

	require.NoError(t, NewPaymentHandler(svc, "").RejectBankTransfer(c))
	assert.Equal(t, "", gotNote)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}
