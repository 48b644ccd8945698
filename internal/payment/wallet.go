package payment

import (
	"context"
	"net/url"
	"strconv"

	"github.com/Eursukkul/campsite-reservation/internal/models"
	"github.com/google/uuid"
)

// WalletHandler sends the guest to the local bridge page for a redirect
// wallet. Nothing is called on the provider from here.
type WalletHandler struct {
	method models.PaymentMethod
	path   string
	newID  func() string
}

func NewNaverPayHandler() *WalletHandler { return newWallet(models.MethodNaverPay, "/payment/naver") }
func NewKakaoPayHandler() *WalletHandler { return newWallet(models.MethodKakaoPay, "/payment/kakao") }
func NewTossHandler() *WalletHandler     { return newWallet(models.MethodToss, "/payment/toss") }

func newWallet(method models.PaymentMethod, path string) *WalletHandler {
	return &WalletHandler{method: method, path: path, newID: uuid.NewString}
}

func (h *WalletHandler) Method() models.PaymentMethod { return h.method }

func (h *WalletHandler) Initiate(_ context.Context, req Request) (*Result, error) {
	orderID := h.newID()

	q := url.Values{}
	q.Set("reservationId", strconv.FormatUint(uint64(req.Reservation.ID), 10))
	q.Set("amount", req.Amount.MajorString())
	q.Set("type", string(req.Type))
	q.Set("orderId", orderID)

	return &Result{
		Method:        h.method,
		ReservationID: req.Reservation.ID,
		Amount:        req.Amount,
		URL:           req.Origin + h.path + "?" + q.Encode(),
		OrderID:       orderID,
	}, nil
}
