// Package payment starts a payment for a reservation through one of the
// settlement paths. Each path is a Handler; Router picks one by method.
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/Eursukkul/campsite-reservation/internal/apperr"
	"github.com/Eursukkul/campsite-reservation/internal/models"
	"github.com/Eursukkul/campsite-reservation/internal/money"
)

type Type string

const (
	TypeDeposit Type = "deposit"
	TypeFull    Type = "full"
)

// DepositPercent is the share of the total charged up front.
const DepositPercent = 30

func (t Type) Valid() bool { return t == TypeDeposit || t == TypeFull }

// AmountFor returns what a payment of type t collects on total.
func AmountFor(total money.Amount, t Type) money.Amount {
	if t == TypeDeposit {
		return total.Percent(DepositPercent)
	}
	return total
}

var ErrUnsupportedMethod = errors.New("unsupported payment method")

type Customer struct {
	UserID uint
	Name   string
	Email  string
}

type Request struct {
	Reservation *models.Reservation
	Type        Type
	Amount      money.Amount
	// Origin is the public base URL redirects are built on.
	Origin   string
	Customer Customer
}

// Result is the method-specific payload handed back to the client.
type Result struct {
	Method        models.PaymentMethod `json:"method"`
	ReservationID uint                 `json:"reservation_id"`
	Amount        money.Amount         `json:"amount"`
	URL           string               `json:"url,omitempty"`
	OrderID       string               `json:"order_id,omitempty"`
	SessionID     string               `json:"session_id,omitempty"`
	BankInfo      string               `json:"bank_info,omitempty"`
	BankAccounts  []models.BankAccount `json:"bank_accounts,omitempty"`
}

type Handler interface {
	Method() models.PaymentMethod
	Initiate(ctx context.Context, req Request) (*Result, error)
}

type Router struct {
	handlers map[models.PaymentMethod]Handler
}

func NewRouter(handlers ...Handler) *Router {
	r := &Router{handlers: make(map[models.PaymentMethod]Handler, len(handlers))}
	for _, h := range handlers {
		r.handlers[h.Method()] = h
	}
	return r
}

func (r *Router) Supports(method models.PaymentMethod) bool {
	_, ok := r.handlers[method]
	return ok
}

func (r *Router) Initiate(ctx context.Context, method models.PaymentMethod, req Request) (*Result, error) {
	h, ok := r.handlers[method]
	if !ok {
		return nil, fmt.Errorf("%w: %w %q", apperr.ErrInvalidInput, ErrUnsupportedMethod, method)
	}
	return h.Initiate(ctx, req)
}
