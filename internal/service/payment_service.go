package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Eursukkul/campsite-reservation/internal/apperr"
	"github.com/Eursukkul/campsite-reservation/internal/models"
	"github.com/Eursukkul/campsite-reservation/internal/money"
	"github.com/Eursukkul/campsite-reservation/internal/notify"
	"github.com/Eursukkul/campsite-reservation/internal/payment"
	"github.com/Eursukkul/campsite-reservation/internal/policy"
	"github.com/Eursukkul/campsite-reservation/internal/repository"
	"gorm.io/gorm"
)

type CheckoutInput struct {
	ReservationID uint
	Type          payment.Type
	Method        models.PaymentMethod
	Origin        string
}

type BankTransferInput struct {
	ReservationID uint
	Amount        money.Amount
	Proof         string
}

// GatewayConfirmation is a provider callback saying a payment settled.
type GatewayConfirmation struct {
	ReservationID uint                 `json:"reservation_id"`
	Method        models.PaymentMethod `json:"method"`
	Reference     string               `json:"reference"`
	Type          payment.Type         `json:"payment_type"`
}

type PaymentService interface {
	CreateCheckout(ctx context.Context, caller *policy.Identity, in CheckoutInput) (*payment.Result, error)
	UpdatePaymentMethod(ctx context.Context, caller *policy.Identity, reservationID uint, method models.PaymentMethod, reference string) error
	SubmitBankTransfer(ctx context.Context, caller *policy.Identity, in BankTransferInput) error
	ApproveBankTransfer(ctx context.Context, caller *policy.Identity, reservationID uint, status models.PaymentStatus) error
	RejectBankTransfer(ctx context.Context, caller *policy.Identity, reservationID uint, note string) error
	ConfirmGatewayPayment(ctx context.Context, c GatewayConfirmation) error
}

type paymentService struct {
	tx              repository.Transactor
	reservationRepo repository.ReservationRepository
	gatewayRepo     repository.PaymentGatewayRepository
	router          *payment.Router
	alerts          *notify.Dispatcher
	log             *slog.Logger
	now             func() time.Time
}

func NewPaymentService(
	tx repository.Transactor,
	reservationRepo repository.ReservationRepository,
	gatewayRepo repository.PaymentGatewayRepository,
	router *payment.Router,
	alerts *notify.Dispatcher,
	log *slog.Logger,
) PaymentService {
	return &paymentService{
		tx:              tx,
		reservationRepo: reservationRepo,
		gatewayRepo:     gatewayRepo,
		router:          router,
		alerts:          alerts,
		log:             log,
		now:             time.Now,
	}
}

func (s *paymentService) CreateCheckout(ctx context.Context, caller *policy.Identity, in CheckoutInput) (*payment.Result, error) {
	if err := policy.RequireIdentity(caller); err != nil {
		return nil, err
	}
	if !in.Type.Valid() {
		return nil, apperr.Invalid("payment_type must be deposit or full")
	}
	if !in.Method.Valid() {
		return nil, apperr.Invalid("unknown payment method %q", in.Method)
	}

	reservation, err := s.reservationRepo.FindByID(ctx, in.ReservationID)
	if err != nil {
		return nil, notFound(err, ErrReservationNotFound)
	}
	if err := policy.Authorize(caller, policy.PaymentCheckout, policy.Owned(reservation.UserID)); err != nil {
		return nil, err
	}
	switch {
	case reservation.Status.IsTerminal():
		return nil, ErrReservationClosed
	case reservation.PaymentStatus == models.PaymentFullyPaid:
		return nil, ErrAlreadyFullyPaid
	case reservation.PaymentStatus == models.PaymentPendingVerification:
		return nil, ErrTransferInReview
	}
	if err := s.ensureEnabled(ctx, in.Method); err != nil {
		return nil, err
	}

	amount := payment.AmountFor(reservation.TotalAmount, in.Type)
	result, err := s.router.Initiate(ctx, in.Method, payment.Request{
		Reservation: reservation,
		Type:        in.Type,
		Amount:      amount,
		Origin:      in.Origin,
		Customer:    payment.Customer{UserID: caller.UserID, Name: caller.Name, Email: caller.Email},
	})
	if err != nil {
		s.log.Warn("checkout failed", "reservation_id", reservation.ID, "method", in.Method, "error", err)
		return nil, err
	}
	s.log.Info("checkout started", "reservation_id", reservation.ID, "method", in.Method, "type", in.Type, "amount", amount.String())
	return result, nil
}

// ensureEnabled refuses gateways an admin switched off. Providers without a
// settings row are allowed.
func (s *paymentService) ensureEnabled(ctx context.Context, method models.PaymentMethod) error {
	if !models.IsGatewayProvider(method) {
		return nil
	}
	setting, err := s.gatewayRepo.FindByProvider(ctx, method)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return apperr.FromStore(err)
	}
	if !setting.IsEnabled {
		return fmt.Errorf("%w: %s", ErrPaymentMethodOff, method)
	}
	return nil
}

// referenceFields records method and its provider reference while clearing
// every other provider reference, so at most one is ever populated.
func referenceFields(method models.PaymentMethod, reference string) map[string]any {
	fields := map[string]any{"payment_method": method}
	for _, col := range models.ReferenceColumns {
		fields[col] = nil
	}
	if col := method.ReferenceColumn(); col != "" {
		fields[col] = reference
	}
	return fields
}

func (s *paymentService) UpdatePaymentMethod(ctx context.Context, caller *policy.Identity, reservationID uint, method models.PaymentMethod, reference string) error {
	if err := policy.Authorize(caller, policy.PaymentUpdateMethod, policy.Resource{}); err != nil {
		return err
	}
	if !method.Valid() {
		return apperr.Invalid("unknown payment method %q", method)
	}
	reference = strings.TrimSpace(reference)
	if method.ReferenceColumn() != "" && reference == "" {
		return apperr.Invalid("payment_id is required for %s", method)
	}

	if err := s.reservationRepo.Update(ctx, nil, reservationID, referenceFields(method, reference)); err != nil {
		return notFound(err, ErrReservationNotFound)
	}
	s.log.Info("payment method recorded", "reservation_id", reservationID, "method", method, "admin_id", caller.UserID)
	return nil
}

func (s *paymentService) SubmitBankTransfer(ctx context.Context, caller *policy.Identity, in BankTransferInput) error {
	if err := policy.RequireIdentity(caller); err != nil {
		return err
	}
	if in.Amount <= 0 {
		return apperr.Invalid("amount must be positive")
	}
	proof := strings.TrimSpace(in.Proof)
	if proof == "" {
		return apperr.Invalid("proof is required")
	}

	now := s.now().UTC()
	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		reservation, err := s.reservationRepo.FindByIDForUpdate(ctx, tx, in.ReservationID)
		if err != nil {
			return notFound(err, ErrReservationNotFound)
		}
		if err := policy.Authorize(caller, policy.PaymentSubmitTransfer, policy.Owned(reservation.UserID)); err != nil {
			return err
		}
		if reservation.Status.IsTerminal() {
			return ErrReservationClosed
		}
		if reservation.PaymentStatus == models.PaymentFullyPaid {
			return ErrAlreadyFullyPaid
		}

		fields := referenceFields(models.MethodBankTransfer, "")
		fields["payment_status"] = models.PaymentPendingVerification
		fields["bank_transfer_amount"] = in.Amount
		fields["bank_transfer_proof"] = proof
		fields["bank_transfer_date"] = now
		if err := s.reservationRepo.Update(ctx, tx, reservation.ID, fields); err != nil {
			return notFound(err, ErrReservationNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("bank transfer submitted", "reservation_id", in.ReservationID, "amount", in.Amount.String())
	s.alerts.OwnerAlert(ctx, notify.Message{
		Kind:      notify.KindBankTransferSubmitted,
		Title:     "계좌이체 확인 요청",
		Content:   fmt.Sprintf("예약 #%d - %s님이 계좌이체를 완료했습니다. 금액: %s원", in.ReservationID, caller.Name, in.Amount.MajorString()),
		SubjectID: in.ReservationID,
	})
	return nil
}

// ApproveBankTransfer settles a submitted transfer and approves the
// reservation with it, whatever its status was.
func (s *paymentService) ApproveBankTransfer(ctx context.Context, caller *policy.Identity, reservationID uint, status models.PaymentStatus) error {
	if err := policy.Authorize(caller, policy.PaymentApproveTransfer, policy.Resource{}); err != nil {
		return err
	}
	if !status.Settled() {
		return apperr.Invalid("payment_status must be deposit_paid or fully_paid")
	}

	now := s.now().UTC()
	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		reservation, err := s.reservationRepo.FindByIDForUpdate(ctx, tx, reservationID)
		if err != nil {
			return notFound(err, ErrReservationNotFound)
		}
		if reservation.Status.IsTerminal() {
			return ErrReservationClosed
		}
		if reservation.PaymentStatus != models.PaymentPendingVerification {
			return ErrNoTransferToReview
		}
		return notFound(s.reservationRepo.Update(ctx, tx, reservationID, map[string]any{
			"payment_status":            status,
			"status":                    models.StatusApproved,
			"bank_transfer_approved_by": caller.UserID,
			"bank_transfer_approved_at": now,
		}), ErrReservationNotFound)
	})
	if err != nil {
		return err
	}
	s.log.Info("bank transfer approved", "reservation_id", reservationID, "payment_status", status, "admin_id", caller.UserID)
	return nil
}

func (s *paymentService) RejectBankTransfer(ctx context.Context, caller *policy.Identity, reservationID uint, note string) error {
	if err := policy.Authorize(caller, policy.PaymentRejectTransfer, policy.Resource{}); err != nil {
		return err
	}
	fields := map[string]any{"payment_status": models.PaymentUnpaid}
	// a blank note keeps whatever note the reservation already carries
	if note = strings.TrimSpace(note); note != "" {
		fields["admin_note"] = note
	}

	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		reservation, err := s.reservationRepo.FindByIDForUpdate(ctx, tx, reservationID)
		if err != nil {
			return notFound(err, ErrReservationNotFound)
		}
		if reservation.PaymentStatus != models.PaymentPendingVerification {
			return ErrNoTransferToReview
		}
		return notFound(s.reservationRepo.Update(ctx, tx, reservationID, fields), ErrReservationNotFound)
	})
	if err != nil {
		return err
	}
	s.log.Info("bank transfer rejected", "reservation_id", reservationID, "admin_id", caller.UserID)
	return nil
}

// ConfirmGatewayPayment applies a provider callback. Replaying a callback
// that was already applied is a no-op.
func (s *paymentService) ConfirmGatewayPayment(ctx context.Context, c GatewayConfirmation) error {
	if !models.IsGatewayProvider(c.Method) {
		return apperr.Invalid("method %q is not a gateway", c.Method)
	}
	if !c.Type.Valid() {
		return apperr.Invalid("payment_type must be deposit or full")
	}
	if strings.TrimSpace(c.Reference) == "" {
		return apperr.Invalid("reference is required")
	}
	paid := models.PaymentFullyPaid
	if c.Type == payment.TypeDeposit {
		paid = models.PaymentDepositPaid
	}

	return s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		reservation, err := s.reservationRepo.FindByIDForUpdate(ctx, tx, c.ReservationID)
		if err != nil {
			return notFound(err, ErrReservationNotFound)
		}
		if reservation.PaymentStatus == paid && reservation.PaymentMethod != nil && *reservation.PaymentMethod == c.Method {
			return nil
		}
		if reservation.Status.IsTerminal() {
			return ErrReservationClosed
		}
		if reservation.PaymentStatus == models.PaymentFullyPaid {
			return ErrAlreadyFullyPaid
		}

		fields := referenceFields(c.Method, c.Reference)
		fields["payment_status"] = paid
		if err := s.reservationRepo.Update(ctx, tx, reservation.ID, fields); err != nil {
			return notFound(err, ErrReservationNotFound)
		}
		s.log.Info("gateway payment confirmed", "reservation_id", reservation.ID, "method", c.Method, "payment_status", paid)
		return nil
	})
}
