package service

import (
	"errors"
	"fmt"

	"github.com/Eursukkul/campsite-reservation/internal/apperr"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var (
	ErrSiteNotFound        = apperr.New(apperr.ErrNotFound, "site not found")
	ErrReservationNotFound = apperr.New(apperr.ErrNotFound, "reservation not found")
	ErrInquiryNotFound     = apperr.New(apperr.ErrNotFound, "inquiry not found")
	ErrBankAccountNotFound = apperr.New(apperr.ErrNotFound, "bank account not found")
	ErrGatewayNotFound     = apperr.New(apperr.ErrNotFound, "payment gateway setting not found")
	ErrSettingNotFound     = apperr.New(apperr.ErrNotFound, "setting not found")

	ErrSiteUnavailable    = apperr.New(apperr.ErrConflict, "site not available for selected dates")
	ErrSiteInactive       = apperr.New(apperr.ErrConflict, "site is not accepting reservations")
	ErrAlreadyFullyPaid   = apperr.New(apperr.ErrConflict, "reservation is already fully paid")
	ErrTransferInReview   = apperr.New(apperr.ErrConflict, "a bank transfer is awaiting verification")
	ErrPaymentMethodOff   = apperr.New(apperr.ErrInvalidInput, "payment method is disabled")
	ErrNoTransferToReview = apperr.New(apperr.ErrInvalidTransition, "no bank transfer is awaiting verification")
	ErrReservationClosed  = apperr.New(apperr.ErrInvalidTransition, "reservation is rejected or cancelled")
)

// notFound translates gorm's missing-row error into target and classifies
// anything else as a datastore failure.
func notFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return apperr.FromStore(err)
}

// invalidRange keeps daterange.ErrInvalidRange matchable under ErrInvalidInput.
func invalidRange(err error) error {
	return fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
}

var fields = validator.New(validator.WithRequiredStructEnabled())

// validEmail accepts a bare address only; display-name forms are rejected.
func validEmail(addr string) bool {
	return fields.Var(addr, "required,email") == nil
}
