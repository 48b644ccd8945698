package models

import (
	"time"

	"github.com/Eursukkul/campsite-reservation/internal/daterange"
	"github.com/Eursukkul/campsite-reservation/internal/money"
)

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusApproved  ReservationStatus = "approved"
	StatusRejected  ReservationStatus = "rejected"
	StatusCancelled ReservationStatus = "cancelled"
)

// ActiveStatuses are the statuses that hold a site for their date range.
var ActiveStatuses = []ReservationStatus{StatusPending, StatusApproved}

var transitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusCancelled},
}

func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

func (s ReservationStatus) IsActive() bool {
	return s == StatusPending || s == StatusApproved
}

// IsTerminal reports statuses nothing may leave.
func (s ReservationStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentUnpaid              PaymentStatus = "unpaid"
	PaymentDepositPaid         PaymentStatus = "deposit_paid"
	PaymentFullyPaid           PaymentStatus = "fully_paid"
	PaymentPendingVerification PaymentStatus = "pending_verification"
)

// Settled reports the statuses a confirmed payment may land in.
func (p PaymentStatus) Settled() bool {
	return p == PaymentDepositPaid || p == PaymentFullyPaid
}

type PaymentMethod string

const (
	MethodStripe       PaymentMethod = "stripe"
	MethodNaverPay     PaymentMethod = "naver_pay"
	MethodKakaoPay     PaymentMethod = "kakao_pay"
	MethodToss         PaymentMethod = "toss"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodStripe, MethodNaverPay, MethodKakaoPay, MethodToss, MethodBankTransfer:
		return true
	}
	return false
}

// ReferenceColumn is the reservations column holding the provider reference
// for m. Bank transfer has none.
func (m PaymentMethod) ReferenceColumn() string {
	switch m {
	case MethodStripe:
		return "stripe_payment_intent_id"
	case MethodNaverPay:
		return "naverpay_order_id"
	case MethodKakaoPay:
		return "kakaopay_tid"
	case MethodToss:
		return "toss_order_id"
	}
	return ""
}

// ReferenceColumns lists every provider reference column.
var ReferenceColumns = []string{"stripe_payment_intent_id", "naverpay_order_id", "kakaopay_tid", "toss_order_id"}

type Reservation struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	SiteID          uint              `gorm:"not null;index" json:"site_id"`
	UserID          uint              `gorm:"not null;index" json:"user_id"`
	CheckInDate     int64             `gorm:"not null" json:"check_in_date"`
	CheckOutDate    int64             `gorm:"not null" json:"check_out_date"`
	GuestCount      int               `gorm:"not null;default:1" json:"guest_count"`
	GuestName       string            `gorm:"type:varchar(128);not null" json:"guest_name"`
	GuestPhone      string            `gorm:"type:varchar(32);not null" json:"guest_phone"`
	GuestEmail      string            `gorm:"type:varchar(320);not null" json:"guest_email"`
	SpecialRequests *string           `json:"special_requests,omitempty"`
	TotalAmount     money.Amount      `gorm:"not null" json:"total_amount"`
	Status          ReservationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentStatus   PaymentStatus     `gorm:"type:varchar(32);not null;default:'unpaid'" json:"payment_status"`
	PaymentMethod   *PaymentMethod    `gorm:"type:varchar(20)" json:"payment_method,omitempty"`

	StripePaymentIntentID *string `gorm:"type:varchar(256)" json:"stripe_payment_intent_id,omitempty"`
	NaverpayOrderID       *string `gorm:"type:varchar(256)" json:"naverpay_order_id,omitempty"`
	KakaopayTid           *string `gorm:"type:varchar(256)" json:"kakaopay_tid,omitempty"`
	TossOrderID           *string `gorm:"type:varchar(256)" json:"toss_order_id,omitempty"`

	BankTransferProof      *string       `json:"bank_transfer_proof,omitempty"`
	BankTransferAmount     *money.Amount `json:"bank_transfer_amount,omitempty"`
	BankTransferDate       *time.Time    `json:"bank_transfer_date,omitempty"`
	BankTransferApprovedBy *uint         `json:"bank_transfer_approved_by,omitempty"`
	BankTransferApprovedAt *time.Time    `json:"bank_transfer_approved_at,omitempty"`

	AdminNote *string   `json:"admin_note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Site *Site `gorm:"foreignKey:SiteID" json:"site"`
}

func (r *Reservation) Range() daterange.Range {
	return daterange.Range{CheckIn: r.CheckInDate, CheckOut: r.CheckOutDate}
}
