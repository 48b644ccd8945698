package dto

import (
	"github.com/Eursukkul/campsite-reservation/internal/models"
	"github.com/Eursukkul/campsite-reservation/internal/money"
	"github.com/Eursukkul/campsite-reservation/internal/payment"
)

// Dates are UTC millisecond epochs. Money is a decimal string in major units.

type CreateSiteRequest struct {
	Name          string          `json:"name" validate:"required,max=128"`
	Description   *string         `json:"description"`
	Capacity      int             `json:"capacity" validate:"required,gt=0"`
	PricePerNight money.Amount    `json:"price_per_night" validate:"gt=0"`
	ImageURL      *string         `json:"image_url" validate:"omitempty,url"`
	Amenities     *string         `json:"amenities"`
	SiteType      models.SiteType `json:"site_type" validate:"omitempty,oneof=tent caravan glamping cabin"`
}

type UpdateSiteRequest struct {
	Name          *string          `json:"name" validate:"omitempty,max=128"`
	Description   *string          `json:"description"`
	Capacity      *int             `json:"capacity" validate:"omitempty,gt=0"`
	PricePerNight *money.Amount    `json:"price_per_night"`
	ImageURL      *string          `json:"image_url" validate:"omitempty,url"`
	Amenities     *string          `json:"amenities"`
	SiteType      *models.SiteType `json:"site_type" validate:"omitempty,oneof=tent caravan glamping cabin"`
	IsActive      *bool            `json:"is_active"`
}

type AvailabilityQuery struct {
	SiteID   uint  `query:"site_id" validate:"required"`
	CheckIn  int64 `query:"check_in" validate:"required"`
	CheckOut int64 `query:"check_out" validate:"required"`
}

type BrowseQuery struct {
	CheckIn  int64 `query:"check_in" validate:"required"`
	CheckOut int64 `query:"check_out" validate:"required"`
}

type CreateReservationRequest struct {
	SiteID          uint         `json:"site_id" validate:"required"`
	CheckInDate     int64        `json:"check_in_date" validate:"required"`
	CheckOutDate    int64        `json:"check_out_date" validate:"required,gtfield=CheckInDate"`
	GuestCount      int          `json:"guest_count" validate:"required,gt=0"`
	GuestName       string       `json:"guest_name" validate:"required,max=128"`
	GuestPhone      string       `json:"guest_phone" validate:"required,max=32"`
	GuestEmail      string       `json:"guest_email" validate:"required,email"`
	SpecialRequests *string      `json:"special_requests"`
	TotalAmount     money.Amount `json:"total_amount" validate:"gt=0"`
}

type UpdateReservationStatusRequest struct {
	Status    models.ReservationStatus `json:"status" validate:"required,oneof=pending approved rejected cancelled"`
	AdminNote *string                  `json:"admin_note"`
}

type CreateInquiryRequest struct {
	Name    string  `json:"name" validate:"required,max=128"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone"`
	Subject string  `json:"subject" validate:"required,max=256"`
	Message string  `json:"message" validate:"required"`
}

type UpdateInquiryStatusRequest struct {
	Status     models.InquiryStatus `json:"status" validate:"required,oneof=unread read replied"`
	AdminReply *string              `json:"admin_reply"`
}

type ReplyInquiryRequest struct {
	AdminReply string `json:"admin_reply" validate:"required"`
}

type CheckoutRequest struct {
	ReservationID uint                 `json:"reservation_id" validate:"required"`
	PaymentType   payment.Type         `json:"payment_type" validate:"required,oneof=deposit full"`
	PaymentMethod models.PaymentMethod `json:"payment_method" validate:"required,oneof=stripe naver_pay kakao_pay toss bank_transfer"`
}

type UpdatePaymentMethodRequest struct {
	PaymentMethod models.PaymentMethod `json:"payment_method" validate:"required,oneof=stripe naver_pay kakao_pay toss bank_transfer"`
	PaymentID     string               `json:"payment_id"`
}

type SubmitBankTransferRequest struct {
	ReservationID uint         `json:"reservation_id" validate:"required"`
	Amount        money.Amount `json:"amount" validate:"gt=0"`
	Proof         string       `json:"proof" validate:"required"`
}

type ApproveBankTransferRequest struct {
	PaymentStatus models.PaymentStatus `json:"payment_status" validate:"required,oneof=deposit_paid fully_paid"`
}

type RejectBankTransferRequest struct {
	AdminNote string `json:"admin_note"`
}

type UpsertGatewayRequest struct {
	IsEnabled  bool    `json:"is_enabled"`
	APIKey     *string `json:"api_key"`
	APISecret  *string `json:"api_secret"`
	MerchantID *string `json:"merchant_id"`
	WebhookURL *string `json:"webhook_url" validate:"omitempty,url"`
	TestMode   bool    `json:"test_mode"`
	Config     *string `json:"config" validate:"omitempty,json"`
}

type CreateBankAccountRequest struct {
	BankName      string `json:"bank_name" validate:"required,max=128"`
	AccountNumber string `json:"account_number" validate:"required,max=128"`
	AccountHolder string `json:"account_holder" validate:"required,max=128"`
	DisplayOrder  int    `json:"display_order" validate:"gte=0"`
}

type UpdateBankAccountRequest struct {
	BankName      *string `json:"bank_name" validate:"omitempty,max=128"`
	AccountNumber *string `json:"account_number" validate:"omitempty,max=128"`
	AccountHolder *string `json:"account_holder" validate:"omitempty,max=128"`
	IsActive      *bool   `json:"is_active"`
	DisplayOrder  *int    `json:"display_order" validate:"omitempty,gte=0"`
}

type UpdateSettingRequest struct {
	Value       string  `json:"value"`
	Description *string `json:"description"`
}
