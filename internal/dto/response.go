package dto

import (
	"time"

	"github.com/Eursukkul/campsite-reservation/internal/models"
	"github.com/Eursukkul/campsite-reservation/internal/money"
	"github.com/Eursukkul/campsite-reservation/internal/service"
)

type SuccessResponse struct {
	Success bool  `json:"success"`
	ID      *uint `json:"id,omitempty"`
}

func OK() SuccessResponse { return SuccessResponse{Success: true} }

func Created(id uint) SuccessResponse { return SuccessResponse{Success: true, ID: &id} }

type ErrorResponse struct {
	Message string `json:"message"`
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

type SiteAvailabilityResponse struct {
	SiteID        uint            `json:"site_id"`
	Name          string          `json:"name"`
	SiteType      models.SiteType `json:"site_type"`
	Capacity      int             `json:"capacity"`
	PricePerNight money.Amount    `json:"price_per_night"`
	Available     bool            `json:"available"`
}

func ToSiteAvailability(list []service.SiteAvailability) []SiteAvailabilityResponse {
	resp := make([]SiteAvailabilityResponse, len(list))
	for i, a := range list {
		resp[i] = SiteAvailabilityResponse{
			SiteID:        a.Site.ID,
			Name:          a.Site.Name,
			SiteType:      a.Site.SiteType,
			Capacity:      a.Site.Capacity,
			PricePerNight: a.Site.PricePerNight,
			Available:     a.Available,
		}
	}
	return resp
}

type ReservationSite struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	SiteType models.SiteType `json:"site_type"`
	IsActive bool            `json:"is_active"`
}

// ReservationResponse is the guest-facing view. Admin routes return the full
// model, provider references included.
type ReservationResponse struct {
	ID              uint                     `json:"id"`
	SiteID          uint                     `json:"site_id"`
	Site            *ReservationSite         `json:"site,omitempty"`
	CheckInDate     int64                    `json:"check_in_date"`
	CheckOutDate    int64                    `json:"check_out_date"`
	GuestCount      int                      `json:"guest_count"`
	GuestName       string                   `json:"guest_name"`
	GuestPhone      string                   `json:"guest_phone"`
	GuestEmail      string                   `json:"guest_email"`
	SpecialRequests *string                  `json:"special_requests,omitempty"`
	TotalAmount     money.Amount             `json:"total_amount"`
	Status          models.ReservationStatus `json:"status"`
	PaymentStatus   models.PaymentStatus     `json:"payment_status"`
	PaymentMethod   *models.PaymentMethod    `json:"payment_method,omitempty"`
	AdminNote       *string                  `json:"admin_note,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
}

func ToReservationResponse(r *models.Reservation) ReservationResponse {
	resp := ReservationResponse{
		ID:              r.ID,
		SiteID:          r.SiteID,
		CheckInDate:     r.CheckInDate,
		CheckOutDate:    r.CheckOutDate,
		GuestCount:      r.GuestCount,
		GuestName:       r.GuestName,
		GuestPhone:      r.GuestPhone,
		GuestEmail:      r.GuestEmail,
		SpecialRequests: r.SpecialRequests,
		TotalAmount:     r.TotalAmount,
		Status:          r.Status,
		PaymentStatus:   r.PaymentStatus,
		PaymentMethod:   r.PaymentMethod,
		AdminNote:       r.AdminNote,
		CreatedAt:       r.CreatedAt,
	}
	if r.Site != nil {
		resp.Site = &ReservationSite{ID: r.Site.ID, Name: r.Site.Name, SiteType: r.Site.SiteType, IsActive: r.Site.IsActive}
	}
	return resp
}

func ToReservationList(list []models.Reservation) []ReservationResponse {
	resp := make([]ReservationResponse, len(list))
	for i := range list {
		resp[i] = ToReservationResponse(&list[i])
	}
	return resp
}
