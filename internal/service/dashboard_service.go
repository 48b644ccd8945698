package service

import (
	"context"

	"github.com/Eursukkul/campsite-reservation/internal/apperr"
	"github.com/Eursukkul/campsite-reservation/internal/models"
	"github.com/Eursukkul/campsite-reservation/internal/money"
	"github.com/Eursukkul/campsite-reservation/internal/policy"
	"github.com/Eursukkul/campsite-reservation/internal/repository"
)

const recentLimit = 5

type DashboardStats struct {
	TotalReservations    int64                `json:"total_reservations"`
	PendingReservations  int64                `json:"pending_reservations"`
	ApprovedReservations int64                `json:"approved_reservations"`
	TotalSites           int64                `json:"total_sites"`
	ActiveSites          int64                `json:"active_sites"`
	TotalInquiries       int64                `json:"total_inquiries"`
	UnreadInquiries      int64                `json:"unread_inquiries"`
	TotalUsers           int64                `json:"total_users"`
	TotalRevenue         money.Amount         `json:"total_revenue"`
	RecentReservations   []models.Reservation `json:"recent_reservations"`
	RecentInquiries      []models.Inquiry     `json:"recent_inquiries"`
}

type DashboardService interface {
	Stats(ctx context.Context, caller *policy.Identity) (*DashboardStats, error)
}

type dashboardService struct {
	reservationRepo repository.ReservationRepository
	siteRepo        repository.SiteRepository
	inquiryRepo     repository.InquiryRepository
	userRepo        repository.UserRepository
}

func NewDashboardService(
	reservationRepo repository.ReservationRepository,
	siteRepo repository.SiteRepository,
	inquiryRepo repository.InquiryRepository,
	userRepo repository.UserRepository,
) DashboardService {
	return &dashboardService{
		reservationRepo: reservationRepo,
		siteRepo:        siteRepo,
		inquiryRepo:     inquiryRepo,
		userRepo:        userRepo,
	}
}

// Stats aggregates counts for the admin dashboard. Revenue sums the total of
// every fully paid reservation regardless of its status.
func (s *dashboardService) Stats(ctx context.Context, caller *policy.Identity) (*DashboardStats, error) {
	if err := policy.Authorize(caller, policy.DashboardStats, policy.Resource{}); err != nil {
		return nil, err
	}

	var (
		st       DashboardStats
		err      error
		pending  = models.StatusPending
		approved = models.StatusApproved
		unread   = models.InquiryUnread
	)
	if st.TotalReservations, err = s.reservationRepo.CountByStatus(ctx, nil); err != nil {
		return nil, apperr.FromStore(err)
	}
	if st.PendingReservations, err = s.reservationRepo.CountByStatus(ctx, &pending); err != nil {
		return nil, apperr.FromStore(err)
	}
	if st.ApprovedReservations, err = s.reservationRepo.CountByStatus(ctx, &approved); err != nil {
		return nil, apperr.FromStore(err)
	}
	if st.TotalSites, st.ActiveSites, err = s.siteRepo.Count(ctx); err != nil {
		return nil, apperr.FromStore(err)
	}
	if st.TotalInquiries, err = s.inquiryRepo.CountByStatus(ctx, nil); err != nil {
		return nil, apperr.FromStore(err)
	}
	if st.UnreadInquiries, err = s.inquiryRepo.CountByStatus(ctx, &unread); err != nil {
		return nil, apperr.FromStore(err)
	}
	if st.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, apperr.FromStore(err)
	}
	if st.TotalRevenue, err = s.reservationRepo.SumByPaymentStatus(ctx, models.PaymentFullyPaid); err != nil {
		return nil, apperr.FromStore(err)
	}
	if st.RecentReservations, err = s.reservationRepo.FindRecent(ctx, recentLimit); err != nil {
		return nil, apperr.FromStore(err)
	}
	if st.RecentInquiries, err = s.inquiryRepo.FindRecent(ctx, recentLimit); err != nil {
		return nil, apperr.FromStore(err)
	}
	return &st, nil
}
