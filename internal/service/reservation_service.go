package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Eursukkul/campsite-reservation/internal/apperr"
	"github.com/Eursukkul/campsite-reservation/internal/daterange"
	"github.com/Eursukkul/campsite-reservation/internal/models"
	"github.com/Eursukkul/campsite-reservation/internal/money"
	"github.com/Eursukkul/campsite-reservation/internal/notify"
	"github.com/Eursukkul/campsite-reservation/internal/policy"
	"github.com/Eursukkul/campsite-reservation/internal/repository"
	"gorm.io/gorm"
)

type CreateReservationInput struct {
	SiteID          uint
	CheckInDate     int64
	CheckOutDate    int64
	GuestCount      int
	GuestName       string
	GuestPhone      string
	GuestEmail      string
	SpecialRequests *string
	TotalAmount     money.Amount
}

func (in *CreateReservationInput) validate() error {
	if in.SiteID == 0 {
		return apperr.Invalid("site_id is required")
	}
	if in.GuestCount < 1 {
		return apperr.Invalid("guest_count must be at least 1")
	}
	if strings.TrimSpace(in.GuestName) == "" || strings.TrimSpace(in.GuestPhone) == "" {
		return apperr.Invalid("guest name and phone are required")
	}
	if !validEmail(strings.TrimSpace(in.GuestEmail)) {
		return apperr.Invalid("guest_email is not a valid address")
	}
	if in.TotalAmount <= 0 {
		return apperr.Invalid("total_amount must be positive")
	}
	return nil
}

type ReservationService interface {
	Create(ctx context.Context, caller *policy.Identity, in CreateReservationInput) (*models.Reservation, error)
	UpdateStatus(ctx context.Context, caller *policy.Identity, id uint, status models.ReservationStatus, note *string) (*models.Reservation, error)
	Cancel(ctx context.Context, caller *policy.Identity, id uint) (*models.Reservation, error)
	Get(ctx context.Context, caller *policy.Identity, id uint) (*models.Reservation, error)
	MyList(ctx context.Context, caller *policy.Identity) ([]models.Reservation, error)
	AdminList(ctx context.Context, caller *policy.Identity) ([]models.Reservation, error)
}

type reservationService struct {
	tx              repository.Transactor
	reservationRepo repository.ReservationRepository
	siteRepo        repository.SiteRepository
	alerts          *notify.Dispatcher
	log             *slog.Logger
}

func NewReservationService(
	tx repository.Transactor,
	reservationRepo repository.ReservationRepository,
	siteRepo repository.SiteRepository,
	alerts *notify.Dispatcher,
	log *slog.Logger,
) ReservationService {
	return &reservationService{
		tx:              tx,
		reservationRepo: reservationRepo,
		siteRepo:        siteRepo,
		alerts:          alerts,
		log:             log,
	}
}

func (s *reservationService) Create(ctx context.Context, caller *policy.Identity, in CreateReservationInput) (*models.Reservation, error) {
	if err := policy.Authorize(caller, policy.ReservationCreate, policy.Resource{}); err != nil {
		return nil, err
	}
	stay, err := daterange.New(in.CheckInDate, in.CheckOutDate)
	if err != nil {
		return nil, invalidRange(err)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	var result *models.Reservation
	err = s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		// 1. Lock the site row; every writer for this site queues here
		site, err := s.siteRepo.FindByIDForUpdate(ctx, tx, in.SiteID)
		if err != nil {
			return notFound(err, ErrSiteNotFound)
		}
		if !site.IsActive {
			return ErrSiteInactive
		}
		if in.GuestCount > site.Capacity {
			return apperr.Invalid("guest_count %d exceeds site capacity %d", in.GuestCount, site.Capacity)
		}

		// 2. Re-check overlap against committed active reservations
		active, err := s.reservationRepo.FindActiveBySite(ctx, tx, site.ID)
		if err != nil {
			return apperr.FromStore(err)
		}
		if len(conflicts(active, stay, nil)) > 0 {
			return ErrSiteUnavailable
		}

		// 3. Insert; the exclusion constraint rejects anything that slipped past
		reservation := &models.Reservation{
			SiteID:          site.ID,
			UserID:          caller.UserID,
			CheckInDate:     stay.CheckIn,
			CheckOutDate:    stay.CheckOut,
			GuestCount:      in.GuestCount,
			GuestName:       strings.TrimSpace(in.GuestName),
			GuestPhone:      strings.TrimSpace(in.GuestPhone),
			GuestEmail:      strings.TrimSpace(in.GuestEmail),
			SpecialRequests: in.SpecialRequests,
			TotalAmount:     in.TotalAmount,
			Status:          models.StatusPending,
			PaymentStatus:   models.PaymentUnpaid,
		}
		if err := s.reservationRepo.Create(ctx, tx, reservation); err != nil {
			if apperr.IsConstraintViolation(err) {
				return ErrSiteUnavailable
			}
			return apperr.FromStore(err)
		}
		reservation.Site = site
		result = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("reservation created",
		"reservation_id", result.ID, "site_id", result.SiteID, "user_id", result.UserID)
	s.alerts.OwnerAlert(ctx, notify.Message{
		Kind:  notify.KindReservationCreated,
		Title: "새로운 예약이 접수되었습니다",
		Content: fmt.Sprintf("%s님의 예약 (%s ~ %s)",
			result.GuestName, stay.Start().Format("2006-01-02"), stay.End().Format("2006-01-02")),
		SubjectID: result.ID,
	})
	return result, nil
}

// UpdateStatus moves a reservation along the status table. Approval does not
// re-check availability: overlaps were already refused at creation.
func (s *reservationService) UpdateStatus(ctx context.Context, caller *policy.Identity, id uint, status models.ReservationStatus, note *string) (*models.Reservation, error) {
	if err := policy.Authorize(caller, policy.ReservationUpdateStatus, policy.Resource{}); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, apperr.Invalid("unknown status %q", status)
	}

	var result *models.Reservation
	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		reservation, err := s.reservationRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return notFound(err, ErrReservationNotFound)
		}
		fields := map[string]any{"status": status}
		if note != nil {
			fields["admin_note"] = *note
		}
		if err := s.transition(ctx, tx, reservation, status, fields); err != nil {
			return err
		}
		if note != nil {
			reservation.AdminNote = note
		}
		result = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("reservation status updated", "reservation_id", id, "status", status, "admin_id", caller.UserID)
	return result, nil
}

func (s *reservationService) Cancel(ctx context.Context, caller *policy.Identity, id uint) (*models.Reservation, error) {
	if err := policy.RequireIdentity(caller); err != nil {
		return nil, err
	}

	var result *models.Reservation
	err := s.tx.Transaction(ctx, func(tx *gorm.DB) error {
		reservation, err := s.reservationRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return notFound(err, ErrReservationNotFound)
		}
		if err := policy.Authorize(caller, policy.ReservationCancel, policy.Owned(reservation.UserID)); err != nil {
			return err
		}
		if err := s.transition(ctx, tx, reservation, models.StatusCancelled, map[string]any{"status": models.StatusCancelled}); err != nil {
			return err
		}
		result = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("reservation cancelled", "reservation_id", id, "user_id", caller.UserID)
	return result, nil
}

func (s *reservationService) transition(ctx context.Context, tx *gorm.DB, r *models.Reservation, next models.ReservationStatus, fields map[string]any) error {
	if !r.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", apperr.ErrInvalidTransition, r.Status, next)
	}
	if err := s.reservationRepo.Update(ctx, tx, r.ID, fields); err != nil {
		return notFound(err, ErrReservationNotFound)
	}
	r.Status = next
	return nil
}

func (s *reservationService) Get(ctx context.Context, caller *policy.Identity, id uint) (*models.Reservation, error) {
	if err := policy.RequireIdentity(caller); err != nil {
		return nil, err
	}
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrReservationNotFound)
	}
	if err := policy.Authorize(caller, policy.ReservationGet, policy.Owned(reservation.UserID)); err != nil {
		return nil, err
	}
	return reservation, nil
}

func (s *reservationService) MyList(ctx context.Context, caller *policy.Identity) ([]models.Reservation, error) {
	if err := policy.Authorize(caller, policy.ReservationMyList, policy.Resource{}); err != nil {
		return nil, err
	}
	reservations, err := s.reservationRepo.FindByUser(ctx, caller.UserID)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return reservations, nil
}

func (s *reservationService) AdminList(ctx context.Context, caller *policy.Identity) ([]models.Reservation, error) {
	if err := policy.Authorize(caller, policy.ReservationAdminList, policy.Resource{}); err != nil {
		return nil, err
	}
	reservations, err := s.reservationRepo.FindAll(ctx)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return reservations, nil
}
