package service

import (
	"context"

	"github.com/Eursukkul/campsite-reservation/internal/apperr"
	"github.com/Eursukkul/campsite-reservation/internal/daterange"
	"github.com/Eursukkul/campsite-reservation/internal/models"
	"github.com/Eursukkul/campsite-reservation/internal/repository"
)

type SiteAvailability struct {
	Site      models.Site `json:"site"`
	Available bool        `json:"available"`
}

type AvailabilityService interface {
	IsAvailable(ctx context.Context, siteID uint, checkIn, checkOut int64, excludeID *uint) (bool, error)
	CheckSites(ctx context.Context, checkIn, checkOut int64) ([]SiteAvailability, error)
}

type availabilityService struct {
	reservationRepo repository.ReservationRepository
	siteRepo        repository.SiteRepository
}

func NewAvailabilityService(reservationRepo repository.ReservationRepository, siteRepo repository.SiteRepository) AvailabilityService {
	return &availabilityService{reservationRepo: reservationRepo, siteRepo: siteRepo}
}

// IsAvailable reports whether [checkIn, checkOut) is free on the site. It
// takes no locks; Create re-checks under the site lock.
func (s *availabilityService) IsAvailable(ctx context.Context, siteID uint, checkIn, checkOut int64, excludeID *uint) (bool, error) {
	r, err := daterange.New(checkIn, checkOut)
	if err != nil {
		return false, invalidRange(err)
	}
	active, err := s.reservationRepo.FindActiveBySite(ctx, nil, siteID)
	if err != nil {
		return false, apperr.FromStore(err)
	}
	return len(conflicts(active, r, excludeID)) == 0, nil
}

// CheckSites answers IsAvailable for every active site with one query.
func (s *availabilityService) CheckSites(ctx context.Context, checkIn, checkOut int64) ([]SiteAvailability, error) {
	r, err := daterange.New(checkIn, checkOut)
	if err != nil {
		return nil, invalidRange(err)
	}
	sites, err := s.siteRepo.FindAll(ctx, true)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	overlapping, err := s.reservationRepo.FindActiveInRange(ctx, r.CheckIn, r.CheckOut)
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	booked := make(map[uint]bool, len(overlapping))
	for i := range overlapping {
		if overlapping[i].Range().Overlaps(r) {
			booked[overlapping[i].SiteID] = true
		}
	}

	out := make([]SiteAvailability, len(sites))
	for i, site := range sites {
		out[i] = SiteAvailability{Site: site, Available: !booked[site.ID]}
	}
	return out, nil
}

// conflicts returns the active reservations overlapping r, skipping excludeID.
func conflicts(reservations []models.Reservation, r daterange.Range, excludeID *uint) []models.Reservation {
	var out []models.Reservation
	for _, res := range reservations {
		if excludeID != nil && res.ID == *excludeID {
			continue
		}
		if !res.Status.IsActive() {
			continue
		}
		if res.Range().Overlaps(r) {
			out = append(out, res)
		}
	}
	return out
}
