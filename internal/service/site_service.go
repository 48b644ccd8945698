package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Eursukkul/campsite-reservation/internal/apperr"
	"github.com/Eursukkul/campsite-reservation/internal/models"
	"github.com/Eursukkul/campsite-reservation/internal/money"
	"github.com/Eursukkul/campsite-reservation/internal/policy"
	"github.com/Eursukkul/campsite-reservation/internal/repository"
)

// SiteCache holds the public active-site list. pkg/cache.JSONCache
// satisfies it.
type SiteCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, keys ...string) error
}

const activeSitesKey = "sites:active"

type SiteInput struct {
	Name          string
	Description   *string
	Capacity      int
	PricePerNight money.Amount
	ImageURL      *string
	Amenities     *string
	SiteType      models.SiteType
}

// SiteUpdate carries only the fields being changed.
type SiteUpdate struct {
	Name          *string
	Description   *string
	Capacity      *int
	PricePerNight *money.Amount
	ImageURL      *string
	Amenities     *string
	SiteType      *models.SiteType
	IsActive      *bool
}

func (u SiteUpdate) fields() (map[string]any, error) {
	f := map[string]any{}
	if u.Name != nil {
		if strings.TrimSpace(*u.Name) == "" {
			return nil, apperr.Invalid("name must not be empty")
		}
		f["name"] = strings.TrimSpace(*u.Name)
	}
	if u.Description != nil {
		f["description"] = *u.Description
	}
	if u.Capacity != nil {
		if *u.Capacity < 1 {
			return nil, apperr.Invalid("capacity must be at least 1")
		}
		f["capacity"] = *u.Capacity
	}
	if u.PricePerNight != nil {
		if *u.PricePerNight <= 0 {
			return nil, apperr.Invalid("price_per_night must be positive")
		}
		f["price_per_night"] = *u.PricePerNight
	}
	if u.ImageURL != nil {
		f["image_url"] = *u.ImageURL
	}
	if u.Amenities != nil {
		f["amenities"] = *u.Amenities
	}
	if u.SiteType != nil {
		if !u.SiteType.Valid() {
			return nil, apperr.Invalid("unknown site_type %q", *u.SiteType)
		}
		f["site_type"] = *u.SiteType
	}
	if u.IsActive != nil {
		f["is_active"] = *u.IsActive
	}
	return f, nil
}

type SiteService interface {
	List(ctx context.Context) ([]models.Site, error)
	ListAll(ctx context.Context, caller *policy.Identity) ([]models.Site, error)
	Get(ctx context.Context, id uint) (*models.Site, error)
	Create(ctx context.Context, caller *policy.Identity, in SiteInput) (*models.Site, error)
	Update(ctx context.Context, caller *policy.Identity, id uint, in SiteUpdate) error
	Delete(ctx context.Context, caller *policy.Identity, id uint) error
}

type siteService struct {
	repo  repository.SiteRepository
	cache SiteCache
	log   *slog.Logger
}

// NewSiteService accepts a nil cache.
func NewSiteService(repo repository.SiteRepository, cache SiteCache, log *slog.Logger) SiteService {
	return &siteService{repo: repo, cache: cache, log: log}
}

func (s *siteService) List(ctx context.Context) ([]models.Site, error) {
	if s.cache != nil {
		var cached []models.Site
		hit, err := s.cache.Get(ctx, activeSitesKey, &cached)
		if err != nil {
			s.log.Warn("site cache read failed", "error", err)
		}
		if hit {
			return cached, nil
		}
	}

	sites, err := s.repo.FindAll(ctx, true)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, activeSitesKey, sites); err != nil {
			s.log.Warn("site cache write failed", "error", err)
		}
	}
	return sites, nil
}

func (s *siteService) ListAll(ctx context.Context, caller *policy.Identity) ([]models.Site, error) {
	if err := policy.Authorize(caller, policy.SiteListAll, policy.Resource{}); err != nil {
		return nil, err
	}
	sites, err := s.repo.FindAll(ctx, false)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return sites, nil
}

func (s *siteService) Get(ctx context.Context, id uint) (*models.Site, error) {
	site, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrSiteNotFound)
	}
	return site, nil
}

func (s *siteService) Create(ctx context.Context, caller *policy.Identity, in SiteInput) (*models.Site, error) {
	if err := policy.Authorize(caller, policy.SiteCreate, policy.Resource{}); err != nil {
		return nil, err
	}
	switch {
	case strings.TrimSpace(in.Name) == "":
		return nil, apperr.Invalid("name is required")
	case in.Capacity < 1:
		return nil, apperr.Invalid("capacity must be at least 1")
	case in.PricePerNight <= 0:
		return nil, apperr.Invalid("price_per_night must be positive")
	}
	if in.SiteType == "" {
		in.SiteType = models.SiteTent
	}
	if !in.SiteType.Valid() {
		return nil, apperr.Invalid("unknown site_type %q", in.SiteType)
	}

	site := &models.Site{
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Capacity:      in.Capacity,
		PricePerNight: in.PricePerNight,
		ImageURL:      in.ImageURL,
		Amenities:     in.Amenities,
		SiteType:      in.SiteType,
		IsActive:      true,
	}
	if err := s.repo.Create(ctx, site); err != nil {
		return nil, apperr.FromStore(err)
	}
	s.invalidate(ctx)
	s.log.Info("site created", "site_id", site.ID, "admin_id", caller.UserID)
	return site, nil
}

func (s *siteService) Update(ctx context.Context, caller *policy.Identity, id uint, in SiteUpdate) error {
	if err := policy.Authorize(caller, policy.SiteUpdate, policy.Resource{}); err != nil {
		return err
	}
	fields, err := in.fields()
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return apperr.Invalid("nothing to update")
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return notFound(err, ErrSiteNotFound)
	}
	s.invalidate(ctx)
	return nil
}

// Delete deactivates the site. Rows are kept so reservations still resolve.
func (s *siteService) Delete(ctx context.Context, caller *policy.Identity, id uint) error {
	if err := policy.Authorize(caller, policy.SiteDelete, policy.Resource{}); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, map[string]any{"is_active": false}); err != nil {
		return notFound(err, ErrSiteNotFound)
	}
	s.invalidate(ctx)
	s.log.Info("site deactivated", "site_id", id, "admin_id", caller.UserID)
	return nil
}

func (s *siteService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, activeSitesKey); err != nil {
		s.log.Warn("site cache invalidation failed", "error", err)
	}
}
