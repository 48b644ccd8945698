package repository

import (
	"context"

	"github.com/Eursukkul/campsite-reservation/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SiteRepository interface {
	Create(ctx context.Context, site *models.Site) error
	Update(ctx context.Context, id uint, fields map[string]any) error
	FindByID(ctx context.Context, id uint) (*models.Site, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Site, error)
	FindAll(ctx context.Context, activeOnly bool) ([]models.Site, error)
	Count(ctx context.Context) (total, active int64, err error)
}

type siteRepository struct {
	db *gorm.DB
}

func NewSiteRepository(db *gorm.DB) SiteRepository {
	return &siteRepository{db: db}
}

func (r *siteRepository) Create(ctx context.Context, site *models.Site) error {
	return r.db.WithContext(ctx).Create(site).Error
}

// Update applies fields to an existing site and reports gorm.ErrRecordNotFound
// when no row matched.
func (r *siteRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.Site{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *siteRepository) FindByID(ctx context.Context, id uint) (*models.Site, error) {
	var site models.Site
	if err := r.db.WithContext(ctx).First(&site, id).Error; err != nil {
		return nil, err
	}
	return &site, nil
}

// FindByIDForUpdate locks the site row for the rest of tx. Every reservation
// write for the site goes through this lock, so overlap checks made after it
// see all committed active reservations.
func (r *siteRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Site, error) {
	var site models.Site
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&site, id).Error; err != nil {
		return nil, err
	}
	return &site, nil
}

func (r *siteRepository) FindAll(ctx context.Context, activeOnly bool) ([]models.Site, error) {
	var sites []models.Site
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Order("name ASC, id ASC").Find(&sites).Error; err != nil {
		return nil, err
	}
	return sites, nil
}

func (r *siteRepository) Count(ctx context.Context) (int64, int64, error) {
	var total, active int64
	if err := r.db.WithContext(ctx).Model(&models.Site{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Site{}).Where("is_active = ?", true).Count(&active).Error; err != nil {
		return 0, 0, err
	}
	return total, active, nil
}
