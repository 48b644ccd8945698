package repository

import (
	"context"

	"github.com/Eursukkul/campsite-reservation/internal/models"
	"gorm.io/gorm"
)

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	FindByID(ctx context.Context, id uint) (*models.Inquiry, error)
	FindAll(ctx context.Context) ([]models.Inquiry, error)
	FindRecent(ctx context.Context, limit int) ([]models.Inquiry, error)
	Update(ctx context.Context, id uint, fields map[string]any) error
	CountByStatus(ctx context.Context, status *models.InquiryStatus) (int64, error)
}

type inquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

func (r *inquiryRepository) FindByID(ctx context.Context, id uint) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	if err := r.db.WithContext(ctx).First(&inquiry, id).Error; err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepository) FindAll(ctx context.Context) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&inquiries).Error
	return inquiries, err
}

func (r *inquiryRepository) FindRecent(ctx context.Context, limit int) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&inquiries).Error
	return inquiries, err
}

func (r *inquiryRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.Inquiry{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *inquiryRepository) CountByStatus(ctx context.Context, status *models.InquiryStatus) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Inquiry{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	err := q.Count(&count).Error
	return count, err
}
