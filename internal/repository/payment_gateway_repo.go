package repository

import (
	"context"

	"github.com/Eursukkul/campsite-reservation/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentGatewayRepository interface {
	FindAll(ctx context.Context) ([]models.PaymentGatewaySetting, error)
	FindByProvider(ctx context.Context, provider models.PaymentMethod) (*models.PaymentGatewaySetting, error)
	Upsert(ctx context.Context, setting *models.PaymentGatewaySetting) error
	Delete(ctx context.Context, provider models.PaymentMethod) error
}

type paymentGatewayRepository struct {
	db *gorm.DB
}

func NewPaymentGatewayRepository(db *gorm.DB) PaymentGatewayRepository {
	return &paymentGatewayRepository{db: db}
}

func (r *paymentGatewayRepository) FindAll(ctx context.Context) ([]models.PaymentGatewaySetting, error) {
	var settings []models.PaymentGatewaySetting
	err := r.db.WithContext(ctx).Order("provider ASC").Find(&settings).Error
	return settings, err
}

func (r *paymentGatewayRepository) FindByProvider(ctx context.Context, provider models.PaymentMethod) (*models.PaymentGatewaySetting, error) {
	var setting models.PaymentGatewaySetting
	if err := r.db.WithContext(ctx).Where("provider = ?", provider).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *paymentGatewayRepository) Upsert(ctx context.Context, setting *models.PaymentGatewaySetting) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "provider"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"is_enabled", "api_key", "api_secret", "merchant_id", "webhook_url", "test_mode", "config", "updated_at",
		}),
	}).Create(setting).Error
}

func (r *paymentGatewayRepository) Delete(ctx context.Context, provider models.PaymentMethod) error {
	res := r.db.WithContext(ctx).Where("provider = ?", provider).Delete(&models.PaymentGatewaySetting{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
