package repository

import (
	"context"

	"github.com/Eursukkul/campsite-reservation/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository interface {
	FindByKey(ctx context.Context, key string) (*models.SiteSetting, error)
	FindAll(ctx context.Context) ([]models.SiteSetting, error)
	Upsert(ctx context.Context, setting *models.SiteSetting) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) FindByKey(ctx context.Context, key string) (*models.SiteSetting, error) {
	var setting models.SiteSetting
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) FindAll(ctx context.Context) ([]models.SiteSetting, error) {
	var settings []models.SiteSetting
	err := r.db.WithContext(ctx).Order("key ASC").Find(&settings).Error
	return settings, err
}

func (r *settingRepository) Upsert(ctx context.Context, setting *models.SiteSetting) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "description", "updated_at"}),
	}).Create(setting).Error
}
