package repository

import (
	"context"

	"github.com/Eursukkul/campsite-reservation/internal/models"
	"gorm.io/gorm"
)

type BankAccountRepository interface {
	Create(ctx context.Context, account *models.BankAccount) error
	FindByID(ctx context.Context, id uint) (*models.BankAccount, error)
	FindAll(ctx context.Context, activeOnly bool) ([]models.BankAccount, error)
	Update(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
}

type bankAccountRepository struct {
	db *gorm.DB
}

func NewBankAccountRepository(db *gorm.DB) BankAccountRepository {
	return &bankAccountRepository{db: db}
}

func (r *bankAccountRepository) Create(ctx context.Context, account *models.BankAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *bankAccountRepository) FindByID(ctx context.Context, id uint) (*models.BankAccount, error) {
	var account models.BankAccount
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *bankAccountRepository) FindAll(ctx context.Context, activeOnly bool) ([]models.BankAccount, error) {
	var accounts []models.BankAccount
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("display_order ASC, id ASC").Find(&accounts).Error
	return accounts, err
}

func (r *bankAccountRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.BankAccount{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *bankAccountRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.BankAccount{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
