package repository

import (
	"context"

	"github.com/Eursukkul/campsite-reservation/internal/models"
	"github.com/Eursukkul/campsite-reservation/internal/money"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReservationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error
	FindByID(ctx context.Context, id uint) (*models.Reservation, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error)
	FindActiveBySite(ctx context.Context, tx *gorm.DB, siteID uint) ([]models.Reservation, error)
	FindActiveInRange(ctx context.Context, checkIn, checkOut int64) ([]models.Reservation, error)
	FindByUser(ctx context.Context, userID uint) ([]models.Reservation, error)
	FindAll(ctx context.Context) ([]models.Reservation, error)
	FindRecent(ctx context.Context, limit int) ([]models.Reservation, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error
	CountByStatus(ctx context.Context, status *models.ReservationStatus) (int64, error)
	SumByPaymentStatus(ctx context.Context, status models.PaymentStatus) (money.Amount, error)
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error {
	return conn(r.db, tx).WithContext(ctx).Omit("Site").Create(reservation).Error
}

func (r *reservationRepository) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := r.db.WithContext(ctx).Preload("Site").First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// FindActiveBySite returns the site's pending and approved reservations.
func (r *reservationRepository) FindActiveBySite(ctx context.Context, tx *gorm.DB, siteID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := conn(r.db, tx).WithContext(ctx).
		Where("site_id = ? AND status IN ?", siteID, models.ActiveStatuses).
		Order("check_in_date ASC").
		Find(&reservations).Error
	return reservations, err
}

// FindActiveInRange returns active reservations on any site overlapping
// [checkIn, checkOut).
func (r *reservationRepository) FindActiveInRange(ctx context.Context, checkIn, checkOut int64) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Where("status IN ?", models.ActiveStatuses).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn).
		Order("site_id ASC, check_in_date ASC").
		Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepository) FindByUser(ctx context.Context, userID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Site").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepository) FindAll(ctx context.Context) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Site").
		Order("created_at DESC, id DESC").
		Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepository) FindRecent(ctx context.Context, limit int) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Preload("Site").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepository) Update(ctx context.Context, tx *gorm.DB, id uint, fields map[string]any) error {
	res := conn(r.db, tx).WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reservationRepository) CountByStatus(ctx context.Context, status *models.ReservationStatus) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Reservation{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *reservationRepository) SumByPaymentStatus(ctx context.Context, status models.PaymentStatus) (money.Amount, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("payment_status = ?", status).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return money.Amount(total), err
}
