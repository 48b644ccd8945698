package models

import (
	"time"

	"github.com/Eursukkul/campsite-reservation/internal/money"
)

type SiteType string

const (
	SiteTent     SiteType = "tent"
	SiteCaravan  SiteType = "caravan"
	SiteGlamping SiteType = "glamping"
	SiteCabin    SiteType = "cabin"
)

func (t SiteType) Valid() bool {
	switch t {
	case SiteTent, SiteCaravan, SiteGlamping, SiteCabin:
		return true
	}
	return false
}

// Site is never hard-deleted; deactivation flips IsActive so reservations
// keep their reference.
type Site struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Name          string       `gorm:"type:varchar(128);not null" json:"name"`
	Description   *string      `json:"description,omitempty"`
	Capacity      int          `gorm:"not null;default:4" json:"capacity"`
	PricePerNight money.Amount `gorm:"not null" json:"price_per_night"`
	ImageURL      *string      `json:"image_url,omitempty"`
	Amenities     *string      `json:"amenities,omitempty"`
	SiteType      SiteType     `gorm:"type:varchar(20);not null;default:'tent'" json:"site_type"`
	IsActive      bool         `gorm:"not null" json:"is_active"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
