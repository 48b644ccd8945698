package models

import "time"

type BankAccount struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	BankName      string    `gorm:"type:varchar(128);not null" json:"bank_name"`
	AccountNumber string    `gorm:"type:varchar(128);not null" json:"account_number"`
	AccountHolder string    `gorm:"type:varchar(128);not null" json:"account_holder"`
	IsActive      bool      `gorm:"not null" json:"is_active"`
	DisplayOrder  int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// All models migrated at startup, in dependency order.
func All() []any {
	return []any{&User{}, &Site{}, &Reservation{}, &Inquiry{}, &SiteSetting{}, &PaymentGatewaySetting{}, &BankAccount{}}
}
