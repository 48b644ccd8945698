package models

import "time"

// User mirrors an identity seen on an authenticated request. Accounts are
// owned by the identity provider; this table only records who has signed in.
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name         *string   `json:"name,omitempty"`
	Email        *string   `gorm:"type:varchar(320)" json:"email,omitempty"`
	Role         string    `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	LastSignedIn time.Time `json:"last_signed_in"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
