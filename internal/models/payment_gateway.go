package models

import "time"

// PaymentGatewaySetting configures one online provider. Bank transfer is
// configured through BankAccount rows instead.
type PaymentGatewaySetting struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	Provider   PaymentMethod `gorm:"type:varchar(20);not null;uniqueIndex" json:"provider"`
	IsEnabled  bool          `gorm:"not null" json:"is_enabled"`
	APIKey     *string       `json:"-"`
	APISecret  *string       `json:"-"`
	MerchantID *string       `gorm:"type:varchar(256)" json:"merchant_id,omitempty"`
	WebhookURL *string       `json:"webhook_url,omitempty"`
	TestMode   bool          `gorm:"not null" json:"test_mode"`
	Config     *string       `json:"config,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func (s *PaymentGatewaySetting) HasCredentials() bool {
	return s.APIKey != nil && *s.APIKey != ""
}

func IsGatewayProvider(m PaymentMethod) bool {
	return m.Valid() && m != MethodBankTransfer
}
