package models

import "time"

type InquiryStatus string

const (
	InquiryUnread  InquiryStatus = "unread"
	InquiryRead    InquiryStatus = "read"
	InquiryReplied InquiryStatus = "replied"
)

func (s InquiryStatus) Valid() bool {
	return s == InquiryUnread || s == InquiryRead || s == InquiryReplied
}

type Inquiry struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	Name       string        `gorm:"type:varchar(128);not null" json:"name"`
	Email      string        `gorm:"type:varchar(320);not null" json:"email"`
	Phone      *string       `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Subject    string        `gorm:"type:varchar(256);not null" json:"subject"`
	Message    string        `gorm:"not null" json:"message"`
	Status     InquiryStatus `gorm:"type:varchar(20);not null;default:'unread'" json:"status"`
	AdminReply *string       `json:"admin_reply,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}
