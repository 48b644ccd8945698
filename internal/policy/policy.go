// Package policy decides whether a caller may perform an action. Every
// service operation names its Action and asks Authorize before touching
// storage mutations.
package policy

import (
	"fmt"

	"github.com/Eursukkul/campsite-reservation/internal/apperr"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Identity is the authenticated caller. A nil *Identity is an anonymous visitor.
type Identity struct {
	UserID uint
	Role   Role
	Name   string
	Email  string
}

func (i *Identity) IsAdmin() bool { return i != nil && i.Role == RoleAdmin }

type Tier int

const (
	TierPublic Tier = iota
	TierAuthenticated
	TierOwner
	TierOwnerOrAdmin
	TierAdmin
)

type Action string

const (
	SiteList    Action = "sites.list"
	SiteGet     Action = "sites.get"
	SiteListAll Action = "sites.listAll"
	SiteCreate  Action = "sites.create"
	SiteUpdate  Action = "sites.update"
	SiteDelete  Action = "sites.delete"

	ReservationCheckAvailability Action = "reservations.checkAvailability"
	ReservationCreate            Action = "reservations.create"
	ReservationMyList            Action = "reservations.myList"
	ReservationGet               Action = "reservations.get"
	ReservationCancel            Action = "reservations.cancel"
	ReservationAdminList         Action = "reservations.adminList"
	ReservationUpdateStatus      Action = "reservations.updateStatus"

	InquiryCreate       Action = "inquiries.create"
	InquiryAdminList    Action = "inquiries.adminList"
	InquiryGet          Action = "inquiries.get"
	InquiryUpdateStatus Action = "inquiries.updateStatus"
	InquiryReply        Action = "inquiries.reply"

	DashboardStats Action = "dashboard.stats"

	PaymentCheckout        Action = "paymentMethods.createCheckoutWithMethod"
	PaymentUpdateMethod    Action = "paymentMethods.updatePaymentMethod"
	PaymentSubmitTransfer  Action = "paymentMethods.submitBankTransfer"
	PaymentApproveTransfer Action = "paymentMethods.approveBankTransfer"
	PaymentRejectTransfer  Action = "paymentMethods.rejectBankTransfer"

	GatewayList   Action = "paymentGateways.list"
	GatewayGet    Action = "paymentGateways.get"
	GatewayUpsert Action = "paymentGateways.upsert"
	GatewayDelete Action = "paymentGateways.delete"

	BankAccountList    Action = "bankAccounts.list"
	BankAccountListAll Action = "bankAccounts.listAll"
	BankAccountGet     Action = "bankAccounts.get"
	BankAccountCreate  Action = "bankAccounts.create"
	BankAccountUpdate  Action = "bankAccounts.update"
	BankAccountDelete  Action = "bankAccounts.delete"

	SettingGet    Action = "settings.get"
	SettingGetAll Action = "settings.getAll"
	SettingUpdate Action = "settings.update"
)

var rules = map[Action]Tier{
	SiteList:    TierPublic,
	SiteGet:     TierPublic,
	SiteListAll: TierAdmin,
	SiteCreate:  TierAdmin,
	SiteUpdate:  TierAdmin,
	SiteDelete:  TierAdmin,

	ReservationCheckAvailability: TierPublic,
	ReservationCreate:            TierAuthenticated,
	ReservationMyList:            TierAuthenticated,
	ReservationGet:               TierOwnerOrAdmin,
	ReservationCancel:            TierOwner,
	ReservationAdminList:         TierAdmin,
	ReservationUpdateStatus:      TierAdmin,

	InquiryCreate:       TierPublic,
	InquiryAdminList:    TierAdmin,
	InquiryGet:          TierAdmin,
	InquiryUpdateStatus: TierAdmin,
	InquiryReply:        TierAdmin,

	DashboardStats: TierAdmin,

	PaymentCheckout:        TierOwner,
	PaymentUpdateMethod:    TierAdmin,
	PaymentSubmitTransfer:  TierOwner,
	PaymentApproveTransfer: TierAdmin,
	PaymentRejectTransfer:  TierAdmin,

	GatewayList:   TierAdmin,
	GatewayGet:    TierAdmin,
	GatewayUpsert: TierAdmin,
	GatewayDelete: TierAdmin,

	BankAccountList:    TierPublic,
	BankAccountListAll: TierAdmin,
	BankAccountGet:     TierAdmin,
	BankAccountCreate:  TierAdmin,
	BankAccountUpdate:  TierAdmin,
	BankAccountDelete:  TierAdmin,

	SettingGet:    TierPublic,
	SettingGetAll: TierPublic,
	SettingUpdate: TierAdmin,
}

// Resource describes what the action touches. OwnerID is zero for resources
// without an owning user.
type Resource struct {
	OwnerID uint
}

func Owned(ownerID uint) Resource { return Resource{OwnerID: ownerID} }

// TierOf returns the tier an action is declared with. Undeclared actions are
// reported as admin-only.
func TierOf(action Action) Tier {
	if t, ok := rules[action]; ok {
		return t
	}
	return TierAdmin
}

// RequireIdentity fails with apperr.ErrUnauthenticated for anonymous callers.
// Operations that must load a resource before they can Authorize call it
// first, so anonymous callers never learn whether an id exists.
func RequireIdentity(caller *Identity) error {
	if caller == nil || caller.UserID == 0 {
		return fmt.Errorf("%w: sign in required", apperr.ErrUnauthenticated)
	}
	return nil
}

// Precheck decides everything about action that does not depend on the
// resource: anonymous callers fail on protected actions and non-admins fail
// on admin actions. Ownership is left to Authorize.
func Precheck(caller *Identity, action Action) error {
	tier, declared := rules[action]
	if !declared {
		return fmt.Errorf("%w: action %q is not declared", apperr.ErrForbidden, action)
	}
	if tier == TierPublic {
		return nil
	}
	if caller == nil || caller.UserID == 0 {
		return fmt.Errorf("%w: %s requires a signed-in user", apperr.ErrUnauthenticated, action)
	}
	if tier == TierAdmin && !caller.IsAdmin() {
		return fmt.Errorf("%w: %s", apperr.ErrForbidden, action)
	}
	return nil
}

// Authorize returns nil when caller may perform action on res, otherwise an
// error wrapping apperr.ErrUnauthenticated or apperr.ErrForbidden.
func Authorize(caller *Identity, action Action, res Resource) error {
	tier, declared := rules[action]
	if !declared {
		return fmt.Errorf("%w: action %q is not declared", apperr.ErrForbidden, action)
	}
	if tier == TierPublic {
		return nil
	}
	if caller == nil || caller.UserID == 0 {
		return fmt.Errorf("%w: %s requires a signed-in user", apperr.ErrUnauthenticated, action)
	}

	switch tier {
	case TierAuthenticated:
		return nil
	case TierOwner:
		if caller.UserID == res.OwnerID {
			return nil
		}
	case TierOwnerOrAdmin:
		if caller.UserID == res.OwnerID || caller.IsAdmin() {
			return nil
		}
	case TierAdmin:
		if caller.IsAdmin() {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", apperr.ErrForbidden, action)
}
