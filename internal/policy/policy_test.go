package policy

import (
	"testing"

	"github.com/Eursukkul/campsite-reservation/internal/apperr"
	"github.com/stretchr/testify/assert"
)

var (
	guest = &Identity{UserID: 7, Role: RoleUser}
	other = &Identity{UserID: 8, Role: RoleUser}
	admin = &Identity{UserID: 1, Role: RoleAdmin}
)

func TestAuthorize_Public(t *testing.T) {
	assert.NoError(t, Authorize(nil, SiteList, Resource{}))
	assert.NoError(t, Authorize(nil, ReservationCheckAvailability, Resource{}))
	assert.NoError(t, Authorize(guest, InquiryCreate, Resource{}))
}

func TestAuthorize_AnonymousOnProtected(t *testing.T) {
	assert.ErrorIs(t, Authorize(nil, ReservationCreate, Resource{}), apperr.ErrUnauthenticated)
	assert.ErrorIs(t, Authorize(&Identity{}, ReservationMyList, Resource{}), apperr.ErrUnauthenticated)
	assert.ErrorIs(t, Authorize(nil, SiteCreate, Resource{}), apperr.ErrUnauthenticated)
}

func TestAuthorize_AdminOnly(t *testing.T) {
	for _, a := range []Action{SiteCreate, SiteUpdate, SiteDelete, ReservationUpdateStatus, DashboardStats, GatewayUpsert, PaymentApproveTransfer} {
		assert.ErrorIs(t, Authorize(guest, a, Resource{}), apperr.ErrForbidden, a)
		assert.NoError(t, Authorize(admin, a, Resource{}), a)
	}
}

func TestAuthorize_Ownership(t *testing.T) {
	res := Owned(guest.UserID)

	assert.NoError(t, Authorize(guest, ReservationCancel, res))
	assert.ErrorIs(t, Authorize(other, ReservationCancel, res), apperr.ErrForbidden)
	// cancel is strictly owner-only; admins use updateStatus
	assert.ErrorIs(t, Authorize(admin, ReservationCancel, res), apperr.ErrForbidden)

	assert.NoError(t, Authorize(admin, ReservationGet, res))
	assert.ErrorIs(t, Authorize(other, ReservationGet, res), apperr.ErrForbidden)

	assert.NoError(t, Authorize(guest, PaymentCheckout, res))
	assert.ErrorIs(t, Authorize(other, PaymentSubmitTransfer, res), apperr.ErrForbidden)
}

func TestAuthorize_UndeclaredActionIsDenied(t *testing.T) {
	assert.ErrorIs(t, Authorize(admin, Action("sites.purge"), Resource{}), apperr.ErrForbidden)
	assert.Equal(t, TierAdmin, TierOf(Action("sites.purge")))
	assert.Equal(t, TierPublic, TierOf(SiteList))
}

func TestEveryActionDeclared(t *testing.T) {
	for a := range rules {
		assert.NotEmpty(t, string(a))
	}
	assert.Len(t, rules, 37)
}

func TestRequireIdentity(t *testing.T) {
	assert.ErrorIs(t, RequireIdentity(nil), apperr.ErrUnauthenticated)
	assert.ErrorIs(t, RequireIdentity(&Identity{Role: RoleAdmin}), apperr.ErrUnauthenticated)
	assert.NoError(t, RequireIdentity(guest))
}

func TestPrecheck(t *testing.T) {
	assert.NoError(t, Precheck(nil, SiteList))
	assert.ErrorIs(t, Precheck(nil, SiteCreate), apperr.ErrUnauthenticated)
	assert.ErrorIs(t, Precheck(guest, SiteCreate), apperr.ErrForbidden)
	assert.NoError(t, Precheck(admin, SiteCreate))

	// ownership needs the loaded resource, so any signed-in caller passes here
	assert.NoError(t, Precheck(other, ReservationCancel))
	assert.NoError(t, Precheck(other, PaymentCheckout))
	assert.ErrorIs(t, Precheck(nil, PaymentCheckout), apperr.ErrUnauthenticated)

	assert.ErrorIs(t, Precheck(admin, Action("sites.purge")), apperr.ErrForbidden)
}
