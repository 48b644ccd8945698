package handler

import (
	"context"
	"io"
	"net/http/httptest"

	"github.com/Eursukkul/campsite-reservation/internal/httputil"
	"github.com/Eursukkul/campsite-reservation/internal/logging"
	"github.com/Eursukkul/campsite-reservation/internal/middleware"
	"github.com/Eursukkul/campsite-reservation/internal/models"
	"github.com/Eursukkul/campsite-reservation/internal/payment"
	"github.com/Eursukkul/campsite-reservation/internal/policy"
	"github.com/Eursukkul/campsite-reservation/internal/service"
	"github.com/labstack/echo/v4"
)

var (
	guest = &policy.Identity{UserID: 7, Role: policy.RoleUser, Name: "Kim"}
	admin = &policy.Identity{UserID: 1, Role: policy.RoleAdmin}
)

// --- Mock ReservationService ---

type mockReservationService struct {
	createFn       func(ctx context.Context, caller *policy.Identity, in service.CreateReservationInput) (*models.Reservation, error)
	updateStatusFn func(ctx context.Context, caller *policy.Identity, id uint, status models.ReservationStatus, note *string) (*models.Reservation, error)
	cancelFn       func(ctx context.Context, caller *policy.Identity, id uint) (*models.Reservation, error)
	getFn          func(ctx context.Context, caller *policy.Identity, id uint) (*models.Reservation, error)
	myListFn       func(ctx context.Context, caller *policy.Identity) ([]models.Reservation, error)
	adminListFn    func(ctx context.Context, caller *policy.Identity) ([]models.Reservation, error)
}

func (m *mockReservationService) Create(ctx context.Context, caller *policy.Identity, in service.CreateReservationInput) (*models.Reservation, error) {
	return m.createFn(ctx, caller, in)
}
func (m *mockReservationService) UpdateStatus(ctx context.Context, caller *policy.Identity, id uint, status models.ReservationStatus, note *string) (*models.Reservation, error) {
	return m.updateStatusFn(ctx, caller, id, status, note)
}
func (m *mockReservationService) Cancel(ctx context.Context, caller *policy.Identity, id uint) (*models.Reservation, error) {
	return m.cancelFn(ctx, caller, id)
}
func (m *mockReservationService) Get(ctx context.Context, caller *policy.Identity, id uint) (*models.Reservation, error) {
	return m.getFn(ctx, caller, id)
}
func (m *mockReservationService) MyList(ctx context.Context, caller *policy.Identity) ([]models.Reservation, error) {
	return m.myListFn(ctx, caller)
}
func (m *mockReservationService) AdminList(ctx context.Context, caller *policy.Identity) ([]models.Reservation, error) {
	return m.adminListFn(ctx, caller)
}

// --- Mock AvailabilityService ---

type mockAvailabilityService struct {
	isAvailableFn func(ctx context.Context, siteID uint, checkIn, checkOut int64, excludeID *uint) (bool, error)
	checkSitesFn  func(ctx context.Context, checkIn, checkOut int64) ([]service.SiteAvailability, error)
}

func (m *mockAvailabilityService) IsAvailable(ctx context.Context, siteID uint, checkIn, checkOut int64, excludeID *uint) (bool, error) {
	return m.isAvailableFn(ctx, siteID, checkIn, checkOut, excludeID)
}
func (m *mockAvailabilityService) CheckSites(ctx context.Context, checkIn, checkOut int64) ([]service.SiteAvailability, error) {
	return m.checkSitesFn(ctx, checkIn, checkOut)
}

// --- Mock SiteService ---

type mockSiteService struct {
	listFn    func(ctx context.Context) ([]models.Site, error)
	listAllFn func(ctx context.Context, caller *policy.Identity) ([]models.Site, error)
	getFn     func(ctx context.Context, id uint) (*models.Site, error)
	createFn  func(ctx context.Context, caller *policy.Identity, in service.SiteInput) (*models.Site, error)
	updateFn  func(ctx context.Context, caller *policy.Identity, id uint, in service.SiteUpdate) error
	deleteFn  func(ctx context.Context, caller *policy.Identity, id uint) error
}

func (m *mockSiteService) List(ctx context.Context) ([]models.Site, error) { return m.listFn(ctx) }
func (m *mockSiteService) ListAll(ctx context.Context, caller *policy.Identity) ([]models.Site, error) {
	return m.listAllFn(ctx, caller)
}
func (m *mockSiteService) Get(ctx context.Context, id uint) (*models.Site, error) { return m.getFn(ctx, id) }
func (m *mockSiteService) Create(ctx context.Context, caller *policy.Identity, in service.SiteInput) (*models.Site, error) {
	return m.createFn(ctx, caller, in)
}
func (m *mockSiteService) Update(ctx context.Context, caller *policy.Identity, id uint, in service.SiteUpdate) error {
	return m.updateFn(ctx, caller, id, in)
}
func (m *mockSiteService) Delete(ctx context.Context, caller *policy.Identity, id uint) error {
	return m.deleteFn(ctx, caller, id)
}

// --- Mock PaymentService ---

type mockPaymentService struct {
	checkoutFn func(ctx context.Context, caller *policy.Identity, in service.CheckoutInput) (*payment.Result, error)
	methodFn   func(ctx context.Context, caller *policy.Identity, id uint, method models.PaymentMethod, ref string) error
	submitFn   func(ctx context.Context, caller *policy.Identity, in service.BankTransferInput) error
	approveFn  func(ctx context.Context, caller *policy.Identity, id uint, status models.PaymentStatus) error
	rejectFn   func(ctx context.Context, caller *policy.Identity, id uint, note string) error
	confirmFn  func(ctx context.Context, c service.GatewayConfirmation) error
}

func (m *mockPaymentService) CreateCheckout(ctx context.Context, caller *policy.Identity, in service.CheckoutInput) (*payment.Result, error) {
	return m.checkoutFn(ctx, caller, in)
}
func (m *mockPaymentService) UpdatePaymentMethod(ctx context.Context, caller *policy.Identity, id uint, method models.PaymentMethod, ref string) error {
	return m.methodFn(ctx, caller, id, method, ref)
}
func (m *mockPaymentService) SubmitBankTransfer(ctx context.Context, caller *policy.Identity, in service.BankTransferInput) error {
	return m.submitFn(ctx, caller, in)
}
func (m *mockPaymentService) ApproveBankTransfer(ctx context.Context, caller *policy.Identity, id uint, status models.PaymentStatus) error {
	return m.approveFn(ctx, caller, id, status)
}
func (m *mockPaymentService) RejectBankTransfer(ctx context.Context, caller *policy.Identity, id uint, note string) error {
	return m.rejectFn(ctx, caller, id, note)
}
func (m *mockPaymentService) ConfirmGatewayPayment(ctx context.Context, c service.GatewayConfirmation) error {
	return m.confirmFn(ctx, c)
}

// --- helpers ---

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = httputil.NewValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler(httputil.DefaultErrorMapper(), logging.Discard())
	return e
}

// newContext builds a context as the auth middleware would leave it.
func newContext(e *echo.Echo, method, target string, body io.Reader, caller *policy.Identity) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if caller != nil {
		middleware.SetIdentity(c, caller)
	}
	return c, rec
}

// apiAs returns the /api/v1 group with caller installed the way the auth
// middleware would; nil stays anonymous.
func apiAs(e *echo.Echo, caller *policy.Identity) *echo.Group {
	return e.Group("/api/v1", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if caller != nil {
				middleware.SetIdentity(c, caller)
			}
			return next(c)
		}
	})
}
