package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Eursukkul/campsite-reservation/internal/logging"
	"github.com/Eursukkul/campsite-reservation/internal/models"
	"github.com/Eursukkul/campsite-reservation/internal/money"
	"github.com/Eursukkul/campsite-reservation/internal/notify"
	"github.com/Eursukkul/campsite-reservation/internal/policy"
	"gorm.io/gorm"
)

var (
	admin = &policy.Identity{UserID: 1, Role: policy.RoleAdmin, Name: "Admin"}
	guest = &policy.Identity{UserID: 7, Role: policy.RoleUser, Name: "Kim", Email: "kim@example.com"}
	other = &policy.Identity{UserID: 8, Role: policy.RoleUser, Name: "Lee"}
)

// serialTx stands in for a database transaction: one fn runs at a time, so
// the row lock the real implementation takes is modelled by the mutex.
type serialTx struct {
	mu sync.Mutex
}

func (t *serialTx) Transaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(nil)
}

type memDB struct {
	mu           sync.Mutex
	nextID       uint
	sites        map[uint]models.Site
	reservations map[uint]models.Reservation
	inquiries    map[uint]models.Inquiry
	users        map[uint]models.User
	settings     map[string]models.SiteSetting
	gateways     map[models.PaymentMethod]models.PaymentGatewaySetting
	accounts     map[uint]models.BankAccount
}

func newMemDB() *memDB {
	return &memDB{
		sites:        map[uint]models.Site{},
		reservations: map[uint]models.Reservation{},
		inquiries:    map[uint]models.Inquiry{},
		users:        map[uint]models.User{},
		settings:     map[string]models.SiteSetting{},
		gateways:     map[models.PaymentMethod]models.PaymentGatewaySetting{},
		accounts:     map[uint]models.BankAccount{},
	}
}

func (db *memDB) id() uint {
	db.nextID++
	return db.nextID
}

func optString(v any) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

// --- sites

type memSiteRepo struct{ db *memDB }

func (r memSiteRepo) Create(_ context.Context, site *models.Site) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	site.ID = r.db.id()
	site.CreatedAt = time.Now()
	r.db.sites[site.ID] = *site
	return nil
}

func (r memSiteRepo) Update(_ context.Context, id uint, fields map[string]any) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.sites[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			s.Name = v.(string)
		case "description":
			s.Description = optString(v)
		case "capacity":
			s.Capacity = v.(int)
		case "price_per_night":
			s.PricePerNight = v.(money.Amount)
		case "image_url":
			s.ImageURL = optString(v)
		case "amenities":
			s.Amenities = optString(v)
		case "site_type":
			s.SiteType = v.(models.SiteType)
		case "is_active":
			s.IsActive = v.(bool)
		default:
			panic("unknown site column " + k)
		}
	}
	r.db.sites[id] = s
	return nil
}

func (r memSiteRepo) FindByID(_ context.Context, id uint) (*models.Site, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.sites[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (r memSiteRepo) FindByIDForUpdate(ctx context.Context, _ *gorm.DB, id uint) (*models.Site, error) {
	return r.FindByID(ctx, id)
}

func (r memSiteRepo) FindAll(_ context.Context, activeOnly bool) ([]models.Site, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Site
	for _, s := range r.db.sites {
		if activeOnly && !s.IsActive {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memSiteRepo) Count(_ context.Context) (int64, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var active int64
	for _, s := range r.db.sites {
		if s.IsActive {
			active++
		}
	}
	return int64(len(r.db.sites)), active, nil
}

// --- reservations

type memReservationRepo struct{ db *memDB }

func (r memReservationRepo) Create(_ context.Context, _ *gorm.DB, res *models.Reservation) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	res.ID = r.db.id()
	res.CreatedAt = time.Now()
	stored := *res
	stored.Site = nil
	r.db.reservations[res.ID] = stored
	return nil
}

func (r memReservationRepo) withSite(res models.Reservation) models.Reservation {
	if s, ok := r.db.sites[res.SiteID]; ok {
		res.Site = &s
	}
	return res
}

func (r memReservationRepo) FindByID(_ context.Context, id uint) (*models.Reservation, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	res, ok := r.db.reservations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	res = r.withSite(res)
	return &res, nil
}

func (r memReservationRepo) FindByIDForUpdate(_ context.Context, _ *gorm.DB, id uint) (*models.Reservation, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	res, ok := r.db.reservations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &res, nil
}

func (r memReservationRepo) filter(keep func(models.Reservation) bool) []models.Reservation {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Reservation
	for _, res := range r.db.reservations {
		if keep(res) {
			out = append(out, r.withSite(res))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r memReservationRepo) FindActiveBySite(_ context.Context, _ *gorm.DB, siteID uint) ([]models.Reservation, error) {
	return r.filter(func(res models.Reservation) bool {
		return res.SiteID == siteID && res.Status.IsActive()
	}), nil
}

func (r memReservationRepo) FindActiveInRange(_ context.Context, checkIn, checkOut int64) ([]models.Reservation, error) {
	return r.filter(func(res models.Reservation) bool {
		return res.Status.IsActive() && res.CheckInDate < checkOut && res.CheckOutDate > checkIn
	}), nil
}

func (r memReservationRepo) FindByUser(_ context.Context, userID uint) ([]models.Reservation, error) {
	return r.filter(func(res models.Reservation) bool { return res.UserID == userID }), nil
}

func (r memReservationRepo) FindAll(context.Context) ([]models.Reservation, error) {
	return r.filter(func(models.Reservation) bool { return true }), nil
}

func (r memReservationRepo) FindRecent(ctx context.Context, limit int) ([]models.Reservation, error) {
	all, _ := r.FindAll(ctx)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r memReservationRepo) Update(_ context.Context, _ *gorm.DB, id uint, fields map[string]any) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	res, ok := r.db.reservations[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "status":
			res.Status = v.(models.ReservationStatus)
		case "payment_status":
			res.PaymentStatus = v.(models.PaymentStatus)
		case "payment_method":
			m := v.(models.PaymentMethod)
			res.PaymentMethod = &m
		case "stripe_payment_intent_id":
			res.StripePaymentIntentID = optString(v)
		case "naverpay_order_id":
			res.NaverpayOrderID = optString(v)
		case "kakaopay_tid":
			res.KakaopayTid = optString(v)
		case "toss_order_id":
			res.TossOrderID = optString(v)
		case "admin_note":
			res.AdminNote = optString(v)
		case "bank_transfer_amount":
			a := v.(money.Amount)
			res.BankTransferAmount = &a
		case "bank_transfer_proof":
			res.BankTransferProof = optString(v)
		case "bank_transfer_date":
			t := v.(time.Time)
			res.BankTransferDate = &t
		case "bank_transfer_approved_by":
			u := v.(uint)
			res.BankTransferApprovedBy = &u
		case "bank_transfer_approved_at":
			t := v.(time.Time)
			res.BankTransferApprovedAt = &t
		default:
			panic("unknown reservation column " + k)
		}
	}
	r.db.reservations[id] = res
	return nil
}

func (r memReservationRepo) CountByStatus(_ context.Context, status *models.ReservationStatus) (int64, error) {
	return int64(len(r.filter(func(res models.Reservation) bool {
		return status == nil || res.Status == *status
	}))), nil
}

func (r memReservationRepo) SumByPaymentStatus(_ context.Context, status models.PaymentStatus) (money.Amount, error) {
	var sum money.Amount
	for _, res := range r.filter(func(res models.Reservation) bool { return res.PaymentStatus == status }) {
		sum += res.TotalAmount
	}
	return sum, nil
}

// --- inquiries

type memInquiryRepo struct{ db *memDB }

func (r memInquiryRepo) Create(_ context.Context, in *models.Inquiry) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	in.ID = r.db.id()
	r.db.inquiries[in.ID] = *in
	return nil
}

func (r memInquiryRepo) FindByID(_ context.Context, id uint) (*models.Inquiry, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	in, ok := r.db.inquiries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &in, nil
}

func (r memInquiryRepo) FindAll(context.Context) ([]models.Inquiry, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Inquiry
	for _, in := range r.db.inquiries {
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memInquiryRepo) FindRecent(ctx context.Context, limit int) ([]models.Inquiry, error) {
	all, _ := r.FindAll(ctx)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r memInquiryRepo) Update(_ context.Context, id uint, fields map[string]any) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	in, ok := r.db.inquiries[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["status"]; ok {
		in.Status = v.(models.InquiryStatus)
	}
	if v, ok := fields["admin_reply"]; ok {
		in.AdminReply = optString(v)
	}
	r.db.inquiries[id] = in
	return nil
}

func (r memInquiryRepo) CountByStatus(ctx context.Context, status *models.InquiryStatus) (int64, error) {
	all, _ := r.FindAll(ctx)
	var n int64
	for _, in := range all {
		if status == nil || in.Status == *status {
			n++
		}
	}
	return n, nil
}

// --- users

type memUserRepo struct{ db *memDB }

func (r memUserRepo) Upsert(_ context.Context, u *models.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if existing, ok := r.db.users[u.ID]; ok {
		existing.Name, existing.Email, existing.LastSignedIn = u.Name, u.Email, u.LastSignedIn
		r.db.users[u.ID] = existing
		return nil
	}
	r.db.users[u.ID] = *u
	return nil
}

func (r memUserRepo) Count(context.Context) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return int64(len(r.db.users)), nil
}

// --- settings, gateways, bank accounts

type memSettingRepo struct{ db *memDB }

func (r memSettingRepo) FindByKey(_ context.Context, key string) (*models.SiteSetting, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.settings[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (r memSettingRepo) FindAll(context.Context) ([]models.SiteSetting, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.SiteSetting
	for _, s := range r.db.settings {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r memSettingRepo) Upsert(_ context.Context, s *models.SiteSetting) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.settings[s.Key] = *s
	return nil
}

type memGatewayRepo struct{ db *memDB }

func (r memGatewayRepo) FindAll(context.Context) ([]models.PaymentGatewaySetting, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.PaymentGatewaySetting
	for _, g := range r.db.gateways {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Provider < out[j].Provider })
	return out, nil
}

func (r memGatewayRepo) FindByProvider(_ context.Context, p models.PaymentMethod) (*models.PaymentGatewaySetting, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	g, ok := r.db.gateways[p]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &g, nil
}

func (r memGatewayRepo) Upsert(_ context.Context, g *models.PaymentGatewaySetting) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.gateways[g.Provider] = *g
	return nil
}

func (r memGatewayRepo) Delete(_ context.Context, p models.PaymentMethod) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.gateways[p]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.db.gateways, p)
	return nil
}

type memBankAccountRepo struct{ db *memDB }

func (r memBankAccountRepo) Create(_ context.Context, a *models.BankAccount) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a.ID = r.db.id()
	r.db.accounts[a.ID] = *a
	return nil
}

func (r memBankAccountRepo) FindByID(_ context.Context, id uint) (*models.BankAccount, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.accounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (r memBankAccountRepo) FindAll(_ context.Context, activeOnly bool) ([]models.BankAccount, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.BankAccount
	for _, a := range r.db.accounts {
		if activeOnly && !a.IsActive {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (r memBankAccountRepo) Update(_ context.Context, id uint, fields map[string]any) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.accounts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "bank_name":
			a.BankName = v.(string)
		case "account_number":
			a.AccountNumber = v.(string)
		case "account_holder":
			a.AccountHolder = v.(string)
		case "is_active":
			a.IsActive = v.(bool)
		case "display_order":
			a.DisplayOrder = v.(int)
		}
	}
	r.db.accounts[id] = a
	return nil
}

func (r memBankAccountRepo) Delete(_ context.Context, id uint) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.accounts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.db.accounts, id)
	return nil
}

// --- notifications

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []notify.Message
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, msg notify.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
	return n.err
}

func (n *recordingNotifier) sent() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message(nil), n.msgs...)
}

// fixture wires every service over one memDB.
type fixture struct {
	db       *memDB
	notifier *recordingNotifier

	sites        SiteService
	availability AvailabilityService
	reservations ReservationService
	inquiries    InquiryService
	dashboard    DashboardService
	users        UserService
}

func newFixture() *fixture {
	db := newMemDB()
	n := &recordingNotifier{}
	log := logging.Discard()
	alerts := notify.NewDispatcher(n, log, time.Second)
	tx := &serialTx{}

	siteRepo := memSiteRepo{db}
	resRepo := memReservationRepo{db}
	inqRepo := memInquiryRepo{db}
	userRepo := memUserRepo{db}

	return &fixture{
		db:           db,
		notifier:     n,
		sites:        NewSiteService(siteRepo, nil, log),
		availability: NewAvailabilityService(resRepo, siteRepo),
		reservations: NewReservationService(tx, resRepo, siteRepo, alerts, log),
		inquiries:    NewInquiryService(inqRepo, alerts, log),
		dashboard:    NewDashboardService(resRepo, siteRepo, inqRepo, userRepo),
		users:        NewUserService(userRepo),
	}
}

func (f *fixture) addSite(capacity int, price string) *models.Site {
	site := &models.Site{Name: "S", Capacity: capacity, PricePerNight: money.MustParse(price), SiteType: models.SiteTent, IsActive: true}
	_ = memSiteRepo{f.db}.Create(context.Background(), site)
	return site
}

// addReservation stores a reservation directly, bypassing checks.
func (f *fixture) addReservation(r models.Reservation) *models.Reservation {
	if r.PaymentStatus == "" {
		r.PaymentStatus = models.PaymentUnpaid
	}
	_ = memReservationRepo{f.db}.Create(context.Background(), nil, &r)
	return &r
}

func (f *fixture) reservation(id uint) models.Reservation {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	return f.db.reservations[id]
}

func ms(s string) int64 {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t.UnixMilli()
}
