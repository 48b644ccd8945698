package payment

import (
	"context"
	"errors"

	"github.com/Eursukkul/campsite-reservation/internal/models"
	"gorm.io/gorm"
)

// DefaultBankInfo is shown when neither bank accounts nor the
// bank_account_info setting are configured.
const DefaultBankInfo = "은행: 국민은행\n계좌번호: 123-456-789012\n예금주: 캠핑장"

type accountLister interface {
	FindAll(ctx context.Context, activeOnly bool) ([]models.BankAccount, error)
}

type settingFinder interface {
	FindByKey(ctx context.Context, key string) (*models.SiteSetting, error)
}

// BankTransferHandler returns transfer instructions only. The reservation is
// untouched until the guest submits proof.
type BankTransferHandler struct {
	accounts accountLister
	settings settingFinder
}

func NewBankTransferHandler(accounts accountLister, settings settingFinder) *BankTransferHandler {
	return &BankTransferHandler{accounts: accounts, settings: settings}
}

func (h *BankTransferHandler) Method() models.PaymentMethod { return models.MethodBankTransfer }

func (h *BankTransferHandler) Initiate(ctx context.Context, req Request) (*Result, error) {
	res := &Result{
		Method:        models.MethodBankTransfer,
		ReservationID: req.Reservation.ID,
		Amount:        req.Amount,
	}

	accounts, err := h.accounts.FindAll(ctx, true)
	if err != nil {
		return nil, err
	}
	if len(accounts) > 0 {
		res.BankAccounts = accounts
		res.BankInfo = formatAccount(accounts[0])
		return res, nil
	}

	res.BankInfo = DefaultBankInfo
	setting, err := h.settings.FindByKey(ctx, models.SettingBankAccountInfo)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		return nil, err
	case setting.Value != nil && *setting.Value != "":
		res.BankInfo = *setting.Value
	}
	return res, nil
}

func formatAccount(a models.BankAccount) string {
	return "은행: " + a.BankName + "\n계좌번호: " + a.AccountNumber + "\n예금주: " + a.AccountHolder
}
