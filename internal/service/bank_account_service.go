package service

import (
	"context"
	"strings"

	"github.com/Eursukkul/campsite-reservation/internal/apperr"
	"github.com/Eursukkul/campsite-reservation/internal/models"
	"github.com/Eursukkul/campsite-reservation/internal/policy"
	"github.com/Eursukkul/campsite-reservation/internal/repository"
)

type BankAccountInput struct {
	BankName      string
	AccountNumber string
	AccountHolder string
	DisplayOrder  int
}

type BankAccountUpdate struct {
	BankName      *string
	AccountNumber *string
	AccountHolder *string
	IsActive      *bool
	DisplayOrder  *int
}

type BankAccountService interface {
	List(ctx context.Context) ([]models.BankAccount, error)
	ListAll(ctx context.Context, caller *policy.Identity) ([]models.BankAccount, error)
	Get(ctx context.Context, caller *policy.Identity, id uint) (*models.BankAccount, error)
	Create(ctx context.Context, caller *policy.Identity, in BankAccountInput) (*models.BankAccount, error)
	Update(ctx context.Context, caller *policy.Identity, id uint, in BankAccountUpdate) error
	Delete(ctx context.Context, caller *policy.Identity, id uint) error
}

type bankAccountService struct {
	repo repository.BankAccountRepository
}

func NewBankAccountService(repo repository.BankAccountRepository) BankAccountService {
	return &bankAccountService{repo: repo}
}

func (s *bankAccountService) List(ctx context.Context) ([]models.BankAccount, error) {
	accounts, err := s.repo.FindAll(ctx, true)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return accounts, nil
}

func (s *bankAccountService) ListAll(ctx context.Context, caller *policy.Identity) ([]models.BankAccount, error) {
	if err := policy.Authorize(caller, policy.BankAccountListAll, policy.Resource{}); err != nil {
		return nil, err
	}
	accounts, err := s.repo.FindAll(ctx, false)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return accounts, nil
}

func (s *bankAccountService) Get(ctx context.Context, caller *policy.Identity, id uint) (*models.BankAccount, error) {
	if err := policy.Authorize(caller, policy.BankAccountGet, policy.Resource{}); err != nil {
		return nil, err
	}
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrBankAccountNotFound)
	}
	return account, nil
}

func (s *bankAccountService) Create(ctx context.Context, caller *policy.Identity, in BankAccountInput) (*models.BankAccount, error) {
	if err := policy.Authorize(caller, policy.BankAccountCreate, policy.Resource{}); err != nil {
		return nil, err
	}
	account := &models.BankAccount{
		BankName:      strings.TrimSpace(in.BankName),
		AccountNumber: strings.TrimSpace(in.AccountNumber),
		AccountHolder: strings.TrimSpace(in.AccountHolder),
		IsActive:      true,
		DisplayOrder:  in.DisplayOrder,
	}
	if account.BankName == "" || account.AccountNumber == "" || account.AccountHolder == "" {
		return nil, apperr.Invalid("bank_name, account_number and account_holder are required")
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, apperr.FromStore(err)
	}
	return account, nil
}

func (s *bankAccountService) Update(ctx context.Context, caller *policy.Identity, id uint, in BankAccountUpdate) error {
	if err := policy.Authorize(caller, policy.BankAccountUpdate, policy.Resource{}); err != nil {
		return err
	}
	fields := map[string]any{}
	for col, v := range map[string]*string{
		"bank_name":      in.BankName,
		"account_number": in.AccountNumber,
		"account_holder": in.AccountHolder,
	} {
		if v == nil {
			continue
		}
		if strings.TrimSpace(*v) == "" {
			return apperr.Invalid("%s must not be empty", col)
		}
		fields[col] = strings.TrimSpace(*v)
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	if in.DisplayOrder != nil {
		fields["display_order"] = *in.DisplayOrder
	}
	if len(fields) == 0 {
		return apperr.Invalid("nothing to update")
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return notFound(err, ErrBankAccountNotFound)
	}
	return nil
}

func (s *bankAccountService) Delete(ctx context.Context, caller *policy.Identity, id uint) error {
	if err := policy.Authorize(caller, policy.BankAccountDelete, policy.Resource{}); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, ErrBankAccountNotFound)
	}
	return nil
}
