package service

import (
	"context"

	"github.com/Eursukkul/campsite-reservation/internal/apperr"
	"github.com/Eursukkul/campsite-reservation/internal/models"
	"github.com/Eursukkul/campsite-reservation/internal/policy"
	"github.com/Eursukkul/campsite-reservation/internal/repository"
)

type GatewaySettingInput struct {
	IsEnabled  bool
	APIKey     *string
	APISecret  *string
	MerchantID *string
	WebhookURL *string
	TestMode   bool
	Config     *string
}

type GatewaySettingService interface {
	List(ctx context.Context, caller *policy.Identity) ([]models.PaymentGatewaySetting, error)
	Get(ctx context.Context, caller *policy.Identity, provider models.PaymentMethod) (*models.PaymentGatewaySetting, error)
	Upsert(ctx context.Context, caller *policy.Identity, provider models.PaymentMethod, in GatewaySettingInput) (*models.PaymentGatewaySetting, error)
	Delete(ctx context.Context, caller *policy.Identity, provider models.PaymentMethod) error
}

type gatewaySettingService struct {
	repo repository.PaymentGatewayRepository
}

func NewGatewaySettingService(repo repository.PaymentGatewayRepository) GatewaySettingService {
	return &gatewaySettingService{repo: repo}
}

func checkProvider(p models.PaymentMethod) error {
	if !models.IsGatewayProvider(p) {
		return apperr.Invalid("provider must be one of stripe, naver_pay, kakao_pay, toss")
	}
	return nil
}

func (s *gatewaySettingService) List(ctx context.Context, caller *policy.Identity) ([]models.PaymentGatewaySetting, error) {
	if err := policy.Authorize(caller, policy.GatewayList, policy.Resource{}); err != nil {
		return nil, err
	}
	settings, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return settings, nil
}

func (s *gatewaySettingService) Get(ctx context.Context, caller *policy.Identity, provider models.PaymentMethod) (*models.PaymentGatewaySetting, error) {
	if err := policy.Authorize(caller, policy.GatewayGet, policy.Resource{}); err != nil {
		return nil, err
	}
	if err := checkProvider(provider); err != nil {
		return nil, err
	}
	setting, err := s.repo.FindByProvider(ctx, provider)
	if err != nil {
		return nil, notFound(err, ErrGatewayNotFound)
	}
	return setting, nil
}

func (s *gatewaySettingService) Upsert(ctx context.Context, caller *policy.Identity, provider models.PaymentMethod, in GatewaySettingInput) (*models.PaymentGatewaySetting, error) {
	if err := policy.Authorize(caller, policy.GatewayUpsert, policy.Resource{}); err != nil {
		return nil, err
	}
	if err := checkProvider(provider); err != nil {
		return nil, err
	}
	setting := &models.PaymentGatewaySetting{
		Provider:   provider,
		IsEnabled:  in.IsEnabled,
		APIKey:     in.APIKey,
		APISecret:  in.APISecret,
		MerchantID: in.MerchantID,
		WebhookURL: in.WebhookURL,
		TestMode:   in.TestMode,
		Config:     in.Config,
	}
	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, apperr.FromStore(err)
	}
	return setting, nil
}

func (s *gatewaySettingService) Delete(ctx context.Context, caller *policy.Identity, provider models.PaymentMethod) error {
	if err := policy.Authorize(caller, policy.GatewayDelete, policy.Resource{}); err != nil {
		return err
	}
	if err := checkProvider(provider); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, provider); err != nil {
		return notFound(err, ErrGatewayNotFound)
	}
	return nil
}
