package service

import (
	"context"
	"strings"

	"github.com/Eursukkul/campsite-reservation/internal/apperr"
	"github.com/Eursukkul/campsite-reservation/internal/models"
	"github.com/Eursukkul/campsite-reservation/internal/policy"
	"github.com/Eursukkul/campsite-reservation/internal/repository"
)

type SettingService interface {
	Get(ctx context.Context, key string) (*models.SiteSetting, error)
	GetAll(ctx context.Context) ([]models.SiteSetting, error)
	Update(ctx context.Context, caller *policy.Identity, key, value string, description *string) error
}

type settingService struct {
	repo repository.SettingRepository
}

func NewSettingService(repo repository.SettingRepository) SettingService {
	return &settingService{repo: repo}
}

func (s *settingService) Get(ctx context.Context, key string) (*models.SiteSetting, error) {
	setting, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, notFound(err, ErrSettingNotFound)
	}
	return setting, nil
}

func (s *settingService) GetAll(ctx context.Context) ([]models.SiteSetting, error) {
	settings, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return settings, nil
}

func (s *settingService) Update(ctx context.Context, caller *policy.Identity, key, value string, description *string) error {
	if err := policy.Authorize(caller, policy.SettingUpdate, policy.Resource{}); err != nil {
		return err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return apperr.Invalid("key is required")
	}
	if err := s.repo.Upsert(ctx, &models.SiteSetting{Key: key, Value: &value, Description: description}); err != nil {
		return apperr.FromStore(err)
	}
	return nil
}
