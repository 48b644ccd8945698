package service

import (
	"context"
	"time"

	"github.com/Eursukkul/campsite-reservation/internal/apperr"
	"github.com/Eursukkul/campsite-reservation/internal/models"
	"github.com/Eursukkul/campsite-reservation/internal/policy"
	"github.com/Eursukkul/campsite-reservation/internal/repository"
)

type UserService interface {
	// Touch records that id was seen, creating the user on first sight.
	Touch(ctx context.Context, id *policy.Identity) error
}

type userService struct {
	repo repository.UserRepository
	now  func() time.Time
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo, now: time.Now}
}

func (s *userService) Touch(ctx context.Context, id *policy.Identity) error {
	if err := policy.RequireIdentity(id); err != nil {
		return err
	}
	user := &models.User{
		ID:           id.UserID,
		Role:         string(id.Role),
		LastSignedIn: s.now().UTC(),
	}
	if id.Name != "" {
		user.Name = &id.Name
	}
	if id.Email != "" {
		user.Email = &id.Email
	}
	if user.Role == "" {
		user.Role = string(policy.RoleUser)
	}
	return apperr.FromStore(s.repo.Upsert(ctx, user))
}
