package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Eursukkul/campsite-reservation/internal/apperr"
	"github.com/Eursukkul/campsite-reservation/internal/models"
	"github.com/Eursukkul/campsite-reservation/internal/notify"
	"github.com/Eursukkul/campsite-reservation/internal/policy"
	"github.com/Eursukkul/campsite-reservation/internal/repository"
)

type InquiryInput struct {
	Name    string
	Email   string
	Phone   *string
	Subject string
	Message string
}

type InquiryService interface {
	Create(ctx context.Context, in InquiryInput) (*models.Inquiry, error)
	AdminList(ctx context.Context, caller *policy.Identity) ([]models.Inquiry, error)
	Get(ctx context.Context, caller *policy.Identity, id uint) (*models.Inquiry, error)
	UpdateStatus(ctx context.Context, caller *policy.Identity, id uint, status models.InquiryStatus, reply *string) error
	Reply(ctx context.Context, caller *policy.Identity, id uint, reply string) error
}

type inquiryService struct {
	repo   repository.InquiryRepository
	alerts *notify.Dispatcher
	log    *slog.Logger
}

func NewInquiryService(repo repository.InquiryRepository, alerts *notify.Dispatcher, log *slog.Logger) InquiryService {
	return &inquiryService{repo: repo, alerts: alerts, log: log}
}

func (s *inquiryService) Create(ctx context.Context, in InquiryInput) (*models.Inquiry, error) {
	if err := policy.Authorize(nil, policy.InquiryCreate, policy.Resource{}); err != nil {
		return nil, err
	}
	name, subject, message := strings.TrimSpace(in.Name), strings.TrimSpace(in.Subject), strings.TrimSpace(in.Message)
	if name == "" || subject == "" || message == "" {
		return nil, apperr.Invalid("name, subject and message are required")
	}
	if !validEmail(strings.TrimSpace(in.Email)) {
		return nil, apperr.Invalid("email is not a valid address")
	}

	inquiry := &models.Inquiry{
		Name:    name,
		Email:   strings.TrimSpace(in.Email),
		Phone:   in.Phone,
		Subject: subject,
		Message: message,
		Status:  models.InquiryUnread,
	}
	if err := s.repo.Create(ctx, inquiry); err != nil {
		return nil, apperr.FromStore(err)
	}

	s.alerts.OwnerAlert(ctx, notify.Message{
		Kind:      notify.KindInquiryCreated,
		Title:     "새로운 문의가 접수되었습니다",
		Content:   fmt.Sprintf("%s님의 문의: %s", inquiry.Name, inquiry.Subject),
		SubjectID: inquiry.ID,
	})
	return inquiry, nil
}

func (s *inquiryService) AdminList(ctx context.Context, caller *policy.Identity) ([]models.Inquiry, error) {
	if err := policy.Authorize(caller, policy.InquiryAdminList, policy.Resource{}); err != nil {
		return nil, err
	}
	inquiries, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return inquiries, nil
}

func (s *inquiryService) Get(ctx context.Context, caller *policy.Identity, id uint) (*models.Inquiry, error) {
	if err := policy.Authorize(caller, policy.InquiryGet, policy.Resource{}); err != nil {
		return nil, err
	}
	inquiry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrInquiryNotFound)
	}
	return inquiry, nil
}

func (s *inquiryService) UpdateStatus(ctx context.Context, caller *policy.Identity, id uint, status models.InquiryStatus, reply *string) error {
	if err := policy.Authorize(caller, policy.InquiryUpdateStatus, policy.Resource{}); err != nil {
		return err
	}
	if !status.Valid() {
		return apperr.Invalid("unknown inquiry status %q", status)
	}
	fields := map[string]any{"status": status}
	if reply != nil {
		fields["admin_reply"] = *reply
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return notFound(err, ErrInquiryNotFound)
	}
	return nil
}

func (s *inquiryService) Reply(ctx context.Context, caller *policy.Identity, id uint, reply string) error {
	if err := policy.Authorize(caller, policy.InquiryReply, policy.Resource{}); err != nil {
		return err
	}
	if strings.TrimSpace(reply) == "" {
		return apperr.Invalid("admin_reply is required")
	}
	if err := s.repo.Update(ctx, id, map[string]any{"status": models.InquiryReplied, "admin_reply": reply}); err != nil {
		return notFound(err, ErrInquiryNotFound)
	}
	return nil
}
