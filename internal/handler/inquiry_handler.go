package handler

import (
	"net/http"

	"github.com/Eursukkul/campsite-reservation/internal/dto"
	"github.com/Eursukkul/campsite-reservation/internal/middleware"
	"github.com/Eursukkul/campsite-reservation/internal/policy"
	"github.com/Eursukkul/campsite-reservation/internal/service"
	"github.com/labstack/echo/v4"
)

type InquiryHandler struct {
	svc service.InquiryService
}

func NewInquiryHandler(svc service.InquiryService) *InquiryHandler {
	return &InquiryHandler{svc: svc}
}

func (h *InquiryHandler) RegisterRoutes(api *echo.Group) {
	api.POST("/inquiries", h.CreateInquiry)

	admin := api.Group("/admin/inquiries")
	admin.GET("", h.ListInquiries, middleware.Require(policy.InquiryAdminList))
	admin.GET("/:id", h.GetInquiry, middleware.Require(policy.InquiryGet))
	admin.PATCH("/:id/status", h.UpdateStatus, middleware.Require(policy.InquiryUpdateStatus))
	admin.POST("/:id/reply", h.Reply, middleware.Require(policy.InquiryReply))
}

func (h *InquiryHandler) CreateInquiry(c echo.Context) error {
	var req dto.CreateInquiryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	inq, err := h.svc.Create(c.Request().Context(), service.InquiryInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.Created(inq.ID))
}

func (h *InquiryHandler) ListInquiries(c echo.Context) error {
	list, err := h.svc.AdminList(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *InquiryHandler) GetInquiry(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	inq, err := h.svc.Get(c.Request().Context(), middleware.IdentityFrom(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inq)
}

func (h *InquiryHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateInquiryStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.svc.UpdateStatus(c.Request().Context(), middleware.IdentityFrom(c), id, req.Status, req.AdminReply); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.OK())
}

func (h *InquiryHandler) Reply(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ReplyInquiryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.svc.Reply(c.Request().Context(), middleware.IdentityFrom(c), id, req.AdminReply); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.OK())
}
