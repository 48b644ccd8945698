package handler

import (
	"net/http"
	"strings"

	"github.com/Eursukkul/campsite-reservation/internal/dto"
	"github.com/Eursukkul/campsite-reservation/internal/middleware"
	"github.com/Eursukkul/campsite-reservation/internal/policy"
	"github.com/Eursukkul/campsite-reservation/internal/service"
	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	svc service.PaymentService
	// publicOrigin is used for redirect URLs when the request carries no
	// Origin header.
	publicOrigin string
}

func NewPaymentHandler(svc service.PaymentService, publicOrigin string) *PaymentHandler {
	return &PaymentHandler{svc: svc, publicOrigin: strings.TrimRight(publicOrigin, "/")}
}

func (h *PaymentHandler) RegisterRoutes(api *echo.Group) {
	api.POST("/payments/checkout", h.Checkout, middleware.Require(policy.PaymentCheckout))
	api.POST("/payments/bank-transfer", h.SubmitBankTransfer, middleware.Require(policy.PaymentSubmitTransfer))

	admin := api.Group("/admin/payments/:reservationId")
	admin.PATCH("/method", h.UpdatePaymentMethod, middleware.Require(policy.PaymentUpdateMethod))
	admin.POST("/bank-transfer/approve", h.ApproveBankTransfer, middleware.Require(policy.PaymentApproveTransfer))
	admin.POST("/bank-transfer/reject", h.RejectBankTransfer, middleware.Require(policy.PaymentRejectTransfer))
}

func (h *PaymentHandler) origin(c echo.Context) string {
	if o := strings.TrimRight(c.Request().Header.Get(echo.HeaderOrigin), "/"); o != "" {
		return o
	}
	return h.publicOrigin
}

func (h *PaymentHandler) Checkout(c echo.Context) error {
	var req dto.CheckoutRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	result, err := h.svc.CreateCheckout(c.Request().Context(), middleware.IdentityFrom(c), service.CheckoutInput{
		ReservationID: req.ReservationID,
		Type:          req.PaymentType,
		Method:        req.PaymentMethod,
		Origin:        h.origin(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) SubmitBankTransfer(c echo.Context) error {
	var req dto.SubmitBankTransferRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	err := h.svc.SubmitBankTransfer(c.Request().Context(), middleware.IdentityFrom(c), service.BankTransferInput{
		ReservationID: req.ReservationID,
		Amount:        req.Amount,
		Proof:         req.Proof,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.OK())
}

func (h *PaymentHandler) UpdatePaymentMethod(c echo.Context) error {
	id, err := parseID(c, "reservationId")
	if err != nil {
		return err
	}
	var req dto.UpdatePaymentMethodRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.svc.UpdatePaymentMethod(c.Request().Context(), middleware.IdentityFrom(c), id, req.PaymentMethod, req.PaymentID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.OK())
}

func (h *PaymentHandler) ApproveBankTransfer(c echo.Context) error {
	id, err := parseID(c, "reservationId")
	if err != nil {
		return err
	}
	var req dto.ApproveBankTransferRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.svc.ApproveBankTransfer(c.Request().Context(), middleware.IdentityFrom(c), id, req.PaymentStatus); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.OK())
}

func (h *PaymentHandler) RejectBankTransfer(c echo.Context) error {
	id, err := parseID(c, "reservationId")
	if err != nil {
		return err
	}
	var req dto.RejectBankTransferRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.svc.RejectBankTransfer(c.Request().Context(), middleware.IdentityFrom(c), id, req.AdminNote); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.OK())
}
