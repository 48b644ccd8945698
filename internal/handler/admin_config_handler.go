package handler

import (
	"net/http"

	"github.com/Eursukkul/campsite-reservation/internal/dto"
	"github.com/Eursukkul/campsite-reservation/internal/middleware"
	"github.com/Eursukkul/campsite-reservation/internal/models"
	"github.com/Eursukkul/campsite-reservation/internal/policy"
	"github.com/Eursukkul/campsite-reservation/internal/service"
	"github.com/labstack/echo/v4"
)

// ConfigHandler serves payment gateway settings, bank accounts and
// free-form site settings.
type ConfigHandler struct {
	gateways service.GatewaySettingService
	accounts service.BankAccountService
	settings service.SettingService
}

func NewConfigHandler(gateways service.GatewaySettingService, accounts service.BankAccountService, settings service.SettingService) *ConfigHandler {
	return &ConfigHandler{gateways: gateways, accounts: accounts, settings: settings}
}

func (h *ConfigHandler) RegisterRoutes(api *echo.Group) {
	gw := api.Group("/admin/payment-gateways")
	gw.GET("", h.ListGateways, middleware.Require(policy.GatewayList))
	gw.GET("/:provider", h.GetGateway, middleware.Require(policy.GatewayGet))
	gw.PUT("/:provider", h.UpsertGateway, middleware.Require(policy.GatewayUpsert))
	gw.DELETE("/:provider", h.DeleteGateway, middleware.Require(policy.GatewayDelete))

	api.GET("/bank-accounts", h.ListBankAccounts)
	ba := api.Group("/admin/bank-accounts")
	ba.GET("", h.ListAllBankAccounts, middleware.Require(policy.BankAccountListAll))
	ba.GET("/:id", h.GetBankAccount, middleware.Require(policy.BankAccountGet))
	ba.POST("", h.CreateBankAccount, middleware.Require(policy.BankAccountCreate))
	ba.PATCH("/:id", h.UpdateBankAccount, middleware.Require(policy.BankAccountUpdate))
	ba.DELETE("/:id", h.DeleteBankAccount, middleware.Require(policy.BankAccountDelete))

	api.GET("/settings", h.ListSettings)
	api.GET("/settings/:key", h.GetSetting)
	api.PUT("/admin/settings/:key", h.UpdateSetting, middleware.Require(policy.SettingUpdate))
}

func provider(c echo.Context) models.PaymentMethod {
	return models.PaymentMethod(c.Param("provider"))
}

func (h *ConfigHandler) ListGateways(c echo.Context) error {
	list, err := h.gateways.List(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ConfigHandler) GetGateway(c echo.Context) error {
	gw, err := h.gateways.Get(c.Request().Context(), middleware.IdentityFrom(c), provider(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, gw)
}

func (h *ConfigHandler) UpsertGateway(c echo.Context) error {
	var req dto.UpsertGatewayRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	_, err := h.gateways.Upsert(c.Request().Context(), middleware.IdentityFrom(c), provider(c), service.GatewaySettingInput{
		IsEnabled:  req.IsEnabled,
		APIKey:     req.APIKey,
		APISecret:  req.APISecret,
		MerchantID: req.MerchantID,
		WebhookURL: req.WebhookURL,
		TestMode:   req.TestMode,
		Config:     req.Config,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.OK())
}

func (h *ConfigHandler) DeleteGateway(c echo.Context) error {
	if err := h.gateways.Delete(c.Request().Context(), middleware.IdentityFrom(c), provider(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.OK())
}

func (h *ConfigHandler) ListBankAccounts(c echo.Context) error {
	list, err := h.accounts.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ConfigHandler) ListAllBankAccounts(c echo.Context) error {
	list, err := h.accounts.ListAll(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ConfigHandler) GetBankAccount(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	a, err := h.accounts.Get(c.Request().Context(), middleware.IdentityFrom(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *ConfigHandler) CreateBankAccount(c echo.Context) error {
	var req dto.CreateBankAccountRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	a, err := h.accounts.Create(c.Request().Context(), middleware.IdentityFrom(c), service.BankAccountInput{
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountHolder: req.AccountHolder,
		DisplayOrder:  req.DisplayOrder,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.Created(a.ID))
}

func (h *ConfigHandler) UpdateBankAccount(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateBankAccountRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	err = h.accounts.Update(c.Request().Context(), middleware.IdentityFrom(c), id, service.BankAccountUpdate{
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountHolder: req.AccountHolder,
		IsActive:      req.IsActive,
		DisplayOrder:  req.DisplayOrder,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.OK())
}

func (h *ConfigHandler) DeleteBankAccount(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.accounts.Delete(c.Request().Context(), middleware.IdentityFrom(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.OK())
}

func (h *ConfigHandler) ListSettings(c echo.Context) error {
	list, err := h.settings.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ConfigHandler) GetSetting(c echo.Context) error {
	s, err := h.settings.Get(c.Request().Context(), c.Param("key"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *ConfigHandler) UpdateSetting(c echo.Context) error {
	var req dto.UpdateSettingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := h.settings.Update(c.Request().Context(), middleware.IdentityFrom(c), c.Param("key"), req.Value, req.Description); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.OK())
}
