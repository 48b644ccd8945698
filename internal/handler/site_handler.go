package handler

import (
	"net/http"

	"github.com/Eursukkul/campsite-reservation/internal/dto"
	"github.com/Eursukkul/campsite-reservation/internal/middleware"
	"github.com/Eursukkul/campsite-reservation/internal/policy"
	"github.com/Eursukkul/campsite-reservation/internal/service"
	"github.com/labstack/echo/v4"
)

type SiteHandler struct {
	svc service.SiteService
}

func NewSiteHandler(svc service.SiteService) *SiteHandler {
	return &SiteHandler{svc: svc}
}

func (h *SiteHandler) RegisterRoutes(api *echo.Group) {
	api.GET("/sites", h.ListSites)
	api.GET("/sites/:id", h.GetSite)

	admin := api.Group("/admin/sites")
	admin.GET("", h.ListAllSites, middleware.Require(policy.SiteListAll))
	admin.POST("", h.CreateSite, middleware.Require(policy.SiteCreate))
	admin.PATCH("/:id", h.UpdateSite, middleware.Require(policy.SiteUpdate))
	admin.DELETE("/:id", h.DeleteSite, middleware.Require(policy.SiteDelete))
}

func (h *SiteHandler) ListSites(c echo.Context) error {
	sites, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sites)
}

func (h *SiteHandler) ListAllSites(c echo.Context) error {
	sites, err := h.svc.ListAll(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sites)
}

func (h *SiteHandler) GetSite(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	site, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, site)
}

func (h *SiteHandler) CreateSite(c echo.Context) error {
	var req dto.CreateSiteRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	site, err := h.svc.Create(c.Request().Context(), middleware.IdentityFrom(c), service.SiteInput{
		Name:          req.Name,
		Description:   req.Description,
		Capacity:      req.Capacity,
		PricePerNight: req.PricePerNight,
		ImageURL:      req.ImageURL,
		Amenities:     req.Amenities,
		SiteType:      req.SiteType,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.Created(site.ID))
}

func (h *SiteHandler) UpdateSite(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateSiteRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	err = h.svc.Update(c.Request().Context(), middleware.IdentityFrom(c), id, service.SiteUpdate{
		Name:          req.Name,
		Description:   req.Description,
		Capacity:      req.Capacity,
		PricePerNight: req.PricePerNight,
		ImageURL:      req.ImageURL,
		Amenities:     req.Amenities,
		SiteType:      req.SiteType,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.OK())
}

func (h *SiteHandler) DeleteSite(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), middleware.IdentityFrom(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.OK())
}
