package handler

import (
	"net/http"

	"github.com/Eursukkul/campsite-reservation/internal/dto"
	"github.com/Eursukkul/campsite-reservation/internal/middleware"
	"github.com/Eursukkul/campsite-reservation/internal/policy"
	"github.com/Eursukkul/campsite-reservation/internal/service"
	"github.com/labstack/echo/v4"
)

type ReservationHandler struct {
	svc          service.ReservationService
	availability service.AvailabilityService
}

func NewReservationHandler(svc service.ReservationService, availability service.AvailabilityService) *ReservationHandler {
	return &ReservationHandler{svc: svc, availability: availability}
}

func (h *ReservationHandler) RegisterRoutes(api *echo.Group) {
	api.GET("/availability", h.BrowseAvailability)

	res := api.Group("/reservations")
	res.GET("/availability", h.CheckAvailability)
	res.GET("/mine", h.MyReservations, middleware.Require(policy.ReservationMyList))
	res.POST("", h.CreateReservation, middleware.Require(policy.ReservationCreate))
	res.GET("/:id", h.GetReservation, middleware.Require(policy.ReservationGet))
	res.POST("/:id/cancel", h.CancelReservation, middleware.Require(policy.ReservationCancel))

	admin := api.Group("/admin/reservations")
	admin.GET("", h.ListAllReservations, middleware.Require(policy.ReservationAdminList))
	admin.PATCH("/:id/status", h.UpdateStatus, middleware.Require(policy.ReservationUpdateStatus))
}

func (h *ReservationHandler) CheckAvailability(c echo.Context) error {
	var q dto.AvailabilityQuery
	if err := bind(c, &q); err != nil {
		return err
	}
	ok, err := h.availability.IsAvailable(c.Request().Context(), q.SiteID, q.CheckIn, q.CheckOut, nil)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.AvailabilityResponse{Available: ok})
}

func (h *ReservationHandler) BrowseAvailability(c echo.Context) error {
	var q dto.BrowseQuery
	if err := bind(c, &q); err != nil {
		return err
	}
	sites, err := h.availability.CheckSites(c.Request().Context(), q.CheckIn, q.CheckOut)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToSiteAvailability(sites))
}

func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var req dto.CreateReservationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	r, err := h.svc.Create(c.Request().Context(), middleware.IdentityFrom(c), service.CreateReservationInput{
		SiteID:          req.SiteID,
		CheckInDate:     req.CheckInDate,
		CheckOutDate:    req.CheckOutDate,
		GuestCount:      req.GuestCount,
		GuestName:       req.GuestName,
		GuestPhone:      req.GuestPhone,
		GuestEmail:      req.GuestEmail,
		SpecialRequests: req.SpecialRequests,
		TotalAmount:     req.TotalAmount,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.Created(r.ID))
}

func (h *ReservationHandler) MyReservations(c echo.Context) error {
	list, err := h.svc.MyList(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToReservationList(list))
}

func (h *ReservationHandler) GetReservation(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	caller := middleware.IdentityFrom(c)
	r, err := h.svc.Get(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}
	if caller.IsAdmin() {
		return c.JSON(http.StatusOK, r)
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(r))
}

func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.svc.Cancel(c.Request().Context(), middleware.IdentityFrom(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.OK())
}

func (h *ReservationHandler) ListAllReservations(c echo.Context) error {
	list, err := h.svc.AdminList(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateReservationStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if _, err := h.svc.UpdateStatus(c.Request().Context(), middleware.IdentityFrom(c), id, req.Status, req.AdminNote); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.OK())
}
