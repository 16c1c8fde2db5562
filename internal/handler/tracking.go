package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/playbox/game-rental/internal/model"
	"github.com/playbox/game-rental/internal/repository"
	"github.com/playbox/game-rental/internal/service"
)

// TrackingHandler serves tracking detail reads and status updates.
// Updates are restricted to EMPLOYEE/MANAGER by route middleware.
type TrackingHandler struct {
	Service  *service.TrackingService
	Tracking *repository.TrackingRepo
}

func NewTrackingHandler(svc *service.TrackingService, tracking *repository.TrackingRepo) *TrackingHandler {
	if svc == nil || tracking == nil {
		panic("nil dependency passed to NewTrackingHandler")
	}
	return &TrackingHandler{Service: svc, Tracking: tracking}
}

// Get handles GET /v1/tracking/:id.
func (h *TrackingHandler) Get(c echo.Context) error {
	trackingID := c.Param("id")
	if trackingID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tracking id"})
	}
	t, err := h.Tracking.GetByID(c.Request().Context(), trackingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tracking record not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": t})
}

type trackingUpdateReq struct {
	Status      string `json:"status"`
	CourierName string `json:"courier_name"`
	Comments    string `json:"comments"`
}

// Update handles PUT /v1/tracking/:id.  The new status must be the
// immediate successor of the record's current status.
func (h *TrackingHandler) Update(c echo.Context) error {
	trackingID := c.Param("id")
	if trackingID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tracking id"})
	}
	var req trackingUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status, ok := model.ParseTrackingStatus(req.Status)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	err := h.Service.Update(c.Request().Context(), trackingID, status, req.CourierName, req.Comments)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrackingNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tracking record not found"})
		case errors.Is(err, service.ErrInvalidTransition):
			return c.JSON(http.StatusConflict, echo.Map{"error": "invalid status transition"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": true})
}
